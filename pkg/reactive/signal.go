package reactive

import "encoding/json"

// Signal owns a value and the proxy that tracks how rendering depends
// on it.
type Signal[T any] struct {
	proxy SignalProxy
	value T
}

// NewSignal returns a signal owning initial with a fresh proxy.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{proxy: NewSignalProxy(), value: initial}
}

// SignalFrom returns a signal owning initial whose proxy is restored
// from a hydrated subscription.
func SignalFrom[T any](sub Sub, initial T) *Signal[T] {
	return &Signal[T]{proxy: SignalProxyFrom(sub), value: initial}
}

// Value returns the value as a tracked read: during a render bracket it
// records a subscription, otherwise it marks the proxy dirty. The
// returned pointer is valid for the life of the signal and must only be
// read through.
func (s *Signal[T]) Value() *T {
	s.proxy.Set()
	return &s.value
}

// ValueMut returns the value for mutation and marks the proxy invalid.
// It records no subscription and touches no dirty bit.
func (s *Signal[T]) ValueMut() *T {
	s.proxy.invalidate()
	return &s.value
}

// Peek returns the value without any tracking side effect.
func (s *Signal[T]) Peek() *T {
	return &s.value
}

// Proxy exposes the signal's proxy so rendering code can bracket it and
// set the owning node id.
func (s *Signal[T]) Proxy() *SignalProxy {
	return &s.proxy
}

// Subs returns the signal's subscription in wire form.
func (s *Signal[T]) Subs() []string {
	return s.proxy.Subs()
}

// MarshalJSON serializes the owned value only; proxy state never goes
// over the wire as part of the object table.
func (s *Signal[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}
