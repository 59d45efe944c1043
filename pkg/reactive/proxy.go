package reactive

// cleanMask is the reserved dirty-mask value meaning "no tracked reads
// since the last render bracket".
const cleanMask int64 = -1

// SignalProxy tracks dependencies for a single-valued signal. It holds
// at most one subscription slot.
//
// The zero value has a zeroed dirty mask and must not be used; call
// NewSignalProxy or SignalProxyFrom.
type SignalProxy struct {
	// learning is true while a render bracket is open.
	learning bool

	// invalid is set by mutable access and cleared by StartProxy.
	invalid bool

	// node is the id of the node whose render bracket is open.
	node uint32

	// dirty accumulates generation bits of tracked reads outside a
	// bracket; cleanMask means none.
	dirty int64

	// sub is the single subscription slot.
	sub Sub
}

// NewSignalProxy returns a proxy with an empty subscription slot and a
// clean dirty mask.
func NewSignalProxy() SignalProxy {
	return SignalProxy{dirty: cleanMask}
}

// SignalProxyFrom returns a proxy whose subscription slot is restored
// from a hydrated subscription.
func SignalProxyFrom(sub Sub) SignalProxy {
	return SignalProxy{dirty: cleanMask, sub: sub}
}

// Learning reports whether a render bracket is open.
func (p *SignalProxy) Learning() bool { return p.learning }

// Invalid reports whether the value was mutably accessed since the last
// render bracket opened.
func (p *SignalProxy) Invalid() bool { return p.invalid }

// Node returns the owning node id.
func (p *SignalProxy) Node() uint32 { return p.node }

// SetNode sets the node id recorded by reads during a render bracket.
func (p *SignalProxy) SetNode(n uint32) { p.node = n }

// Dirty returns the accumulated dirty mask, or -1 when clean.
func (p *SignalProxy) Dirty() int64 { return p.dirty }

// Set records a tracked read. During learning it overwrites the
// subscription slot with (node, 0); otherwise it folds bit 1 into the
// dirty mask.
func (p *SignalProxy) Set() {
	if p.learning {
		p.sub = Sub{Node: p.node}
		return
	}
	if p.dirty == cleanMask {
		p.dirty = 0
	}
	p.dirty |= 1
}

// StartProxy opens a render bracket: it clears the invalid flag, resets
// the dirty mask and returns the current subscription for the caller to
// hold while the bracket is open.
func (p *SignalProxy) StartProxy() Sub {
	p.learning = true
	p.invalid = false
	p.dirty = cleanMask
	return p.sub
}

// StopProxy closes a render bracket, installing the subscription that
// the bracket produced.
func (p *SignalProxy) StopProxy(sub Sub) {
	p.sub = sub
	p.learning = false
}

// Subscription returns the subscription slot. Render brackets read it
// after the learning phase to harvest what the pass recorded.
func (p *SignalProxy) Subscription() Sub { return p.sub }

// Subs returns the subscription slot in wire form.
func (p *SignalProxy) Subs() []string {
	return []string{p.sub.String()}
}

// invalidate marks the proxy invalid. Mutable signal access goes
// through this.
func (p *SignalProxy) invalidate() { p.invalid = true }

// Proxy tracks dependencies for a multi-valued store. Unlike
// SignalProxy it accumulates subscriptions in a list and records the
// read's own generation bit.
//
// The zero value must not be used; call NewProxy.
type Proxy struct {
	// learning is true while a render bracket is open.
	learning bool

	// invalid is set by mutable access and cleared by StartProxy.
	invalid bool

	// node is the id of the node whose render bracket is open.
	node uint32

	// dirty accumulates generation bits of tracked reads outside a
	// bracket; cleanMask means none.
	dirty int64

	// subs is the accumulated subscription list.
	subs []Sub
}

// NewProxy returns a proxy restored from hydrated subscriptions. Pass
// nil for a fresh, empty proxy.
func NewProxy(subs []Sub) *Proxy {
	return &Proxy{dirty: cleanMask, subs: subs}
}

// Learning reports whether a render bracket is open.
func (p *Proxy) Learning() bool { return p.learning }

// Invalid reports whether the value was mutably accessed since the last
// render bracket opened.
func (p *Proxy) Invalid() bool { return p.invalid }

// Node returns the owning node id.
func (p *Proxy) Node() uint32 { return p.node }

// SetNode sets the node id recorded by reads during a render bracket.
func (p *Proxy) SetNode(n uint32) { p.node = n }

// Dirty returns the accumulated dirty mask, or -1 when clean.
func (p *Proxy) Dirty() int64 { return p.dirty }

// Set records a tracked read of generation n. During learning it
// appends (node, n) to the subscription list; otherwise it folds n into
// the dirty mask.
func (p *Proxy) Set(n int64) {
	if p.learning {
		p.subs = append(p.subs, Sub{Node: p.node, Gen: n})
		return
	}
	if p.dirty == cleanMask {
		p.dirty = 0
	}
	p.dirty |= n
}

// StartProxy opens a render bracket: it clears the invalid flag, resets
// the dirty mask and drains the subscription list, returning it for the
// caller to hold while the bracket is open.
func (p *Proxy) StartProxy() []Sub {
	p.learning = true
	p.invalid = false
	p.dirty = cleanMask
	subs := p.subs
	p.subs = nil
	return subs
}

// StopProxy closes a render bracket, installing the subscriptions the
// bracket produced.
func (p *Proxy) StopProxy(subs []Sub) {
	p.subs = subs
	p.learning = false
}

// Invalidate marks the proxy invalid.
func (p *Proxy) Invalidate() { p.invalid = true }

// Subscriptions returns a snapshot of the subscription list. Render
// brackets read it after the learning phase to harvest what the pass
// recorded.
func (p *Proxy) Subscriptions() []Sub {
	out := make([]Sub, len(p.subs))
	copy(out, p.subs)
	return out
}

// Subs returns the subscription list in wire form.
func (p *Proxy) Subs() []string {
	out := make([]string, 0, len(p.subs))
	for _, s := range p.subs {
		out = append(out, s.String())
	}
	return out
}
