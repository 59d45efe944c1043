// Package reactive implements the signal and proxy layer of the easel
// runtime.
//
// A signal owns a value and a proxy that records how rendering logic
// depends on that value. The protocol has two phases driven by the
// rendering code itself:
//
//   - Learning: while a render bracket is open (StartProxy has been
//     called and StopProxy has not), every tracked read records a
//     subscription of the form (owning node id, generation) instead of
//     marking anything dirty.
//
//   - Tracking: outside a bracket, a tracked read folds the read's
//     generation bit into the proxy's dirty mask so a later render pass
//     can see which generations were touched.
//
// The dirty mask is an int64 where -1 is the reserved "clean" sentinel;
// the first write collapses it to 0 before OR-ing in generation bits.
// Mutable access to a signal's value never touches the mask. It sets the
// proxy's invalid flag instead, which the next StartProxy clears.
//
// Subscriptions are serialized as "node generation" strings, matching
// the order and format the hydration payload carries them in.
package reactive
