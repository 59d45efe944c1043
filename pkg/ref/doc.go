// Package ref provides shared, runtime borrow-checked value cells and an
// ordered collection of shared children.
//
// Application state in an easel runtime is held in cells that many
// holders reference at once: the object table, collections, and the
// lexical scopes handed to callbacks all point at the same storage.
// Access goes through short-lived borrows that are checked at
// acquisition: any number of shared borrows may coexist, an exclusive
// borrow excludes everything else, and a conflicting request fails
// immediately with an error rather than blocking. The runtime is
// single-threaded and run-to-completion, so a conflict is always a
// programming error in the current dispatch, never contention.
//
// Borrowed pointers are only valid until the release function returned
// alongside them is called; holding one past release is not checked.
package ref
