package chain

import "github.com/prateekb/keychains/store"

// Options configures the optional persistence collaborator a Chain
// constructor wires in. The zero value means "no persistence": every
// Instantiate/Update call simply returns state to the caller without ever
// touching a StateStore (spec.md §6).
type Options struct {
	Store   store.StateStore
	Persist bool
}
