package markov

import "fmt"

// WindowIndex assigns stable integer ids to windows. Ids are handed out in
// order of first sighting, starting at 0, and are never reused or removed.
type WindowIndex struct {
	ids     map[string]int
	windows []string
}

// NewWindowIndex returns an empty index.
func NewWindowIndex() *WindowIndex {
	return &WindowIndex{ids: make(map[string]int)}
}

// LookupOrInsert returns the id of w, assigning the next free id if w has not
// been seen before.
func (x *WindowIndex) LookupOrInsert(w string) int {
	if id, ok := x.ids[w]; ok {
		return id
	}
	id := len(x.windows)
	x.ids[w] = id
	x.windows = append(x.windows, w)
	return id
}

// Lookup returns the id of w without inserting it.
func (x *WindowIndex) Lookup(w string) (int, bool) {
	id, ok := x.ids[w]
	return id, ok
}

// Window returns the window assigned to id.
func (x *WindowIndex) Window(id int) (string, error) {
	if id < 0 || id >= len(x.windows) {
		return "", fmt.Errorf("%w: %d (index holds %d)", ErrUnknownWindow, id, len(x.windows))
	}
	return x.windows[id], nil
}

// Len returns the number of distinct windows seen so far.
func (x *WindowIndex) Len() int {
	return len(x.windows)
}
