package catalog

import "fmt"

// Entry is one installable package of a listing
type Entry struct {
	// Index is the installer's identifier for this listing only
	Index    string `yaml:"index"`
	Title    string `yaml:"title"`
	Revision string `yaml:"revision"`
	// API is empty for global packages
	API string `yaml:"api,omitempty"`
}

// IsGlobal reports whether the entry is not scoped to an API level
func (e Entry) IsGlobal() bool {
	return e.API == ""
}

// Key identifies the entry independently of its index
func (e Entry) Key() string {
	return e.Title + "|" + e.API + "|" + e.Revision
}

func (e Entry) String() string {
	if e.IsGlobal() {
		return fmt.Sprintf("%s (%s)", e.Title, e.Revision)
	}
	return fmt.Sprintf("%s [API %s] (%s)", e.Title, e.API, e.Revision)
}

// Slot holds the entries listed under one global title. Most titles have a
// single entry; build-tools list several revisions side by side.
type Slot interface {
	// Entries returns the slot's entries in listing order
	Entries() []Entry
	isSlot()
}

// Single is a slot with one entry
type Single struct {
	Entry Entry
}

// Multiple is a slot whose title appeared more than once
type Multiple []Entry

func (s Single) Entries() []Entry { return []Entry{s.Entry} }
func (Single) isSlot()            {}

func (m Multiple) Entries() []Entry { return append([]Entry(nil), m...) }
func (Multiple) isSlot()            {}

// add returns the slot that results from listing e after s
func add(s Slot, e Entry) Slot {
	switch cur := s.(type) {
	case nil:
		return Single{Entry: e}
	case Single:
		return Multiple{cur.Entry, e}
	case Multiple:
		return append(cur, e)
	}
	panic(fmt.Sprintf("catalog: unknown slot type %T", s))
}
