package model

import "fmt"

// RootAddress is the address reserved for the synthetic process root.
// No object in a dump ever carries it; every real object has a strictly
// positive address.
const RootAddress uint64 = 0

// RootKind is the kind tag of the synthetic root node.
const RootKind = "ROOT"

// MemoryObject is one node of the reference graph: a single allocated
// object from the dump, or the synthetic root.
//
// Identity is the address alone. Kind and Label are display data and may
// be rewritten after graph construction (instances pick up their class
// name), so they must never participate in equality or hashing.
type MemoryObject struct {
	// Address uniquely identifies the object. 0 is the synthetic root.
	Address uint64 `json:"address"`

	// Bytes is the self size: memory occupied by this object alone,
	// excluding anything it references.
	Bytes uint64 `json:"bytes"`

	// Kind is the object's type tag, or the resolved class name for
	// plain instances.
	Kind string `json:"kind"`

	// Label is an optional kind-specific rendering (string contents,
	// array length, hash size). Empty means no precomputed label.
	Label string `json:"label,omitempty"`
}

// NewRootObject returns the synthetic root node. Its outgoing edges are
// the union of all root records' reference lists.
func NewRootObject() *MemoryObject {
	return &MemoryObject{
		Address: RootAddress,
		Kind:    RootKind,
		Label:   "root",
	}
}

// IsRoot reports whether o is the synthetic root.
func (o *MemoryObject) IsRoot() bool {
	return o.Address == RootAddress
}

// Stats returns the object's own contribution: one object, self bytes.
func (o *MemoryObject) Stats() Stats {
	return Stats{Count: 1, Bytes: o.Bytes}
}

// Display returns the label when one was derived, otherwise the
// "<kind>[<address>]" fallback.
func (o *MemoryObject) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return fmt.Sprintf("%s[%d]", o.Kind, o.Address)
}
