package todo

import "github.com/amonks/neotodo/internal/ids"

// ID identifies a todo. IDs are opaque and never reused within a process.
type ID string

// String returns the ID as a plain string.
func (id ID) String() string {
	return string(id)
}

// IDGenerator produces fresh todo IDs.
type IDGenerator interface {
	NewID() ID
}

// IDGeneratorFunc adapts a function to the IDGenerator interface.
type IDGeneratorFunc func() ID

// NewID calls fn.
func (fn IDGeneratorFunc) NewID() ID {
	return fn()
}

// UUIDs returns a generator of random UUIDs.
func UUIDs() IDGenerator {
	return IDGeneratorFunc(func() ID {
		return ID(ids.NewUUID())
	})
}

// ShortIDs returns a generator of 8-character base32 IDs.
func ShortIDs() IDGenerator {
	generator := ids.NewShortGenerator(ids.DefaultLength)
	return IDGeneratorFunc(func() ID {
		return ID(generator.Next())
	})
}
