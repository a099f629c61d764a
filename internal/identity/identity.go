// Package identity hands out reference identities for values that must stay
// distinct in a map even when their contents are byte-identical.
//
// Several places in the importer key maps by Module or Song object identity:
// two instances with the same content are still distinct entries. Go maps
// can't key on arbitrary pointers portably across types without losing type
// safety, so each identity-keyed value is given a small monotonically
// increasing ID at construction time (see musicdata.Module and
// musicdata.Song), and callers key their own maps on that ID instead of on
// the pointer value or on struct equality.
package identity

// ID is a dense, per-process-run identity assigned to a value at construction.
// Two values with the same field contents but different IDs are distinct for
// the purposes of every identity-keyed collection that uses these IDs.
type ID uint64

// Counter hands out increasing IDs. The zero value is ready to use.
type Counter struct {
	next ID
}

// Next returns a new, previously unused ID.
func (c *Counter) Next() ID {
	c.next++
	return c.next
}
