package query

// Cursor is the caller-owned position of a load-more sequence.
// Views keep it between calls instead of hiding an offset in closures.
type Cursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewCursor starts a sequence at offset 0.
func NewCursor(limit int) Cursor {
	return Cursor{Limit: limit}
}

// Criteria returns base with the cursor's page window applied.
func (c Cursor) Criteria(base Criteria) Criteria {
	base.Offset = c.Offset
	base.Limit = c.Limit
	return base
}

// Advance returns the cursor for the next load-more. The offset grows by
// Limit whatever the size of the page just served.
func (c Cursor) Advance() Cursor {
	c.Offset += c.Limit
	return c
}
