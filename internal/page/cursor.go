package page

// CursorRadius centers the cursor dot on the pointer.
const CursorRadius = 10.0

type Cursor struct {
	X, Y  float64
	Scale float64
}

func NewCursor() *Cursor { return &Cursor{Scale: 1} }

func (c *Cursor) Move(px, py float64) {
	c.X, c.Y = px-CursorRadius, py-CursorRadius
}

// Hover grows the cursor over interactive elements.
func (c *Cursor) Hover(interactive bool) {
	if interactive {
		c.Scale = 2
		return
	}
	c.Scale = 1
}
