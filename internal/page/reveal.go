package page

const (
	// RevealThreshold is the visible fraction that reveals an element.
	RevealThreshold = 0.1

	// RevealMarginBottom shrinks the viewport from below.
	RevealMarginBottom = 50.0

	SectionOffset = 30.0
	CardOffset    = 20.0
)

// Element is a block that fades in once scrolled into view.
type Element struct {
	Name    string
	Top     float64
	Height  float64
	Offset  float64
	Visible bool
}

// Reveal tracks which elements have been shown. Reveals are one-way.
type Reveal struct {
	Elements []*Element
}

func (r *Reveal) Add(name string, top, height, offset float64) *Element {
	e := &Element{Name: name, Top: top, Height: height, Offset: offset}
	r.Elements = append(r.Elements, e)
	return e
}

// Observe reveals every element intersecting the viewport that starts at
// scrollTop and is viewport tall. Returns the newly revealed elements.
func (r *Reveal) Observe(scrollTop, viewport float64) []*Element {
	top, bottom := scrollTop, scrollTop+viewport-RevealMarginBottom
	var shown []*Element
	for _, e := range r.Elements {
		if e.Visible || e.Height <= 0 {
			continue
		}
		overlap := min(bottom, e.Top+e.Height) - max(top, e.Top)
		if overlap > 0 && overlap/e.Height >= RevealThreshold {
			e.Visible = true
			shown = append(shown, e)
		}
	}
	return shown
}

// Opacity and Shift are the element's current style.
func (e *Element) Opacity() float64 {
	if e.Visible {
		return 1
	}
	return 0
}

func (e *Element) Shift() float64 {
	if e.Visible {
		return 0
	}
	return e.Offset
}

// Next returns the first element starting below scrollTop, wrapping to the
// first element at the end of the page. Nil when there are no elements.
func (r *Reveal) Next(scrollTop float64) *Element {
	if len(r.Elements) == 0 {
		return nil
	}
	for _, e := range r.Elements {
		if e.Top > scrollTop {
			return e
		}
	}
	return r.Elements[0]
}
