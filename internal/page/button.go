package page

// A hovered button rises by ButtonLift pixels and grows by ButtonScale.
const (
	ButtonLift  = -3.0
	ButtonScale = 1.02
)

// Buttons tracks which named buttons the pointer is over.
type Buttons struct {
	hovered map[string]bool
}

func NewButtons() *Buttons { return &Buttons{hovered: make(map[string]bool)} }

func (b *Buttons) Enter(name string) { b.hovered[name] = true }
func (b *Buttons) Leave(name string) { delete(b.hovered, name) }

func (b *Buttons) Hovered(name string) bool { return b.hovered[name] }

// Transform returns the vertical offset and scale of button name.
func (b *Buttons) Transform(name string) (dy, scale float64) {
	if b.hovered[name] {
		return ButtonLift, ButtonScale
	}
	return 0, 1
}
