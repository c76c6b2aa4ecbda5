package view

import "fmt"

// Axis is the stacking direction of a Stack.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// Stack is a container that lays its subviews out along an axis.
type Stack struct {
	Base
	Axis    Axis
	Spacing float64
}

// NewStack creates a vertical Stack.
func NewStack() *Stack {
	s := &Stack{}
	s.Init(s)
	return s
}

// ResetDefaults implements View.
func (s *Stack) ResetDefaults() {
	s.Base.ResetDefaults()
	s.Axis = Vertical
	s.Spacing = 0
}

// Label displays a line of text.
type Label struct {
	Base
	Text      string
	TextColor Color
}

// NewLabel creates an empty Label.
func NewLabel() *Label {
	l := &Label{}
	l.Init(l)
	return l
}

// ResetDefaults implements View.
func (l *Label) ResetDefaults() {
	l.Base.ResetDefaults()
	l.Text = ""
	l.TextColor = 0
}

// Describe is used by Dump.
func (l *Label) Describe() string {
	return fmt.Sprintf("%q", l.Text)
}

// Button is a tappable titled view. Taps are delivered to targets
// registered for the "tap" event.
type Button struct {
	Base
	Title   string
	Enabled bool
}

// NewButton creates an enabled Button.
func NewButton() *Button {
	b := &Button{}
	b.Init(b)
	b.Enabled = true
	return b
}

// ResetDefaults implements View.
func (b *Button) ResetDefaults() {
	b.Base.ResetDefaults()
	b.Title = ""
	b.Enabled = true
}

// Tap simulates a user tap.
func (b *Button) Tap() int {
	if !b.Enabled {
		return 0
	}
	return b.Send("tap")
}

// Describe is used by Dump.
func (b *Button) Describe() string {
	return fmt.Sprintf("%q", b.Title)
}

// Icon displays a named image.
type Icon struct {
	Base
	Name string
}

// NewIcon creates an Icon with no image.
func NewIcon() *Icon {
	i := &Icon{}
	i.Init(i)
	return i
}

// ResetDefaults implements View.
func (i *Icon) ResetDefaults() {
	i.Base.ResetDefaults()
	i.Name = ""
}

// Describe is used by Dump.
func (i *Icon) Describe() string {
	return i.Name
}

// Scroll is a scrollable container. Its content offset is user state and
// survives ResetDefaults, which is what makes reuse across passes keep the
// scroll position.
type Scroll struct {
	Base
	ContentOffset float64
}

// NewScroll creates a Scroll at offset zero.
func NewScroll() *Scroll {
	s := &Scroll{}
	s.Init(s)
	return s
}
