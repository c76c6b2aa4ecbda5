package view

// Target is an interaction target attached to a view.
type Target struct {
	Event  string
	Action func()
}

// Base implements View for the in-memory toolkit. Concrete views embed it
// and call Init with themselves before use.
type Base struct {
	self      View
	superview View
	subviews  []View
	frame     Rect

	BackgroundColor    Color
	Alpha              float64
	Hidden             bool
	AccessibilityLabel string
	targets            []Target
}

// Init binds the embedding view to its Base and applies construction
// defaults. It must be called exactly once, by the constructor.
func (b *Base) Init(self View) {
	b.self = self
	b.resetBase()
}

func (b *Base) base() *Base { return b }

type baser interface{ base() *Base }

func (b *Base) owner() View {
	if b.self == nil {
		panic("view: Base used before Init")
	}
	return b.self
}

// Subviews implements View.
func (b *Base) Subviews() []View {
	return b.subviews
}

// Superview implements View.
func (b *Base) Superview() View {
	return b.superview
}

// InsertSubview implements View.
func (b *Base) InsertSubview(child View, at int) {
	cb, ok := child.(baser)
	if !ok {
		panic("view: InsertSubview with a view that does not embed view.Base")
	}
	if child.Superview() != nil {
		child.RemoveFromSuperview()
	}

	if at < 0 {
		at = 0
	}
	if at > len(b.subviews) {
		at = len(b.subviews)
	}
	b.subviews = append(b.subviews, nil)
	copy(b.subviews[at+1:], b.subviews[at:])
	b.subviews[at] = child
	cb.base().superview = b.owner()
}

// RemoveFromSuperview implements View.
func (b *Base) RemoveFromSuperview() {
	if b.superview == nil {
		return
	}
	parent, ok := b.superview.(baser)
	b.superview = nil
	if !ok {
		return
	}
	pb := parent.base()
	self := b.owner()
	for i, v := range pb.subviews {
		if v == self {
			pb.subviews = append(pb.subviews[:i], pb.subviews[i+1:]...)
			return
		}
	}
}

// ResetDefaults implements View.
func (b *Base) ResetDefaults() {
	b.resetBase()
}

func (b *Base) resetBase() {
	b.BackgroundColor = 0
	b.Alpha = 1
	b.Hidden = false
	b.AccessibilityLabel = ""
	b.targets = nil
}

// Frame implements View.
func (b *Base) Frame() Rect {
	return b.frame
}

// SetFrame implements View.
func (b *Base) SetFrame(r Rect) {
	b.frame = r
}

// IsHidden reports whether the view is hidden. Layout engines give hidden
// views an empty frame.
func (b *Base) IsHidden() bool {
	return b.Hidden
}

// AddTarget attaches an interaction target.
func (b *Base) AddTarget(event string, action func()) {
	b.targets = append(b.targets, Target{Event: event, Action: action})
}

// Targets returns the attached interaction targets.
func (b *Base) Targets() []Target {
	return b.targets
}

// Send invokes every target registered for event and reports how many ran.
func (b *Base) Send(event string) int {
	n := 0
	for _, t := range b.targets {
		if t.Event == event && t.Action != nil {
			t.Action()
			n++
		}
	}
	return n
}
