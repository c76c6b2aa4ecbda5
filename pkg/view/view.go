package view

import (
	"fmt"
	"strings"
)

// Rect is a view frame in points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is a width/height pair in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color is an RGBA color packed as 0xRRGGBBAA. The zero value is clear.
type Color uint32

// View is the minimal surface a toolkit exposes to the reconciler.
type View interface {
	// Subviews returns the ordered children. Callers must not mutate the slice.
	Subviews() []View

	// Superview returns the parent, or nil when detached.
	Superview() View

	// InsertSubview inserts child at index at, clamped to [0, len].
	// A child that already has a parent is removed from it first.
	InsertSubview(child View, at int)

	// RemoveFromSuperview detaches the view from its parent. No-op when detached.
	RemoveFromSuperview()

	// ResetDefaults restores the visual state the view had right after
	// construction.
	ResetDefaults()

	Frame() Rect
	SetFrame(r Rect)
}

// IndexOf returns the position of child within parent's subviews, or -1.
func IndexOf(parent, child View) int {
	if parent == nil {
		return -1
	}
	for i, v := range parent.Subviews() {
		if v == child {
			return i
		}
	}
	return -1
}

// TypeName returns the concrete type name of v (e.g. "*view.Label").
func TypeName(v View) string {
	return fmt.Sprintf("%T", v)
}

// Dump renders the hierarchy rooted at v as an indented outline.
func Dump(v View) string {
	var b strings.Builder
	dump(&b, v, 0)
	return b.String()
}

func dump(b *strings.Builder, v View, depth int) {
	if v == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(TypeName(v))
	if d, ok := v.(interface{ Describe() string }); ok {
		if s := d.Describe(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	b.WriteString("\n")
	for _, child := range v.Subviews() {
		dump(b, child, depth+1)
	}
}
