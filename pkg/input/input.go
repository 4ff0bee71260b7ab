// Package input defines the OASIS InputEvent tagged union and the
// closed Button enum (spec §3).
package input

// Button enumerates the abstract buttons/scancodes the core
// understands. Concrete keyboard scancodes map onto these through
// the backend's Input trait implementation.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonConfirm
	ButtonCancel
	ButtonMenu
	ButtonShoulderL
	ButtonShoulderR
	ButtonStart
	ButtonSelect
)

// PointerButton distinguishes mouse/touch buttons from the Button enum.
type PointerButton int

const (
	PointerLeft PointerButton = iota
	PointerRight
	PointerMiddle
)

// Axis identifies an analog stick axis.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

// Kind tags the variant of an Event.
type Kind int

const (
	KindButtonPress Kind = iota
	KindButtonRelease
	KindCursorMove
	KindPointerDown
	KindPointerUp
	KindWheel
	KindTextInput
	KindAnalog
)

// Event is the tagged InputEvent union. Only the fields relevant to
// Kind are meaningful; this mirrors the Rust enum's payload shape
// without Go's lack of sum types forcing a wrapper-per-variant style
// the rest of the codebase never asks for.
type Event struct {
	Kind Kind

	Button        Button
	PointerButton PointerButton
	X, Y          int
	DX, DY        int
	Text          string
	AxisID        Axis
	AxisValue     float32 // in [-1, 1]
}

func ButtonPress(b Button) Event   { return Event{Kind: KindButtonPress, Button: b} }
func ButtonRelease(b Button) Event { return Event{Kind: KindButtonRelease, Button: b} }
func CursorMove(x, y int) Event    { return Event{Kind: KindCursorMove, X: x, Y: y} }

func PointerDown(x, y int, b PointerButton) Event {
	return Event{Kind: KindPointerDown, X: x, Y: y, PointerButton: b}
}

func PointerUp(x, y int, b PointerButton) Event {
	return Event{Kind: KindPointerUp, X: x, Y: y, PointerButton: b}
}

func Wheel(dx, dy int) Event { return Event{Kind: KindWheel, DX: dx, DY: dy} }
func TextInput(s string) Event {
	return Event{Kind: KindTextInput, Text: s}
}

func Analog(axis Axis, value float32) Event {
	if value < -1 {
		value = -1
	}
	if value > 1 {
		value = 1
	}
	return Event{Kind: KindAnalog, AxisID: axis, AxisValue: value}
}
