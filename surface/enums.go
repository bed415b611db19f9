package surface

//go:generate go tool go-enum --marshal --names --values

// Input event delivered by the host.
// ENUM(click, dblclick, pointerdown, pointermove, pointerup, pointercancel, pointerleave, blur)
type EventType int

// Listener phase, capture runs from root to target, bubble back.
// ENUM(capture, bubble)
type Phase int
