package game

import (
	"fmt"

	"github.com/faiface/pixel"
)

type EventKind int

const (
	Primary EventKind = iota
	Secondary
	Auxiliary
	Move
	PrimaryRelease
	SecondaryRelease
	AuxiliaryRelease
)

var eventKindNames = []string{
	"primary",
	"secondary",
	"auxiliary",
	"move",
	"primary-release",
	"secondary-release",
	"auxiliary-release",
}

func (kind EventKind) String() string {
	if kind >= 0 && int(kind) < len(eventKindNames) {
		return eventKindNames[kind]
	}
	return fmt.Sprintf("EventKind(%d)", int(kind))
}

// IsClick reports whether the event is a button press, the only events which
// affect the board
func (kind EventKind) IsClick() bool {
	return kind == Primary || kind == Secondary || kind == Auxiliary
}

func (kind EventKind) IsRelease() bool {
	return kind == PrimaryRelease || kind == SecondaryRelease || kind == AuxiliaryRelease
}

// PointerEvent is a pointer action at a position in window pixels, with y
// growing downwards
type PointerEvent struct {
	Pos  pixel.Vec
	Kind EventKind
}

func (event PointerEvent) String() string {
	return fmt.Sprintf("%s@(%.1f, %.1f)", event.Kind, event.Pos.X, event.Pos.Y)
}
