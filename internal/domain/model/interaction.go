package model

import "time"

// Direction is the outcome of a swipe.
type Direction string

// Swipe directions. The history is append-only; records are never mutated.
const (
	DirectionAccept Direction = "accept"
	DirectionReject Direction = "reject"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionAccept || d == DirectionReject
}

// Interaction records one swipe by Actor on Target.
// EventID makes ingestion idempotent.
type Interaction struct {
	EventID   string    `json:"event_id"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	Direction Direction `json:"direction"`
	TS        time.Time `json:"ts"`
}
