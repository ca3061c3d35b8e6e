package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomID = string

const EmptyRoomID RoomID = ""

type RoomStatus = string

const (
	StatusWaiting RoomStatus = "WAITING"
	StatusActive  RoomStatus = "ACTIVE"
	StatusMatched RoomStatus = "MATCHED"
)

// ContentFilter narrows which catalog items a room is voting on.
type ContentFilter struct {
	Genres     []string
	MinYear    int
	MaxRuntime int
}

type Room struct {
	ID         uuid.UUID
	PublicCode string
	HostID     uuid.UUID
	Status     RoomStatus
	Filter     ContentFilter

	// Set once, when the room reaches unanimous agreement.
	MatchedItem *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
