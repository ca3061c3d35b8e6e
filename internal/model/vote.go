package model

import "github.com/google/uuid"

type VoteType = string

const (
	VoteLike    VoteType = "LIKE"
	VoteDislike VoteType = "DISLIKE"
)

// Tally holds the per-item counters for one room.
// Mutated only through atomic increments at the store.
type Tally struct {
	RoomID   uuid.UUID
	ItemID   uuid.UUID
	Likes    int
	Dislikes int
}

// Receipt is what a voter gets back after submitting a vote.
type Receipt struct {
	Accepted      bool
	CurrentLikes  int
	RequiredVotes int
	MatchFound    bool
	MatchedItem   *uuid.UUID
}

type Result struct {
	MM    MovieMeta
	Likes int
}
