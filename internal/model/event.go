package model

import (
	"encoding/json"
	"time"
)

type EventKind = string

const (
	EventVote              EventKind = "vote"
	EventMatch             EventKind = "match"
	EventMemberStatus      EventKind = "memberStatus"
	EventRoleAssignment    EventKind = "roleAssignment"
	EventModerationAction  EventKind = "moderationAction"
	EventScheduleEvent     EventKind = "scheduleEvent"
	EventThemeChange       EventKind = "themeChange"
	EventSettingsChange    EventKind = "settingsChange"
	EventChatMessage       EventKind = "chatMessage"
	EventContentSuggestion EventKind = "contentSuggestion"
)

// EventEnvelope wraps any domain event destined for broadcast.
// Never mutated after creation.
type EventEnvelope struct {
	Kind      EventKind       `json:"kind"`
	RoomID    string          `json:"room_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewEnvelope(kind EventKind, roomID string, payload any) (EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{
		Kind:      kind,
		RoomID:    roomID,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}

type VoteProgress struct {
	Total      int     `json:"total"`
	Required   int     `json:"required"`
	Percentage float64 `json:"percentage"`
}

type VotePayload struct {
	UserID   string       `json:"user_id"`
	ItemID   string       `json:"item_id"`
	VoteType VoteType     `json:"vote_type"`
	Progress VoteProgress `json:"progress"`
}

type MatchPayload struct {
	ItemID         string   `json:"item_id"`
	ItemTitle      string   `json:"item_title"`
	PosterLink     string   `json:"poster_link,omitempty"`
	ParticipantIDs []string `json:"participant_ids"`
	ConsensusType  string   `json:"consensus_type"`
}

type MemberStatusPayload struct {
	UserID      string `json:"user_id"`
	Status      string `json:"status"` // joined | left
	ActiveCount int    `json:"active_count"`
}

type RoleAssignmentPayload struct {
	UserID string     `json:"user_id"`
	Role   MemberRole `json:"role"`
}

type ModerationActionPayload struct {
	ActorID  string `json:"actor_id"`
	TargetID string `json:"target_id"`
	Action   string `json:"action"`
	Reason   string `json:"reason,omitempty"`
}

type ScheduleEventPayload struct {
	Phase string `json:"phase"` // voting_started | voting_reset
}

type ThemeChangePayload struct {
	Theme string `json:"theme"`
}

type SettingsChangePayload struct {
	Genres     []string `json:"genres,omitempty"`
	MinYear    int      `json:"min_year,omitempty"`
	MaxRuntime int      `json:"max_runtime,omitempty"`
}

type ChatMessagePayload struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type ContentSuggestionPayload struct {
	Source string   `json:"source"`
	Items  []string `json:"items"`
}
