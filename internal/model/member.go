package model

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole = string

const (
	RoleHost   MemberRole = "HOST"
	RoleMember MemberRole = "MEMBER"
)

type Member struct {
	RoomID   uuid.UUID
	UserID   uuid.UUID
	Role     MemberRole
	Active   bool
	JoinedAt time.Time
}
