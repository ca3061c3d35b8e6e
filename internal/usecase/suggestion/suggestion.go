package usecase_suggestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/reelmatch/core/internal/model"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAccepting = errors.New("room does not accept suggestions")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=RoomReader --output=./mocks/suggestion/rooms --filename=rooms.go
type RoomReader interface {
	RoomByCode(ctx context.Context, code string) (model.Room, error)
}

//go:generate mockery --name=VotedItemsReader --output=./mocks/suggestion/voted --filename=voted.go
type VotedItemsReader interface {
	VotedItemIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
}

type Usecase struct {
	rooms RoomReader
	voted VotedItemsReader
}

func New(rooms RoomReader, voted VotedItemsReader) *Usecase {
	return &Usecase{
		rooms: rooms,
		voted: voted,
	}
}

// Suggest filters externally produced recommendations against items the room
// already voted on and returns the subset worth broadcasting. A matched room
// has no use for more candidates.
func (u *Usecase) Suggest(ctx context.Context, roomCode string, itemIDs []uuid.UUID) (uuid.UUID, []uuid.UUID, error) {
	room, err := u.rooms.RoomByCode(ctx, roomCode)
	if err != nil {
		return uuid.Nil, nil, ErrRoomNotFound
	}

	if room.Status == model.StatusMatched {
		return uuid.Nil, nil, ErrRoomNotAccepting
	}

	votedIDs, err := u.voted.VotedItemIDs(ctx, room.ID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	seen := make(map[uuid.UUID]struct{}, len(votedIDs))
	for _, id := range votedIDs {
		seen[id] = struct{}{}
	}

	fresh := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}

	return room.ID, fresh, nil
}
