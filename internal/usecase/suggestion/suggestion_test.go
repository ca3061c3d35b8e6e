package usecase_suggestion

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/reelmatch/core/internal/model"
	rooms_mocks "github.com/reelmatch/core/internal/usecase/suggestion/mocks/suggestion/rooms"
	voted_mocks "github.com/reelmatch/core/internal/usecase/suggestion/mocks/suggestion/voted"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type UsecaseSuggestionUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	rooms   *rooms_mocks.RoomReader
	voted   *voted_mocks.VotedItemsReader
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	rooms := rooms_mocks.NewRoomReader(t)
	voted := voted_mocks.NewVotedItemsReader(t)

	return &resources{
		usecase: New(rooms, voted),
		rooms:   rooms,
		voted:   voted,
		ctx:     context.Background(),
	}
}

func activeRoom() model.Room {
	return model.Room{
		ID:         uuid.New(),
		PublicCode: "123456",
		HostID:     uuid.New(),
		Status:     model.StatusActive,
	}
}

func (s *UsecaseSuggestionUnitSuite) TestSuggest(t provider.T) {
	t.Parallel()

	t.Run("Should drop items the room already voted on", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		seen := uuid.New()
		fresh := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.voted.On("VotedItemIDs", r.ctx, room.ID).Return([]uuid.UUID{seen}, nil).Once()

		roomID, accepted, err := r.usecase.Suggest(r.ctx, room.PublicCode, []uuid.UUID{seen, fresh})

		assert.NoError(t, err)
		assert.Equal(t, room.ID, roomID)
		assert.Equal(t, []uuid.UUID{fresh}, accepted)
	})

	t.Run("Should collapse duplicates inside one batch", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		item := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.voted.On("VotedItemIDs", r.ctx, room.ID).Return(nil, nil).Once()

		_, accepted, err := r.usecase.Suggest(r.ctx, room.PublicCode, []uuid.UUID{item, item})

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{item}, accepted)
	})

	t.Run("Should refuse a matched room", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		room.Status = model.StatusMatched

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()

		_, _, err := r.usecase.Suggest(r.ctx, room.PublicCode, []uuid.UUID{uuid.New()})

		assert.ErrorIs(t, err, ErrRoomNotAccepting)
	})

	t.Run("Should report an unknown room", func(t provider.T) {
		r := initResources(t)

		r.rooms.On("RoomByCode", r.ctx, "000000").
			Return(model.Room{}, errors.New("no rows")).Once()

		_, _, err := r.usecase.Suggest(r.ctx, "000000", []uuid.UUID{uuid.New()})

		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSuggestionUnitSuite))
}
