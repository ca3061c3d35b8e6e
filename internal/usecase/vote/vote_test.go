package usecase_vote

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/reelmatch/core/internal/model"
	catalog_mocks "github.com/reelmatch/core/internal/usecase/vote/mocks/vote/catalog"
	rooms_mocks "github.com/reelmatch/core/internal/usecase/vote/mocks/vote/rooms"
	tallies_mocks "github.com/reelmatch/core/internal/usecase/vote/mocks/vote/tallies"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	rooms   *rooms_mocks.RoomReader
	tallies *tallies_mocks.TallyRepository
	catalog *catalog_mocks.CatalogReader
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	rooms := rooms_mocks.NewRoomReader(t)
	tallies := tallies_mocks.NewTallyRepository(t)
	catalog := catalog_mocks.NewCatalogReader(t)
	usecase := New(rooms, tallies, catalog, nil)

	return &resources{
		usecase: usecase,
		rooms:   rooms,
		tallies: tallies,
		catalog: catalog,
		ctx:     context.Background(),
	}
}

func validRoomCode() string {
	return "123456"
}

func activeRoom() model.Room {
	return model.Room{
		ID:         uuid.New(),
		PublicCode: validRoomCode(),
		HostID:     uuid.New(),
		Status:     model.StatusActive,
	}
}

func (s *UsecaseVoteUnitSuite) TestSubmitLike(t provider.T) {
	t.Parallel()

	t.Run("Should accept a like below the threshold without matching", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(true, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 2}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(3, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.False(t, receipt.MatchFound)
		assert.Equal(t, 2, receipt.CurrentLikes)
		assert.Equal(t, 3, receipt.RequiredVotes)
	})

	t.Run("Should match when the final active member likes", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(true, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 3}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(3, nil).Once()
		r.rooms.On("MarkMatched", r.ctx, room.ID, itemID).Return(true, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.True(t, receipt.MatchFound)
		assert.NotNil(t, receipt.MatchedItem)
		assert.Equal(t, itemID, *receipt.MatchedItem)
	})

	t.Run("Should not report a match when another vote won the transition", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(true, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 2}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(2, nil).Once()
		r.rooms.On("MarkMatched", r.ctx, room.ID, itemID).Return(false, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.False(t, receipt.MatchFound)
		assert.Nil(t, receipt.MatchedItem)
	})

	t.Run("Should never match an empty room", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(true, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 1}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(0, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.NoError(t, err)
		assert.False(t, receipt.MatchFound)
	})
}

func (s *UsecaseVoteUnitSuite) TestSubmitDislike(t provider.T) {
	t.Parallel()

	t.Run("Should count a dislike without checking the threshold", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteDislike).
			Return(true, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 5, Dislikes: 1}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(1, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteDislike)

		assert.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.False(t, receipt.MatchFound)
	})
}

func (s *UsecaseVoteUnitSuite) TestSubmitDuplicate(t provider.T) {
	t.Parallel()

	t.Run("Should leave the tally untouched on a repeat vote", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(false, model.Tally{RoomID: room.ID, ItemID: itemID, Likes: 2}, nil).Once()
		r.rooms.On("ActiveMemberCount", r.ctx, room.ID).Return(3, nil).Once()

		receipt, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.NoError(t, err)
		assert.False(t, receipt.Accepted)
		assert.False(t, receipt.MatchFound)
		assert.Equal(t, 2, receipt.CurrentLikes)
	})
}

func (s *UsecaseVoteUnitSuite) TestSubmitPreconditions(t provider.T) {
	t.Parallel()

	t.Run("Should reject when room does not exist", func(t provider.T) {
		r := initResources(t)

		r.rooms.On("RoomByCode", r.ctx, validRoomCode()).
			Return(model.Room{}, ErrRoomNotFound).Once()

		_, err := r.usecase.Submit(r.ctx, validRoomCode(), uuid.New(), uuid.New(), model.VoteLike)

		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("Should reject when room is not active", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		room.Status = model.StatusWaiting

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()

		_, err := r.usecase.Submit(r.ctx, room.PublicCode, uuid.New(), uuid.New(), model.VoteLike)

		assert.ErrorIs(t, err, ErrRoomNotActive)
	})

	t.Run("Should reject when room already matched", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		room.Status = model.StatusMatched

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()

		_, err := r.usecase.Submit(r.ctx, room.PublicCode, uuid.New(), uuid.New(), model.VoteLike)

		assert.ErrorIs(t, err, ErrRoomNotActive)
	})

	t.Run("Should reject a voter outside the room", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		userID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(false, nil).Once()

		_, err := r.usecase.Submit(r.ctx, room.PublicCode, uuid.New(), userID, model.VoteLike)

		assert.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("Should wrap repository failures", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		userID := uuid.New()
		itemID := uuid.New()

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.rooms.On("IsActiveMember", r.ctx, room.ID, userID).Return(true, nil).Once()
		r.tallies.On("CountVote", r.ctx, room.ID, itemID, userID, model.VoteLike).
			Return(false, model.Tally{}, errors.New("connection reset")).Once()

		_, err := r.usecase.Submit(r.ctx, room.PublicCode, itemID, userID, model.VoteLike)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func (s *UsecaseVoteUnitSuite) TestMatchDetails(t provider.T) {
	t.Parallel()

	t.Run("Should return meta and participants", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		itemID := uuid.New()
		participants := []uuid.UUID{uuid.New(), uuid.New()}
		meta := &model.MovieMeta{ID: itemID, Title: "Heat", PosterLink: "poster/heat.jpg"}

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.catalog.On("MetaByID", r.ctx, itemID).Return(meta, nil).Once()
		r.rooms.On("ActiveMemberIDs", r.ctx, room.ID).Return(participants, nil).Once()

		gotMeta, gotParticipants, err := r.usecase.MatchDetails(r.ctx, room.PublicCode, itemID)

		assert.NoError(t, err)
		assert.Equal(t, meta, gotMeta)
		assert.ElementsMatch(t, participants, gotParticipants)
	})
}

func (s *UsecaseVoteUnitSuite) TestResults(t provider.T) {
	t.Parallel()

	t.Run("Should return results ordered by the repository", func(t provider.T) {
		r := initResources(t)
		room := activeRoom()
		expected := []*model.Result{
			{MM: model.MovieMeta{ID: uuid.New(), Title: "Alien"}, Likes: 4},
			{MM: model.MovieMeta{ID: uuid.New(), Title: "Blade Runner"}, Likes: 2},
		}

		r.rooms.On("RoomByCode", r.ctx, room.PublicCode).Return(room, nil).Once()
		r.tallies.On("Results", r.ctx, room.ID).Return(expected, nil).Once()

		actual, err := r.usecase.Results(r.ctx, room.PublicCode)

		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("Should surface room lookup failure", func(t provider.T) {
		r := initResources(t)

		r.rooms.On("RoomByCode", r.ctx, validRoomCode()).
			Return(model.Room{}, ErrRoomNotFound).Once()

		results, err := r.usecase.Results(r.ctx, validRoomCode())

		assert.ErrorIs(t, err, ErrRoomNotFound)
		assert.Nil(t, results)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
