package usecase_vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/reelmatch/core/internal/model"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNotActive = errors.New("room is not active")
	ErrNotAMember    = errors.New("not an active member of the room")
	ErrInternal      = errors.New("internal error")
)

//go:generate mockery --name=RoomReader --output=./mocks/vote/rooms --filename=rooms.go
type RoomReader interface {
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	ActiveMemberCount(ctx context.Context, roomID uuid.UUID) (int, error)
	IsActiveMember(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (bool, error)
	ActiveMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)

	// MarkMatched transitions the room to MATCHED recording the item.
	// Returns false when the room already left ACTIVE, so the transition
	// fires at most once no matter how many votes race the threshold.
	MarkMatched(ctx context.Context, roomID uuid.UUID, itemID uuid.UUID) (bool, error)
}

//go:generate mockery --name=TallyRepository --output=./mocks/vote/tallies --filename=tallies.go
type TallyRepository interface {
	// CountVote claims the per-user-per-item dedup marker and bumps the
	// counter bucket in one transaction, so a failed increment never leaves
	// a marker behind. counted=false means the user already voted on that
	// item; the returned tally is current either way.
	CountVote(ctx context.Context, roomID uuid.UUID, itemID uuid.UUID, userID uuid.UUID, vote model.VoteType) (bool, model.Tally, error)

	Results(ctx context.Context, roomID uuid.UUID) ([]*model.Result, error)
}

//go:generate mockery --name=CatalogReader --output=./mocks/vote/catalog --filename=catalog.go
type CatalogReader interface {
	MetaByID(ctx context.Context, itemID uuid.UUID) (*model.MovieMeta, error)
}

type PosterResolver interface {
	ResolveLink(ctx context.Context, rawLink string) (string, error)
}

type Usecase struct {
	rooms   RoomReader
	tallies TallyRepository
	catalog CatalogReader
	posters PosterResolver
}

func New(
	rooms RoomReader,
	tallies TallyRepository,
	catalog CatalogReader,
	posters PosterResolver,
) *Usecase {
	return &Usecase{
		rooms:   rooms,
		tallies: tallies,
		catalog: catalog,
		posters: posters,
	}
}

// Submit registers a single vote and decides whether the room just reached
// unanimous agreement. Preconditions fail fast, in order, before any tally
// mutation. A repeat vote from the same user on the same item changes
// nothing and reports the current counts.
func (u *Usecase) Submit(ctx context.Context, roomCode string, itemID uuid.UUID, userID uuid.UUID, vote model.VoteType) (model.Receipt, error) {
	room, err := u.rooms.RoomByCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.Receipt{}, ErrRoomNotFound
		}
		return model.Receipt{}, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	if room.Status != model.StatusActive {
		return model.Receipt{}, ErrRoomNotActive
	}

	isMember, err := u.rooms.IsActiveMember(ctx, room.ID, userID)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("%w : %w", ErrInternal, err)
	}
	if !isMember {
		return model.Receipt{}, ErrNotAMember
	}

	counted, tally, err := u.tallies.CountVote(ctx, room.ID, itemID, userID, vote)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	totalActive, err := u.rooms.ActiveMemberCount(ctx, room.ID)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	if !counted {
		// Duplicate. Report the unchanged tally.
		return model.Receipt{
			Accepted:      false,
			CurrentLikes:  tally.Likes,
			RequiredVotes: totalActive,
		}, nil
	}

	receipt := model.Receipt{
		Accepted:      true,
		CurrentLikes:  tally.Likes,
		RequiredVotes: totalActive,
	}

	// Quorum guard: an empty room can never match.
	if vote == model.VoteLike && totalActive > 0 && tally.Likes >= totalActive {
		transitioned, err := u.rooms.MarkMatched(ctx, room.ID, itemID)
		if err != nil {
			return model.Receipt{}, fmt.Errorf("%w : %w", ErrInternal, err)
		}
		if transitioned {
			receipt.MatchFound = true
			receipt.MatchedItem = &itemID
		}
	}

	return receipt, nil
}

// MatchDetails collects everything the match broadcast needs: item meta,
// a resolvable poster link and the ids of everyone who agreed.
func (u *Usecase) MatchDetails(ctx context.Context, roomCode string, itemID uuid.UUID) (*model.MovieMeta, []uuid.UUID, error) {
	room, err := u.rooms.RoomByCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	meta, err := u.catalog.MetaByID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	if u.posters != nil && meta.PosterLink != "" {
		if link, err := u.posters.ResolveLink(ctx, meta.PosterLink); err == nil {
			meta.PosterLink = link
		}
	}

	participants, err := u.rooms.ActiveMemberIDs(ctx, room.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	return meta, participants, nil
}

func (u *Usecase) Results(ctx context.Context, roomCode string) ([]*model.Result, error) {
	room, err := u.rooms.RoomByCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	results, err := u.tallies.Results(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("%w : %w", ErrInternal, err)
	}

	return results, nil
}
