package infra_postgres_vote

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/reelmatch/core/internal/model"
	usecase_vote "github.com/reelmatch/core/internal/usecase/vote"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID          uuid.UUID  `db:"id"`
	HostID      uuid.UUID  `db:"host_id"`
	Code        string     `db:"code"`
	Status      string     `db:"status"`
	MatchedItem *uuid.UUID `db:"matched_item"`
}

type tallyDTO struct {
	Likes    int `db:"likes"`
	Dislikes int `db:"dislikes"`
}

type resultDTO struct {
	MovieID    uuid.UUID      `db:"movie_id"`
	Title      string         `db:"title"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Genres     pq.StringArray `db:"genres"`
	Overview   string         `db:"overview"`
	PosterLink string         `db:"poster_link"`
	Likes      int            `db:"likes"`
}

func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var room roomDTO

	query := `
		SELECT id, host_id, code, status, matched_item
		FROM rooms
		WHERE code = $1
	`

	err := d.db.GetContext(ctx, &room, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_vote.ErrRoomNotFound
		}
		return model.Room{}, err
	}

	return model.Room{
		ID:          room.ID,
		HostID:      room.HostID,
		PublicCode:  room.Code,
		Status:      room.Status,
		MatchedItem: room.MatchedItem,
	}, nil
}

func (d *Driver) ActiveMemberCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(user_id)
		FROM members
		WHERE room_id = $1 AND active = true
	`

	err := d.db.GetContext(ctx, &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *Driver) IsActiveMember(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM members
			WHERE room_id = $1 AND user_id = $2 AND active = true
		)
	`

	err := d.db.GetContext(ctx, &exists, query, roomID, userID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (d *Driver) ActiveMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT user_id
		FROM members
		WHERE room_id = $1 AND active = true
	`

	err := d.db.SelectContext(ctx, &ids, query, roomID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// MarkMatched is the exactly-once transition: the conditional WHERE lets only
// one racing vote move the room out of ACTIVE.
func (d *Driver) MarkMatched(ctx context.Context, roomID uuid.UUID, itemID uuid.UUID) (bool, error) {
	query := `
		UPDATE rooms
		SET status = 'MATCHED', matched_item = $1, updated_at = now()
		WHERE id = $2 AND status = 'ACTIVE'
	`

	result, err := d.db.ExecContext(ctx, query, itemID, roomID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// CountVote claims the per-user-per-item marker and bumps the counter bucket
// in one transaction. A failed upsert rolls the marker back, so the vote can
// be retried. ON CONFLICT DO NOTHING makes repeat votes visible as zero
// affected rows; the caller never double-counts.
func (d *Driver) CountVote(ctx context.Context, roomID uuid.UUID, itemID uuid.UUID, userID uuid.UUID, vote model.VoteType) (bool, model.Tally, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, model.Tally{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	marker := `
		INSERT INTO votes (room_id, item_id, user_id, vote_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, item_id, user_id)
		DO NOTHING
	`

	result, err := tx.ExecContext(ctx, marker, roomID, itemID, userID, vote)
	if err != nil {
		return false, model.Tally{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, model.Tally{}, err
	}

	if rowsAffected == 0 {
		// Repeat vote. Report the unchanged counters.
		tally, err := currentTally(ctx, tx, roomID, itemID)
		if err != nil {
			return false, model.Tally{}, err
		}
		return false, tally, tx.Commit()
	}

	likeInc, dislikeInc := 0, 0
	if vote == model.VoteLike {
		likeInc = 1
	} else {
		dislikeInc = 1
	}

	upsert := `
		INSERT INTO reactions (room_id, item_id, likes, dislikes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, item_id)
		DO UPDATE SET
			likes = reactions.likes + EXCLUDED.likes,
			dislikes = reactions.dislikes + EXCLUDED.dislikes
		RETURNING likes, dislikes
	`

	var tally tallyDTO
	err = tx.GetContext(ctx, &tally, upsert, roomID, itemID, likeInc, dislikeInc)
	if err != nil {
		return false, model.Tally{}, err
	}

	return true, model.Tally{
		RoomID:   roomID,
		ItemID:   itemID,
		Likes:    tally.Likes,
		Dislikes: tally.Dislikes,
	}, tx.Commit()
}

func currentTally(ctx context.Context, tx *sqlx.Tx, roomID uuid.UUID, itemID uuid.UUID) (model.Tally, error) {
	query := `
		SELECT likes, dislikes
		FROM reactions
		WHERE room_id = $1 AND item_id = $2
	`

	var tally tallyDTO
	err := tx.GetContext(ctx, &tally, query, roomID, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Tally{RoomID: roomID, ItemID: itemID}, nil
		}
		return model.Tally{}, err
	}

	return model.Tally{
		RoomID:   roomID,
		ItemID:   itemID,
		Likes:    tally.Likes,
		Dislikes: tally.Dislikes,
	}, nil
}

func (d *Driver) VotedItemIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT DISTINCT item_id
		FROM votes
		WHERE room_id = $1
	`

	err := d.db.SelectContext(ctx, &ids, query, roomID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (d *Driver) Results(ctx context.Context, roomID uuid.UUID) ([]*model.Result, error) {
	var results []resultDTO

	query := `
		SELECT
			m.id as movie_id,
			m.title,
			m.year,
			m.rating,
			m.genres,
			m.overview,
			m.poster_link,
			COALESCE(r.likes, 0) as likes
		FROM movies m
		JOIN reactions r ON m.id = r.item_id AND r.room_id = $1
		WHERE r.likes > 0
		ORDER BY likes DESC
	`

	err := d.db.SelectContext(ctx, &results, query, roomID)
	if err != nil {
		return nil, err
	}

	modelResults := make([]*model.Result, 0, len(results))
	for _, r := range results {
		movieMeta := model.MovieMeta{
			ID:         r.MovieID,
			Title:      r.Title,
			Year:       r.Year,
			Rating:     r.Rating,
			Genres:     []string(r.Genres),
			Overview:   r.Overview,
			PosterLink: r.PosterLink,
		}
		modelResults = append(modelResults, &model.Result{
			MM:    movieMeta,
			Likes: r.Likes,
		})
	}

	return modelResults, nil
}
