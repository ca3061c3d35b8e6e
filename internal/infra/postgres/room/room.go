package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/reelmatch/core/internal/model"
	usecase_room "github.com/reelmatch/core/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID          uuid.UUID      `db:"id"`
	HostID      uuid.UUID      `db:"host_id"`
	Code        string         `db:"code"`
	Status      string         `db:"status"`
	Genres      pq.StringArray `db:"genres"`
	MinYear     int            `db:"min_year"`
	MaxRuntime  int            `db:"max_runtime"`
	MatchedItem *uuid.UUID     `db:"matched_item"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (dto roomDTO) toModel() model.Room {
	return model.Room{
		ID:         dto.ID,
		PublicCode: dto.Code,
		HostID:     dto.HostID,
		Status:     dto.Status,
		Filter: model.ContentFilter{
			Genres:     []string(dto.Genres),
			MinYear:    dto.MinYear,
			MaxRuntime: dto.MaxRuntime,
		},
		MatchedItem: dto.MatchedItem,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

func (d *Driver) CreateAndBook(ctx context.Context, room model.Room, hostID uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO rooms (id, host_id, code, status, genres, min_year, max_runtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.ExecContext(ctx, query,
		room.ID,
		hostID,
		room.PublicCode,
		room.Status,
		pq.StringArray(room.Filter.Genres),
		room.Filter.MinYear,
		room.Filter.MaxRuntime,
	)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	memberQuery := `
		INSERT INTO members (room_id, user_id, role, active)
		VALUES ($1, $2, $3, true)
	`

	if _, err := tx.ExecContext(ctx, memberQuery, room.ID, hostID, model.RoleHost); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var room roomDTO

	query := `
        SELECT id, host_id, code, status, genres, min_year, max_runtime, matched_item, created_at, updated_at
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &room, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return room.toModel(), nil
}

func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	query := `
        DELETE FROM rooms
        WHERE code = $1
    `

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) TransitionStatus(ctx context.Context, roomID uuid.UUID, from, to model.RoomStatus) (bool, error) {
	query := `
        UPDATE rooms
        SET status = $1, updated_at = now()
        WHERE id = $2 AND status = $3
    `

	result, err := d.db.ExecContext(ctx, query, to, roomID, from)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (d *Driver) ResetRoom(ctx context.Context, roomID uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	queries := []string{
		`DELETE FROM reactions WHERE room_id = $1`,
		`DELETE FROM votes WHERE room_id = $1`,
		`UPDATE rooms SET status = 'WAITING', matched_item = NULL, updated_at = now() WHERE id = $1`,
	}

	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query, roomID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) UpsertMember(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, role model.MemberRole) error {
	query := `
        INSERT INTO members (room_id, user_id, role, active)
        VALUES ($1, $2, $3, true)
        ON CONFLICT (room_id, user_id)
        DO UPDATE SET active = true, role = EXCLUDED.role
    `

	_, err := d.db.ExecContext(ctx, query, roomID, userID, role)
	return err
}

func (d *Driver) SetMemberActive(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, active bool) error {
	query := `
        UPDATE members
        SET active = $1
        WHERE room_id = $2 AND user_id = $3
    `

	result, err := d.db.ExecContext(ctx, query, active, roomID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) SetMemberRole(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, role model.MemberRole) error {
	query := `
        UPDATE members
        SET role = $1
        WHERE room_id = $2 AND user_id = $3
    `

	result, err := d.db.ExecContext(ctx, query, role, roomID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

// TransferHost moves host authority in one transaction. rooms.host_id is the
// source of truth for host checks; member roles mirror it for clients.
func (d *Driver) TransferHost(ctx context.Context, roomID uuid.UUID, from uuid.UUID, to uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	promote := `
        UPDATE members
        SET role = 'HOST'
        WHERE room_id = $1 AND user_id = $2 AND active = true
    `

	result, err := tx.ExecContext(ctx, promote, roomID, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	demote := `
        UPDATE members
        SET role = 'MEMBER'
        WHERE room_id = $1 AND user_id = $2
    `

	if _, err := tx.ExecContext(ctx, demote, roomID, from); err != nil {
		return err
	}

	rehost := `
        UPDATE rooms
        SET host_id = $1, updated_at = now()
        WHERE id = $2
    `

	if _, err := tx.ExecContext(ctx, rehost, to, roomID); err != nil {
		return err
	}

	return tx.Commit()
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

func (d *Driver) UpdateFilter(ctx context.Context, roomID uuid.UUID, filter model.ContentFilter) error {
	query := `
        UPDATE rooms
        SET genres = $1, min_year = $2, max_runtime = $3, updated_at = now()
        WHERE id = $4
    `

	result, err := d.db.ExecContext(ctx, query,
		pq.StringArray(filter.Genres),
		filter.MinYear,
		filter.MaxRuntime,
		roomID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}
