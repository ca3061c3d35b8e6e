package infra_postgres_catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/reelmatch/core/internal/model"
)

var ErrItemNotFound = errors.New("catalog item not found")

// Driver is the read side of the external media catalog.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type movieDTO struct {
	ID         uuid.UUID      `db:"id"`
	Title      string         `db:"title"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Genres     pq.StringArray `db:"genres"`
	Overview   string         `db:"overview"`
	PosterLink string         `db:"poster_link"`
}

func (d *Driver) MetaByID(ctx context.Context, itemID uuid.UUID) (*model.MovieMeta, error) {
	var movie movieDTO

	query := `
		SELECT id, title, year, rating, genres, overview, poster_link
		FROM movies
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &movie, query, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &model.MovieMeta{
		ID:         movie.ID,
		Title:      movie.Title,
		Year:       movie.Year,
		Rating:     movie.Rating,
		Genres:     []string(movie.Genres),
		Overview:   movie.Overview,
		PosterLink: movie.PosterLink,
	}, nil
}
