package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/community-tournaments/models"
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	GetBySlug(ctx context.Context, slug string) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id string) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	query := `INSERT INTO games (id, slug, data, version, created_at) VALUES ($1, $2, $3, 1, $4)`
	if _, err := r.db.ExecContext(ctx, query, g.ID, g.Slug, data, g.CreatedAt); err != nil {
		return r.handleGameError(err)
	}
	g.Version = 1
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	return r.getOne(ctx, `SELECT data, version FROM games WHERE id = $1`, id)
}

func (r *postgresGameRepository) GetBySlug(ctx context.Context, slug string) (*models.Game, error) {
	return r.getOne(ctx, `SELECT data, version FROM games WHERE slug = $1`, slug)
}

func (r *postgresGameRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Game, error) {
	var data []byte
	g := &models.Game{}
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&data, &g.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrGameNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}
	return g, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	games := make([]models.Game, 0)
	err := queryDocuments(ctx, r.db, `SELECT data, version FROM games ORDER BY data ->> 'name'`, nil, func(data []byte, version int) error {
		var g models.Game
		if err := json.Unmarshal(data, &g); err != nil {
			return fmt.Errorf("failed to decode game: %w", err)
		}
		g.Version = version
		games = append(games, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	query := `UPDATE games SET slug = $1, data = $2, version = version + 1 WHERE id = $3 AND version = $4`
	result, err := r.db.ExecContext(ctx, query, g.Slug, data, g.ID, g.Version)
	if err != nil {
		return r.handleGameError(err)
	}
	if err := checkVersionedUpdate(ctx, r.db, "games", g.ID, result, models.ErrGameNotFound); err != nil {
		return err
	}
	g.Version++
	return nil
}

func (r *postgresGameRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrGameNotFound)
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok && constraint == "games_slug_key" {
		return models.ErrGameNameTaken
	}
	return err
}
