package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/community-tournaments/models"
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id string) (*models.Season, error)
	GetByNumero(ctx context.Context, numero int) (*models.Season, error)
	// GetCurrent returns the season with the highest numero.
	GetCurrent(ctx context.Context) (*models.Season, error)
	// FindByTournament returns the season holding the tournament, or ErrSeasonNotFound.
	FindByTournament(ctx context.Context, tournamentID string) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	Delete(ctx context.Context, id string) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode season: %w", err)
	}
	query := `INSERT INTO seasons (id, numero, data, version, created_at) VALUES ($1, $2, $3, 1, $4)`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Numero, data, s.CreatedAt); err != nil {
		return r.handleSeasonError(err)
	}
	s.Version = 1
	return nil
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id string) (*models.Season, error) {
	return r.getOne(ctx, `SELECT data, version FROM seasons WHERE id = $1`, id)
}

func (r *postgresSeasonRepository) GetByNumero(ctx context.Context, numero int) (*models.Season, error) {
	return r.getOne(ctx, `SELECT data, version FROM seasons WHERE numero = $1`, numero)
}

func (r *postgresSeasonRepository) GetCurrent(ctx context.Context) (*models.Season, error) {
	return r.getOne(ctx, `SELECT data, version FROM seasons ORDER BY numero DESC LIMIT 1`)
}

func (r *postgresSeasonRepository) FindByTournament(ctx context.Context, tournamentID string) (*models.Season, error) {
	return r.getOne(ctx, `SELECT data, version FROM seasons WHERE data -> 'tournaments' ? $1 LIMIT 1`, tournamentID)
}

func (r *postgresSeasonRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Season, error) {
	var data []byte
	s := &models.Season{}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&data, &s.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSeasonNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode season: %w", err)
	}
	return s, nil
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]models.Season, error) {
	seasons := make([]models.Season, 0)
	err := queryDocuments(ctx, r.db, `SELECT data, version FROM seasons ORDER BY numero`, nil, func(data []byte, version int) error {
		var s models.Season
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode season: %w", err)
		}
		s.Version = version
		seasons = append(seasons, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seasons, nil
}

func (r *postgresSeasonRepository) Update(ctx context.Context, s *models.Season) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode season: %w", err)
	}
	query := `UPDATE seasons SET numero = $1, data = $2, version = version + 1 WHERE id = $3 AND version = $4`
	result, err := r.db.ExecContext(ctx, query, s.Numero, data, s.ID, s.Version)
	if err != nil {
		return r.handleSeasonError(err)
	}
	if err := checkVersionedUpdate(ctx, r.db, "seasons", s.ID, result, models.ErrSeasonNotFound); err != nil {
		return err
	}
	s.Version++
	return nil
}

func (r *postgresSeasonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) handleSeasonError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok && constraint == "seasons_numero_key" {
		return models.ErrSeasonNumeroTaken
	}
	return err
}
