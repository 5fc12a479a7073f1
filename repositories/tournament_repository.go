package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Dosada05/community-tournaments/models"
)

type ListTournamentsFilter struct {
	GameID   string
	Finished *bool
	IDs      []string
	PlayerID string
	From     *time.Time
	To       *time.Time
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}
	query := `
		INSERT INTO tournaments (id, game_id, date, finished, data, version, created_at)
		VALUES ($1, $2, $3, $4, $5, 1, $6)`

	if _, err := r.db.ExecContext(ctx, query, t.ID, t.GameID, t.Date, t.Finished, data, t.CreatedAt); err != nil {
		return err
	}
	t.Version = 1
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var data []byte
	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, `SELECT data, version FROM tournaments WHERE id = $1`, id).Scan(&data, &t.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTournamentNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT data, version FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.GameID != "" {
		query += fmt.Sprintf(" AND game_id = $%d", argID)
		args = append(args, filter.GameID)
		argID++
	}
	if filter.Finished != nil {
		query += fmt.Sprintf(" AND finished = $%d", argID)
		args = append(args, *filter.Finished)
		argID++
	}
	if filter.IDs != nil {
		query += fmt.Sprintf(" AND id = ANY($%d)", argID)
		args = append(args, pq.Array(filter.IDs))
		argID++
	}
	if filter.PlayerID != "" {
		query += fmt.Sprintf(" AND data -> 'players' ? $%d", argID)
		args = append(args, filter.PlayerID)
		argID++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argID)
		args = append(args, *filter.From)
		argID++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argID)
		args = append(args, *filter.To)
	}

	query += " ORDER BY date, created_at, id"

	tournaments := make([]models.Tournament, 0)
	err := queryDocuments(ctx, r.db, query, args, func(data []byte, version int) error {
		var t models.Tournament
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to decode tournament: %w", err)
		}
		t.Version = version
		tournaments = append(tournaments, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

// Update сохраняет документ целиком, если его версия не изменилась с момента чтения.
func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}
	query := `
		UPDATE tournaments SET
			game_id = $1,
			date = $2,
			finished = $3,
			data = $4,
			version = version + 1
		WHERE id = $5 AND version = $6`

	result, err := r.db.ExecContext(ctx, query, t.GameID, t.Date, t.Finished, data, t.ID, t.Version)
	if err != nil {
		return err
	}
	if err := checkVersionedUpdate(ctx, r.db, "tournaments", t.ID, result, models.ErrTournamentNotFound); err != nil {
		return err
	}
	t.Version++
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrTournamentNotFound)
}
