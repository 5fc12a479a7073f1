package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/community-tournaments/models"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByUsername(ctx context.Context, username string) (*models.Player, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode player: %w", err)
	}
	query := `
		INSERT INTO players (id, username_key, discord_id, data, version, created_at)
		VALUES ($1, $2, $3, $4, 1, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		p.ID, models.UsernameKey(p.Username), p.DiscordID, data, p.CreatedAt,
	); err != nil {
		return r.handlePlayerError(err)
	}
	p.Version = 1
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	return r.getOne(ctx, `SELECT data, version FROM players WHERE id = $1`, id)
}

func (r *postgresPlayerRepository) GetByUsername(ctx context.Context, username string) (*models.Player, error) {
	return r.getOne(ctx, `SELECT data, version FROM players WHERE username_key = $1`, models.UsernameKey(username))
}

func (r *postgresPlayerRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error) {
	return r.getOne(ctx, `SELECT data, version FROM players WHERE discord_id = $1`, discordID)
}

func (r *postgresPlayerRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Player, error) {
	var data []byte
	p := &models.Player{}
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&data, &p.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode player: %w", err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	return r.list(ctx, `SELECT data, version FROM players ORDER BY created_at, id`)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	return r.list(ctx, `SELECT data, version FROM players WHERE id = ANY($1) ORDER BY created_at, id`, pq.Array(ids))
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	players := make([]models.Player, 0)
	err := queryDocuments(ctx, r.db, query, args, func(data []byte, version int) error {
		var p models.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode player: %w", err)
		}
		p.Version = version
		players = append(players, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode player: %w", err)
	}
	query := `
		UPDATE players SET
			username_key = $1,
			discord_id = $2,
			data = $3,
			version = version + 1
		WHERE id = $4 AND version = $5`

	result, err := r.db.ExecContext(ctx, query, models.UsernameKey(p.Username), p.DiscordID, data, p.ID, p.Version)
	if err != nil {
		return r.handlePlayerError(err)
	}
	if err := checkVersionedUpdate(ctx, r.db, "players", p.ID, result, models.ErrPlayerNotFound); err != nil {
		return err
	}
	p.Version++
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok && constraint == "players_username_key_key" {
		return models.ErrUsernameTaken
	}
	return err
}
