package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/community-tournaments/models"
)

// Награды не редактируются, поэтому версии у них нет.
type BadgeRepository interface {
	Create(ctx context.Context, badge *models.Badge) error
	GetByID(ctx context.Context, id string) (*models.Badge, error)
	List(ctx context.Context) ([]models.Badge, error)
	Delete(ctx context.Context, id string) error
}

type postgresBadgeRepository struct {
	db *sql.DB
}

func NewPostgresBadgeRepository(db *sql.DB) BadgeRepository {
	return &postgresBadgeRepository{db: db}
}

func (r *postgresBadgeRepository) Create(ctx context.Context, b *models.Badge) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode badge: %w", err)
	}
	query := `INSERT INTO badges (id, slug, data, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.Slug, data, b.CreatedAt); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "badges_slug_key" {
			return models.ErrBadgeNameTaken
		}
		return err
	}
	return nil
}

func (r *postgresBadgeRepository) GetByID(ctx context.Context, id string) (*models.Badge, error) {
	var data []byte
	if err := r.db.QueryRowContext(ctx, `SELECT data FROM badges WHERE id = $1`, id).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBadgeNotFound
		}
		return nil, err
	}
	b := &models.Badge{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode badge: %w", err)
	}
	return b, nil
}

func (r *postgresBadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM badges ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := make([]models.Badge, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var b models.Badge
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to decode badge: %w", err)
		}
		badges = append(badges, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *postgresBadgeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM badges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrBadgeNotFound)
}
