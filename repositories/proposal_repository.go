package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/community-tournaments/models"
)

type ListProposalsFilter struct {
	Status *models.ProposalStatus
	Slug   string
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.GameProposal) error
	GetByID(ctx context.Context, id string) (*models.GameProposal, error)
	// List orders proposals by total votes, most popular first.
	List(ctx context.Context, filter ListProposalsFilter) ([]models.GameProposal, error)
	Update(ctx context.Context, proposal *models.GameProposal) error
	Delete(ctx context.Context, id string) error
}

type postgresProposalRepository struct {
	db *sql.DB
}

func NewPostgresProposalRepository(db *sql.DB) ProposalRepository {
	return &postgresProposalRepository{db: db}
}

func (r *postgresProposalRepository) Create(ctx context.Context, p *models.GameProposal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}
	query := `
		INSERT INTO game_proposals (id, slug, status, data, version, created_at)
		VALUES ($1, $2, $3, $4, 1, $5)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Slug, p.Status, data, p.CreatedAt); err != nil {
		return err
	}
	p.Version = 1
	return nil
}

func (r *postgresProposalRepository) GetByID(ctx context.Context, id string) (*models.GameProposal, error) {
	var data []byte
	p := &models.GameProposal{}
	err := r.db.QueryRowContext(ctx, `SELECT data, version FROM game_proposals WHERE id = $1`, id).Scan(&data, &p.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProposalNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode proposal: %w", err)
	}
	return p, nil
}

func (r *postgresProposalRepository) List(ctx context.Context, filter ListProposalsFilter) ([]models.GameProposal, error) {
	query := `SELECT data, version FROM game_proposals WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Slug != "" {
		query += fmt.Sprintf(" AND slug = $%d", argID)
		args = append(args, filter.Slug)
	}
	query += ` ORDER BY (data ->> 'total_votes')::int DESC, created_at, id`

	proposals := make([]models.GameProposal, 0)
	err := queryDocuments(ctx, r.db, query, args, func(data []byte, version int) error {
		var p models.GameProposal
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode proposal: %w", err)
		}
		p.Version = version
		proposals = append(proposals, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *postgresProposalRepository) Update(ctx context.Context, p *models.GameProposal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}
	query := `
		UPDATE game_proposals SET
			slug = $1,
			status = $2,
			data = $3,
			version = version + 1
		WHERE id = $4 AND version = $5`
	result, err := r.db.ExecContext(ctx, query, p.Slug, p.Status, data, p.ID, p.Version)
	if err != nil {
		return err
	}
	if err := checkVersionedUpdate(ctx, r.db, "game_proposals", p.ID, result, models.ErrProposalNotFound); err != nil {
		return err
	}
	p.Version++
	return nil
}

func (r *postgresProposalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM game_proposals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, models.ErrProposalNotFound)
}
