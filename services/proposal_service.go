package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/integrations/discord"
	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/storage"
	"github.com/Dosada05/community-tournaments/voting"
)

type CreateProposalInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type ProposalView struct {
	models.GameProposal
	Proposer models.PlayerRef `json:"proposer"`
}

type ProposalService interface {
	Create(ctx context.Context, proposerID string, input CreateProposalInput) (*ProposalView, error)
	GetByID(ctx context.Context, id string) (*ProposalView, error)
	List(ctx context.Context, status *models.ProposalStatus) ([]ProposalView, error)
	Vote(ctx context.Context, id, playerID string, value int) (*ProposalView, error)
	SetStatus(ctx context.Context, id string, status models.ProposalStatus) (*ProposalView, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file io.Reader, size int64, contentType string) (*ProposalView, error)
}

type proposalService struct {
	proposals repositories.ProposalRepository
	games     repositories.GameRepository
	players   repositories.PlayerRepository
	discord   discord.Client
	notifier  notifications.Notifier
	uploader  storage.FileUploader
	clock     clockwork.Clock
	logger    *slog.Logger
}

func NewProposalService(
	store *repositories.Store,
	discordClient discord.Client,
	notifier notifications.Notifier,
	uploader storage.FileUploader,
	clock clockwork.Clock,
	logger *slog.Logger,
) ProposalService {
	return &proposalService{
		proposals: store.Proposals,
		games:     store.Games,
		players:   store.Players,
		discord:   discordClient,
		notifier:  notifier,
		uploader:  uploader,
		clock:     clock,
		logger:    logger,
	}
}

func (s *proposalService) Create(ctx context.Context, proposerID string, input CreateProposalInput) (*ProposalView, error) {
	name, key, err := gameName(input.Name)
	if err != nil {
		return nil, err
	}
	if _, err := s.players.GetByID(ctx, proposerID); err != nil {
		return nil, err
	}

	_, err = s.games.GetBySlug(ctx, key)
	switch {
	case err == nil:
		return nil, models.ErrProposalExists
	case !isNotFound(err):
		return nil, fmt.Errorf("failed to check existing games: %w", err)
	}
	pending := models.ProposalPending
	existing, err := s.proposals.List(ctx, repositories.ListProposalsFilter{Status: &pending, Slug: key})
	if err != nil {
		return nil, fmt.Errorf("failed to check pending proposals: %w", err)
	}
	if len(existing) > 0 {
		return nil, models.ErrProposalExists
	}

	now := s.clock.Now()
	proposal := &models.GameProposal{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        key,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    optionalString(input.ImageURL),
		ProposedBy:  proposerID,
		Status:      models.ProposalPending,
		Votes:       []models.Vote{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	s.logger.InfoContext(ctx, "game proposal created", slog.String("proposal_id", proposal.ID), slog.String("slug", key))

	messageID, err := s.discord.PostProposal(ctx, proposal)
	logCollaboratorError(ctx, s.logger, "discord", "post proposal", err, slog.String("proposal_id", proposal.ID))
	if messageID != "" {
		updated, err := updateDocument(ctx,
			func(ctx context.Context) (*models.GameProposal, error) { return s.proposals.GetByID(ctx, proposal.ID) },
			func(p *models.GameProposal) error {
				p.DiscordMessageID = &messageID
				return nil
			},
			s.proposals.Update,
		)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to store proposal message id", slog.String("proposal_id", proposal.ID), slog.Any("error", err))
		} else {
			proposal = updated
		}
	}
	return s.view(ctx, proposal), nil
}

func (s *proposalService) GetByID(ctx context.Context, id string) (*ProposalView, error) {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p), nil
}

func (s *proposalService) List(ctx context.Context, status *models.ProposalStatus) ([]ProposalView, error) {
	if status != nil && !status.Valid() {
		return nil, models.ErrInvalidStatus
	}
	proposals, err := s.proposals.List(ctx, repositories.ListProposalsFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	ids := make([]string, 0, len(proposals))
	for i := range proposals {
		ids = append(ids, proposals[i].ProposedBy)
	}
	refs, err := loadPlayerRefs(ctx, s.players, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load proposers: %w", err)
	}

	views := make([]ProposalView, 0, len(proposals))
	for i := range proposals {
		views = append(views, newProposalView(&proposals[i], refs))
	}
	return views, nil
}

// Vote применяет голос игрока: 1 или -1 ставит или меняет голос, 0 отзывает его.
func (s *proposalService) Vote(ctx context.Context, id, playerID string, value int) (*ProposalView, error) {
	if value < -1 || value > 1 {
		return nil, models.ErrInvalidVote
	}
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	p, err := updateDocument(ctx,
		func(ctx context.Context) (*models.GameProposal, error) { return s.proposals.GetByID(ctx, id) },
		func(p *models.GameProposal) error {
			if p.Status != models.ProposalPending {
				return models.ErrProposalNotPending
			}
			if err := voting.Cast(p, playerID, value); err != nil {
				return err
			}
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.proposals.Update,
	)
	if err != nil {
		return nil, err
	}

	s.refreshEmbed(ctx, p)
	return s.view(ctx, p), nil
}

func (s *proposalService) SetStatus(ctx context.Context, id string, status models.ProposalStatus) (*ProposalView, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	p, err := updateDocument(ctx,
		func(ctx context.Context) (*models.GameProposal, error) { return s.proposals.GetByID(ctx, id) },
		func(p *models.GameProposal) error {
			if p.Status == status {
				return errNoChange
			}
			p.Status = status
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.proposals.Update,
	)
	if err != nil {
		return nil, err
	}

	if status == models.ProposalApproved {
		if err := s.ensureGame(ctx, p); err != nil {
			return nil, err
		}
		err := s.notifier.Notify(ctx, []string{p.ProposedBy}, notifications.Notification{
			Kind:  notifications.KindProposalApproved,
			Title: "Your proposal was approved",
			Body:  p.Name + " is now available for tournaments.",
			URL:   "/proposals/" + p.ID,
		})
		logCollaboratorError(ctx, s.logger, "notifications", "proposal approved", err, slog.String("proposal_id", p.ID))
	}

	s.refreshEmbed(ctx, p)
	return s.view(ctx, p), nil
}

// ensureGame создает игру по одобренному предложению, если ее еще нет.
func (s *proposalService) ensureGame(ctx context.Context, p *models.GameProposal) error {
	_, err := s.games.GetBySlug(ctx, p.Slug)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to look up game: %w", err)
	}

	game := &models.Game{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   s.clock.Now(),
	}
	err = s.games.Create(ctx, game)
	if errors.Is(err, models.ErrGameNameTaken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create game from proposal: %w", err)
	}
	s.logger.InfoContext(ctx, "game created from proposal", slog.String("proposal_id", p.ID), slog.String("game_id", game.ID))
	return nil
}

func (s *proposalService) Delete(ctx context.Context, id string) error {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.proposals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	if messageID := derefString(p.DiscordMessageID); messageID != "" {
		err := s.discord.DeleteProposal(ctx, messageID)
		logCollaboratorError(ctx, s.logger, "discord", "delete proposal", err, slog.String("proposal_id", id))
	}
	return nil
}

func (s *proposalService) UploadImage(ctx context.Context, id string, file io.Reader, size int64, contentType string) (*ProposalView, error) {
	if _, err := s.proposals.GetByID(ctx, id); err != nil {
		return nil, err
	}
	url, err := uploadImage(ctx, s.uploader, "proposals", id, file, size, contentType)
	if err != nil {
		return nil, err
	}
	p, err := updateDocument(ctx,
		func(ctx context.Context) (*models.GameProposal, error) { return s.proposals.GetByID(ctx, id) },
		func(p *models.GameProposal) error {
			p.ImageURL = &url
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.proposals.Update,
	)
	if err != nil {
		return nil, err
	}
	s.refreshEmbed(ctx, p)
	return s.view(ctx, p), nil
}

func (s *proposalService) refreshEmbed(ctx context.Context, p *models.GameProposal) {
	err := s.discord.UpdateProposal(ctx, p)
	logCollaboratorError(ctx, s.logger, "discord", "update proposal", err, slog.String("proposal_id", p.ID))
}

func (s *proposalService) view(ctx context.Context, p *models.GameProposal) *ProposalView {
	refs, err := loadPlayerRefs(ctx, s.players, []string{p.ProposedBy})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to populate proposer", slog.String("proposal_id", p.ID), slog.Any("error", err))
	}
	v := newProposalView(p, refs)
	return &v
}

func newProposalView(p *models.GameProposal, refs map[string]models.PlayerRef) ProposalView {
	proposer, ok := refs[p.ProposedBy]
	if !ok {
		proposer = models.PlayerRef{ID: p.ProposedBy}
	}
	return ProposalView{GameProposal: *p, Proposer: proposer}
}
