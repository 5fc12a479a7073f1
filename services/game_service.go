package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/storage"
)

type CreateGameInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type UpdateGameInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type GameService interface {
	Create(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, id string, input UpdateGameInput) (*models.Game, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file io.Reader, size int64, contentType string) (*models.Game, error)
}

type gameService struct {
	games    repositories.GameRepository
	uploader storage.FileUploader
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewGameService принимает nil uploader, если хранилище не настроено.
func NewGameService(store *repositories.Store, uploader storage.FileUploader, clock clockwork.Clock, logger *slog.Logger) GameService {
	return &gameService{
		games:    store.Games,
		uploader: uploader,
		clock:    clock,
		logger:   logger,
	}
}

// gameName returns the trimmed name and its slug, the key games are unique on.
func gameName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	key := slug.Make(name)
	if key == "" {
		return "", "", models.ErrNameRequired
	}
	return name, key, nil
}

func (s *gameService) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	name, key, err := gameName(input.Name)
	if err != nil {
		return nil, err
	}
	game := &models.Game{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        key,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    optionalString(input.ImageURL),
		CreatedAt:   s.clock.Now(),
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	s.logger.InfoContext(ctx, "game created", slog.String("game_id", game.ID), slog.String("slug", game.Slug))
	return game, nil
}

func (s *gameService) GetByID(ctx context.Context, id string) (*models.Game, error) {
	return s.games.GetByID(ctx, id)
}

func (s *gameService) List(ctx context.Context) ([]models.Game, error) {
	return s.games.List(ctx)
}

func (s *gameService) Update(ctx context.Context, id string, input UpdateGameInput) (*models.Game, error) {
	var name, key string
	if input.Name != nil {
		var err error
		if name, key, err = gameName(*input.Name); err != nil {
			return nil, err
		}
	}
	return updateDocument(ctx,
		func(ctx context.Context) (*models.Game, error) { return s.games.GetByID(ctx, id) },
		func(g *models.Game) error {
			if input.Name != nil {
				g.Name, g.Slug = name, key
			}
			if input.Description != nil {
				g.Description = strings.TrimSpace(*input.Description)
			}
			if input.ImageURL != nil {
				g.ImageURL = optionalString(input.ImageURL)
			}
			return nil
		},
		s.games.Update,
	)
}

func (s *gameService) Delete(ctx context.Context, id string) error {
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "game deleted", slog.String("game_id", id))
	return nil
}

func (s *gameService) UploadImage(ctx context.Context, id string, file io.Reader, size int64, contentType string) (*models.Game, error) {
	if _, err := s.games.GetByID(ctx, id); err != nil {
		return nil, err
	}
	url, err := uploadImage(ctx, s.uploader, "games", id, file, size, contentType)
	if err != nil {
		return nil, err
	}
	return updateDocument(ctx,
		func(ctx context.Context) (*models.Game, error) { return s.games.GetByID(ctx, id) },
		func(g *models.Game) error {
			g.ImageURL = &url
			return nil
		},
		s.games.Update,
	)
}
