package models

import (
	"errors"
	"fmt"
)

// Базовые категории ошибок. Конкретные ошибки оборачивают одну из них,
// поэтому вызывающая сторона может проверять как конкретную ошибку, так и категорию.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// ErrVersionConflict is returned by the store when a document changed
	// between read and write.
	ErrVersionConflict = errors.New("document was modified concurrently")
)

var (
	ErrPlayerNotFound     = fmt.Errorf("player %w", ErrNotFound)
	ErrTournamentNotFound = fmt.Errorf("tournament %w", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("team %w", ErrNotFound)
	ErrSeasonNotFound     = fmt.Errorf("season %w", ErrNotFound)
	ErrProposalNotFound   = fmt.Errorf("game proposal %w", ErrNotFound)
	ErrGameNotFound       = fmt.Errorf("game %w", ErrNotFound)
	ErrBadgeNotFound      = fmt.Errorf("badge %w", ErrNotFound)

	ErrNotRegistered         = fmt.Errorf("player is not registered for this tournament: %w", ErrInvalidState)
	ErrNoRankedTeam          = fmt.Errorf("no team has a ranking yet: %w", ErrInvalidState)
	ErrTournamentFinished    = fmt.Errorf("tournament is already finished: %w", ErrInvalidState)
	ErrTournamentInSeason    = fmt.Errorf("tournament already belongs to a season: %w", ErrInvalidState)
	ErrTournamentNotInSeason = fmt.Errorf("tournament does not belong to this season: %w", ErrInvalidState)
	ErrProposalNotPending    = fmt.Errorf("proposal is no longer pending: %w", ErrInvalidState)

	ErrInvalidTeamCount  = fmt.Errorf("number of teams must be at least 1: %w", ErrInvalidInput)
	ErrInvalidVote       = fmt.Errorf("vote value must be -1, 0 or 1: %w", ErrInvalidInput)
	ErrInvalidRanking    = fmt.Errorf("ranking must not be negative: %w", ErrInvalidInput)
	ErrInvalidLevel      = fmt.Errorf("unknown player level: %w", ErrInvalidInput)
	ErrInvalidStatus     = fmt.Errorf("unknown proposal status: %w", ErrInvalidInput)
	ErrInvalidCriterion  = fmt.Errorf("unknown badge criterion: %w", ErrInvalidInput)
	ErrUsernameInvalid   = fmt.Errorf("username must be between 2 and 32 characters: %w", ErrInvalidInput)
	ErrNameRequired      = fmt.Errorf("name is required: %w", ErrInvalidInput)
	ErrInvalidSeasonNum  = fmt.Errorf("season number must not be negative: %w", ErrInvalidInput)
	ErrInvalidTournament = fmt.Errorf("tournament date and game are required: %w", ErrInvalidInput)
	ErrInvalidThreshold  = fmt.Errorf("badge threshold must be at least 1: %w", ErrInvalidInput)

	ErrUsernameTaken     = fmt.Errorf("username is already taken: %w", ErrConflict)
	ErrGameNameTaken     = fmt.Errorf("a game with this name already exists: %w", ErrConflict)
	ErrSeasonNumeroTaken = fmt.Errorf("a season with this number already exists: %w", ErrConflict)
	ErrBadgeNameTaken    = fmt.Errorf("a badge with this name already exists: %w", ErrConflict)
	ErrProposalExists    = fmt.Errorf("a game or pending proposal with this name already exists: %w", ErrConflict)
)
