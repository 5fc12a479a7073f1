package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
)

const (
	TokenTTL = 24 * time.Hour

	// AdminSubject is the subject of tokens issued by the admin login.
	AdminSubject = "admin"
)

type AuthService interface {
	// AdminLogin проверяет пароль администратора и выдает токен с ролью admin.
	AdminLogin(ctx context.Context, password string) (string, error)
	// PlayerToken выдает токен, действующий от имени игрока.
	PlayerToken(ctx context.Context, playerID string) (string, error)
}

type authService struct {
	players           repositories.PlayerRepository
	adminPasswordHash []byte
	jwtSecret         []byte
	clock             clockwork.Clock
}

// NewAuthService принимает пустой adminPasswordHash, тогда вход администратора отключен.
func NewAuthService(players repositories.PlayerRepository, adminPasswordHash string, jwtSecret []byte, clock clockwork.Clock) AuthService {
	return &authService{
		players:           players,
		adminPasswordHash: []byte(adminPasswordHash),
		jwtSecret:         jwtSecret,
		clock:             clock,
	}
}

func (s *authService) AdminLogin(ctx context.Context, password string) (string, error) {
	if len(s.adminPasswordHash) == 0 {
		return "", ErrAdminLoginDisabled
	}
	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrAuthInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare password hash: %w", err)
	}
	return s.sign(AdminSubject, models.RoleAdmin)
}

func (s *authService) PlayerToken(ctx context.Context, playerID string) (string, error) {
	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return "", err
	}
	return s.sign(player.ID, models.RolePlayer)
}

func (s *authService) sign(subject string, role models.Role) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
