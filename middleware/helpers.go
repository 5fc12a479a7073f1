package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/community-tournaments/models"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

// Имена JWT claims
const (
	jwtClaimSubject = "sub"
	jwtClaimRole    = "role"
)

// GetSubjectFromContext возвращает subject токена: id игрока или "admin".
func GetSubjectFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}
	sub, ok := claims[jwtClaimSubject].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSubject)
	}
	return sub, nil
}

func GetRoleFromContext(ctx context.Context) (models.Role, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	roleStr, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, claims[jwtClaimRole])
	}

	role := models.Role(roleStr)
	switch role {
	case models.RoleAdmin, models.RolePlayer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

func IsAdmin(ctx context.Context) bool {
	role, err := GetRoleFromContext(ctx)
	return err == nil && role == models.RoleAdmin
}

// CanActAs сообщает, может ли текущий пользователь действовать от имени игрока.
func CanActAs(ctx context.Context, playerID string) bool {
	if IsAdmin(ctx) {
		return true
	}
	sub, err := GetSubjectFromContext(ctx)
	return err == nil && sub == playerID
}
