package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/community-tournaments/models"
)

// Ошибки сервисного слоя. Ошибки предметной области живут в models/errors.go.
var (
	ErrAuthInvalidCredentials = errors.New("invalid admin password")
	ErrAdminLoginDisabled     = errors.New("admin login is not configured")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	ErrUploadsDisabled = fmt.Errorf("image uploads are not configured: %w", models.ErrInvalidState)
	ErrImageTooLarge   = fmt.Errorf("image exceeds the maximum size: %w", models.ErrInvalidInput)
)
