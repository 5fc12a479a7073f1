package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/community-tournaments/models"
)

// errNoChange возвращается из mutate, когда документ уже в нужном состоянии;
// updateDocument тогда отдает прочитанный документ без записи.
var errNoChange = errors.New("document unchanged")

// maxUpdateAttempts ограничивает число повторов read-modify-write при
// конкурентном изменении одного документа.
const maxUpdateAttempts = 3

// updateDocument читает документ, применяет mutate и сохраняет результат.
// Если документ изменился между чтением и записью, цикл повторяется.
// Ошибка mutate прерывает операцию до записи.
func updateDocument[T any](
	ctx context.Context,
	get func(ctx context.Context) (*T, error),
	mutate func(doc *T) error,
	save func(ctx context.Context, doc *T) error,
) (*T, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := get(ctx)
		if err != nil {
			return nil, err
		}
		if err := mutate(doc); err != nil {
			if errors.Is(err, errNoChange) {
				return doc, nil
			}
			return nil, err
		}
		err = save(ctx, doc)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", maxUpdateAttempts, lastErr)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// uniqueIDs drops empty and repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// logCollaboratorError записывает сбой внешнего сервиса. Такие сбои никогда не
// отменяют уже сохраненное изменение.
func logCollaboratorError(ctx context.Context, logger *slog.Logger, collaborator, action string, err error, attrs ...slog.Attr) {
	if err == nil {
		return
	}
	args := []any{slog.String("collaborator", collaborator), slog.String("action", action), slog.Any("error", err)}
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.WarnContext(ctx, "collaborator call failed", args...)
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
