package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/community-tournaments/models"
)

const uniqueViolation = "23505"

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// checkVersionedUpdate разделяет два случая, когда UPDATE ... WHERE version = $n
// не затронул ни одной строки: документа нет или его успели изменить.
func checkVersionedUpdate(ctx context.Context, db *sql.DB, table, id string, result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	if !exists {
		return notFoundError
	}
	return models.ErrVersionConflict
}

// uniqueConstraint returns the violated constraint name for a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// queryDocuments runs a query selecting (data, version) and hands every row to scan.
func queryDocuments(ctx context.Context, db *sql.DB, query string, args []interface{}, scan func(data []byte, version int) error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			data    []byte
			version int
		)
		if err := rows.Scan(&data, &version); err != nil {
			return err
		}
		if err := scan(data, version); err != nil {
			return err
		}
	}
	return rows.Err()
}
