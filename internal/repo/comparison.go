package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/file-comparator/internal/models"
)

// ErrComparisonNotFound is returned when a comparison does not exist or
// belongs to a different user. Callers cannot tell the two apart.
var ErrComparisonNotFound = errors.New("comparison not found")

// ComparisonRepo persists saved file comparisons.
type ComparisonRepo struct {
	DB *sql.DB
}

// NewComparisonRepo returns a new ComparisonRepo.
func NewComparisonRepo(db *sql.DB) *ComparisonRepo {
	return &ComparisonRepo{DB: db}
}

// Create inserts a comparison owned by userID and returns it.
func (r *ComparisonRepo) Create(ctx context.Context, userID int, filename1, filename2, diff string) (*models.Comparison, error) {
	query := `
		INSERT INTO file_comparisons (user_id, filename1, filename2, diff)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, filename1, filename2, diff, created_at
	`

	c := &models.Comparison{}

	err := r.DB.QueryRowContext(ctx, query, userID, filename1, filename2, diff).
		Scan(&c.ID, &c.UserID, &c.Filename1, &c.Filename2, &c.Diff, &c.CreatedAt)

	if err != nil {
		return nil, err
	}

	return c, nil
}

// ListByUser returns all comparisons owned by userID, newest first.
func (r *ComparisonRepo) ListByUser(ctx context.Context, userID int) ([]models.Comparison, error) {
	query := `
		SELECT id, user_id, filename1, filename2, diff, created_at
		FROM file_comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Comparison
	for rows.Next() {
		var c models.Comparison
		if err := rows.Scan(&c.ID, &c.UserID, &c.Filename1, &c.Filename2, &c.Diff, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete removes the comparison only when it is owned by userID.
// The ownership check lives in the query itself, so there is no window
// between checking and deleting.
func (r *ComparisonRepo) Delete(ctx context.Context, id, userID int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM file_comparisons WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrComparisonNotFound
	}
	return nil
}
