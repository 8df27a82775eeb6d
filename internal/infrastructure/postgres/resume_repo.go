package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resumeColumns = `id, user_id, title, content, created_at, updated_at`

// ResumeRepository scopes every statement to the owner. A row owned by
// someone else is reported as domain.ErrResumeNotFound.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []*domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return resumes, nil
}

func (r *ResumeRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 AND user_id = $2`
	return scanResume(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *ResumeRepository) CreateForOwner(ctx context.Context, ownerID int64, title, content string) (*domain.Resume, error) {
	query := `
		INSERT INTO resumes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + resumeColumns

	return scanResume(r.pool.QueryRow(ctx, query, ownerID, title, content))
}

// UpdateByIDAndOwner leaves columns whose patch field is nil unchanged.
func (r *ResumeRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID int64, patch domain.ResumePatch) (*domain.Resume, error) {
	query := `
		UPDATE resumes
		SET    title      = COALESCE($3, title),
		       content    = COALESCE($4, content),
		       updated_at = NOW()
		WHERE  id = $1 AND user_id = $2
		RETURNING ` + resumeColumns

	return scanResume(r.pool.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Content))
}

func (r *ResumeRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	query := `DELETE FROM resumes WHERE id = $1 AND user_id = $2 RETURNING ` + resumeColumns
	return scanResume(r.pool.QueryRow(ctx, query, id, ownerID))
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.Content, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	return &res, nil
}
