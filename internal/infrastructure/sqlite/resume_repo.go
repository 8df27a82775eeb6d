package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/resume-api/internal/domain"
)

const resumeColumns = `id, user_id, title, content, created_at, updated_at`

type ResumeRepository struct {
	db *DB
}

func NewResumeRepository(db *DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = ? ORDER BY id`

	rows, err := r.db.sqlDB.QueryContext(ctx, query, ownerID)
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
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = ? AND user_id = ?`
	return scanResume(r.db.sqlDB.QueryRowContext(ctx, query, id, ownerID))
}

func (r *ResumeRepository) CreateForOwner(ctx context.Context, ownerID int64, title, content string) (*domain.Resume, error) {
	query := `
		INSERT INTO resumes (user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + resumeColumns

	now := toMillis(r.db.now())
	return scanResume(r.db.sqlDB.QueryRowContext(ctx, query, ownerID, title, content, now, now))
}

func (r *ResumeRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID int64, patch domain.ResumePatch) (*domain.Resume, error) {
	query := `
		UPDATE resumes
		SET    title      = COALESCE(?, title),
		       content    = COALESCE(?, content),
		       updated_at = ?
		WHERE  id = ? AND user_id = ?
		RETURNING ` + resumeColumns

	row := r.db.sqlDB.QueryRowContext(ctx, query,
		nullString(patch.Title),
		nullString(patch.Content),
		toMillis(r.db.now()),
		id,
		ownerID,
	)
	return scanResume(row)
}

func (r *ResumeRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	query := `DELETE FROM resumes WHERE id = ? AND user_id = ? RETURNING ` + resumeColumns
	return scanResume(r.db.sqlDB.QueryRowContext(ctx, query, id, ownerID))
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanResume(row rowScanner) (*domain.Resume, error) {
	var (
		res                  domain.Resume
		createdAt, updatedAt int64
	)
	err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.Content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	res.CreatedAt = fromMillis(createdAt)
	res.UpdatedAt = fromMillis(updatedAt)
	return &res, nil
}
