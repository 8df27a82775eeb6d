package repository

import (
	"context"

	"github.com/ErlanBelekov/resume-api/internal/domain"
)

// ResumeRepository is owner-scoped: every lookup, update and delete filters on
// (id, user_id) in one statement, so a resume owned by someone else is
// indistinguishable from a missing one (domain.ErrResumeNotFound).
type ResumeRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Resume, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Resume, error)
	CreateForOwner(ctx context.Context, ownerID int64, title, content string) (*domain.Resume, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID int64, patch domain.ResumePatch) (*domain.Resume, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Resume, error)
}
