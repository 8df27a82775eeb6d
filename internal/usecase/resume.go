package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/repository"
)

const improvedSuffix = " [Improved]"

// ResumeUsecase applies the ownership policy: ownerID always comes from the
// authenticated user, never from the request body.
type ResumeUsecase struct {
	repo repository.ResumeRepository
}

func NewResumeUsecase(repo repository.ResumeRepository) *ResumeUsecase {
	return &ResumeUsecase{repo: repo}
}

type CreateResumeInput struct {
	Title   string
	Content string
}

func (u *ResumeUsecase) List(ctx context.Context, ownerID int64) ([]*domain.Resume, error) {
	resumes, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

func (u *ResumeUsecase) Get(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	resume, err := u.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}
	return resume, nil
}

func (u *ResumeUsecase) Create(ctx context.Context, ownerID int64, input CreateResumeInput) (*domain.Resume, error) {
	resume, err := u.repo.CreateForOwner(ctx, ownerID, input.Title, input.Content)
	if err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return resume, nil
}

// Update applies the non-nil fields of patch. An empty patch is rejected
// before storage is touched.
func (u *ResumeUsecase) Update(ctx context.Context, id, ownerID int64, patch domain.ResumePatch) (*domain.Resume, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrInvalidUpdate
	}

	resume, err := u.repo.UpdateByIDAndOwner(ctx, id, ownerID, patch)
	if err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}
	return resume, nil
}

// Delete removes the resume and returns it as it was.
func (u *ResumeUsecase) Delete(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	resume, err := u.repo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete resume: %w", err)
	}
	return resume, nil
}

// Improve returns an improved copy of the resume. Nothing is persisted.
func (u *ResumeUsecase) Improve(ctx context.Context, id, ownerID int64) (*domain.Resume, error) {
	resume, err := u.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	improved := *resume
	improved.Content = resume.Content + improvedSuffix
	return &improved, nil
}
