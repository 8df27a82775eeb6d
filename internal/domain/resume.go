package domain

import (
	"errors"
	"time"
)

var (
	// ErrResumeNotFound is returned both when the resume does not exist and
	// when it belongs to someone else.
	ErrResumeNotFound = errors.New("resume not found")
	ErrInvalidUpdate  = errors.New("nothing to update")
)

type Resume struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResumePatch carries a partial update. Nil fields are left untouched.
type ResumePatch struct {
	Title   *string
	Content *string
}

func (p ResumePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}
