package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/resume-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type resumeUsecaser interface {
	List(ctx context.Context, ownerID int64) ([]*domain.Resume, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Resume, error)
	Create(ctx context.Context, ownerID int64, input usecase.CreateResumeInput) (*domain.Resume, error)
	Update(ctx context.Context, id, ownerID int64, patch domain.ResumePatch) (*domain.Resume, error)
	Delete(ctx context.Context, id, ownerID int64) (*domain.Resume, error)
	Improve(ctx context.Context, id, ownerID int64) (*domain.Resume, error)
}

type ResumeHandler struct {
	resumeUsecase resumeUsecaser
	logger        *slog.Logger
}

func NewResumeHandler(resumeUsecase resumeUsecaser, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeUsecase: resumeUsecase,
		logger:        logger.With("component", "resume_handler"),
	}
}

type createResumeRequest struct {
	Title   string `json:"title"   binding:"required"`
	Content string `json:"content" binding:"required"`
}

// updateResumeRequest treats an explicit null the same as an absent field.
type updateResumeRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type resumeResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func toResumeResponse(r *domain.Resume) resumeResponse {
	return resumeResponse{ID: r.ID, Title: r.Title, Content: r.Content}
}

// GET /resume
func (h *ResumeHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	resumes, err := h.resumeUsecase.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list resumes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]resumeResponse, 0, len(resumes))
	for _, r := range resumes {
		resp = append(resp, toResumeResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /resume
func (h *ResumeHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resume, err := h.resumeUsecase.Create(c.Request.Context(), user.ID, usecase.CreateResumeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create resume", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toResumeResponse(resume))
}

// GET /resume/:id
func (h *ResumeHandler) Get(c *gin.Context) {
	h.byID(c, "get resume", h.resumeUsecase.Get)
}

// DELETE /resume/:id
// Responds with the resume as it was before deletion.
func (h *ResumeHandler) Delete(c *gin.Context) {
	h.byID(c, "delete resume", h.resumeUsecase.Delete)
}

// GET /resume/:id/improve
func (h *ResumeHandler) Improve(c *gin.Context) {
	h.byID(c, "improve resume", h.resumeUsecase.Improve)
}

// PUT /resume/:id
func (h *ResumeHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resume, err := h.resumeUsecase.Update(c.Request.Context(), id, user.ID, domain.ResumePatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeError(c, "update resume", err)
		return
	}

	c.JSON(http.StatusOK, toResumeResponse(resume))
}

func (h *ResumeHandler) byID(c *gin.Context, op string, fn func(ctx context.Context, id, ownerID int64) (*domain.Resume, error)) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	resume, err := fn(c.Request.Context(), id, user.ID)
	if err != nil {
		h.writeError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, toResumeResponse(resume))
}

func (h *ResumeHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrResumeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errResumeNotFound})
	case errors.Is(err, domain.ErrInvalidUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": errNothingToUpdate})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}
