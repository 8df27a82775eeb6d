// seed registers a demo user and a few resumes in the configured database.
// Re-running it is safe: an existing demo user is logged in instead.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ErlanBelekov/resume-api/config"
	"github.com/ErlanBelekov/resume-api/internal/auth"
	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/infrastructure/store"
	"github.com/ErlanBelekov/resume-api/internal/usecase"
)

const (
	seedEmail    = "demo@resume.local"
	seedPassword = "demo-password"
)

var resumes = []usecase.CreateResumeInput{
	{Title: "Backend Engineer", Content: "Go, PostgreSQL, Kubernetes. Five years building payment APIs."},
	{Title: "Site Reliability Engineer", Content: "On-call lead, Prometheus and Grafana, incident reviews."},
	{Title: "Engineering Manager", Content: "Grew a team from 3 to 9, owned the hiring loop."},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	authUsecase := usecase.NewAuthUsecase(
		db.Users,
		auth.NewPasswordHasher(cfg.BcryptCost),
		auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL),
	)
	resumeUsecase := usecase.NewResumeUsecase(db.Resumes)

	tok, err := authUsecase.Register(ctx, seedEmail, seedPassword)
	created := true
	if errors.Is(err, domain.ErrDuplicateEmail) {
		created = false
		tok, err = authUsecase.Login(ctx, seedEmail, seedPassword)
	}
	if err != nil {
		log.Fatalf("demo user: %v", err)
	}

	user, err := authUsecase.Authenticate(ctx, "Bearer "+tok.AccessToken)
	if err != nil {
		log.Fatalf("resolve demo user: %v", err)
	}

	var ids []int64
	if created {
		for _, in := range resumes {
			r, err := resumeUsecase.Create(ctx, user.ID, in)
			if err != nil {
				log.Fatalf("create resume %q: %v", in.Title, err)
			}
			ids = append(ids, r.ID)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Storage:   %s\n", db.Driver)
	fmt.Printf("  User:      %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:   %d\n", user.ID)
	if created {
		fmt.Printf("  Resumes:   %v\n", ids)
	} else {
		fmt.Println("  Resumes:   user already existed, nothing inserted")
	}
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("  export TOKEN=%s\n", tok.AccessToken)
	fmt.Println("  curl -s http://localhost:8080/resume -H \"Authorization: Bearer $TOKEN\"")
	fmt.Printf("  # token expires at %s\n", tok.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
}
