// Command seed populates an empty data dir with two demo accounts and a
// sample focus and meta for local development. It refuses to touch a data
// dir that already holds users unless --force is given.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/storylab/backend/internal/app"
	"github.com/storylab/backend/internal/config"
	"github.com/storylab/backend/internal/domain"
	"github.com/storylab/backend/internal/storage/jsonstore"
)

func main() {
	forceFlag := flag.Bool("force", false, "seed even if users already exist")
	passwordFlag := flag.String("password", "storylab", "password for the demo accounts")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if err := run(context.Background(), logger, cfg, *forceFlag, *passwordFlag); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, force bool, password string) error {
	store, err := jsonstore.New(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	daniel := domain.User{
		ID:           uuid.New(),
		Email:        "daniel@storylab.dev",
		Name:         "Daniel",
		PasswordHash: string(hash),
		Theme:        domain.DefaultTheme(),
		Friends:      []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	lauxen := domain.User{
		ID:           uuid.New(),
		Email:        "lauxen@storylab.dev",
		Name:         "Lauxen",
		PasswordHash: string(hash),
		Theme:        domain.DefaultTheme(),
		Friends:      []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	daniel.AddFriend(lauxen.ID)
	lauxen.AddFriend(daniel.ID)

	_, err = store.Users().Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		if len(users) > 0 && !force {
			return nil, fmt.Errorf("data dir already has %d users (use --force to seed anyway)", len(users))
		}
		return append(users, daniel, lauxen), nil
	})
	if err != nil {
		return err
	}

	sampleFocus := domain.Focus{
		ID:            uuid.New(),
		CreatedBy:     daniel.ID,
		Title:         "Primeiro capítulo",
		Board:         domain.BoardDaniel,
		Category:      "escrita",
		Subcategories: []string{"rascunho"},
		Status:        domain.StatusCompleted,
		AllowComments: true,
		AllowReviews:  true,
		RequestRating: true,
		Body:          "Era uma vez um começo que ninguém leu até o fim.",
		Attachments:   []domain.Attachment{},
		Ratings:       []domain.Rating{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	sampleFocus.RecomputeReadingTime()

	_, err = store.Focos().Mutate(ctx, func(focos []domain.Focus) ([]domain.Focus, error) {
		return append(focos, sampleFocus), nil
	})
	if err != nil {
		return err
	}

	sampleMeta := domain.Meta{
		ID:            uuid.New(),
		Title:         "Terminar o primeiro rascunho",
		Description:   "Três capítulos até o fim do mês.",
		Category:      "escrita",
		Subcategories: []string{},
		IsJoint:       true,
		Checklist: domain.NormalizeChecklist([]domain.ChecklistItem{
			{Text: "Capítulo 1", Completed: true},
			{Text: "Capítulo 2"},
			{Text: "Capítulo 3"},
		}),
		Participants: []uuid.UUID{daniel.ID, lauxen.ID},
		CreatedBy:    daniel.ID,
		Status:       domain.StatusInProgress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = store.Metas().Mutate(ctx, func(metas []domain.Meta) ([]domain.Meta, error) {
		return append(metas, sampleMeta), nil
	})
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		slog.String("data_dir", cfg.Storage.DataDir),
		slog.String("daniel_email", daniel.Email),
		slog.String("lauxen_email", lauxen.Email),
	)
	return nil
}
