// Package jsonstore persists each entity type as one JSON array file with
// load-all/save-all semantics.
package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/storylab/backend/internal/domain"
)

// Store bundles the per-entity-type collections rooted at one data dir.
type Store struct {
	dataDir string
	users   *Collection[domain.User]
	focos   *Collection[domain.Focus]
	metas   *Collection[domain.Meta]
}

// New creates the data dir if needed and opens the collections.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create data dir %s: %w", dataDir, err)
	}
	return &Store{
		dataDir: dataDir,
		users:   newCollection[domain.User](filepath.Join(dataDir, "users.json")),
		focos:   newCollection[domain.Focus](filepath.Join(dataDir, "focos.json")),
		metas:   newCollection[domain.Meta](filepath.Join(dataDir, "metas.json")),
	}, nil
}

// Users returns the users collection.
func (s *Store) Users() *Collection[domain.User] { return s.users }

// Focos returns the focos collection.
func (s *Store) Focos() *Collection[domain.Focus] { return s.focos }

// Metas returns the metas collection.
func (s *Store) Metas() *Collection[domain.Meta] { return s.metas }

// Ping verifies the data dir is still accessible. Used by health checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dataDir)
	if err != nil {
		return fmt.Errorf("jsonstore: stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("jsonstore: %s is not a directory", s.dataDir)
	}
	return nil
}
