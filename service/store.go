package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"postboard/app/config"
	"postboard/app/models"
	"postboard/app/repositories"
)

// storeHandle is a PostStore together with its maintenance hooks.
type storeHandle struct {
	repositories.PostStore
	remove func() error
	close  func() error
}

func (h *storeHandle) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// openStore opens the store selected by cfg.
func openStore(cfg config.StorageConfig) (*storeHandle, error) {
	switch cfg.Driver {
	case config.StoreJSON:
		s := repositories.NewJSONFileStore(cfg.Path)
		return &storeHandle{PostStore: s, remove: s.Remove}, nil
	case config.StoreBadger:
		s, err := repositories.OpenBadgerStore(cfg.BadgerDir)
		if err != nil {
			return nil, err
		}
		return &storeHandle{PostStore: s, remove: s.Remove, close: s.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// initStore writes an empty collection unless posts are already stored.
func initStore(out io.Writer, cfg *config.Config) error {
	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	posts, err := store.Load()
	if err != nil {
		return err
	}
	if len(posts) > 0 {
		fmt.Fprintf(out, "Storage already contains %d posts. Use 'clean' first if you want to reinitialize.\n", len(posts))
		return nil
	}
	if err := store.Save([]models.Post{}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Storage initialized successfully")
	return nil
}

// cleanStore removes the stored collection after confirmation.
func cleanStore(in io.Reader, out io.Writer, cfg *config.Config, yes bool) error {
	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	posts, err := store.Load()
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(out, "Storage is already clean (no posts stored)")
		return nil
	}
	if !yes && !confirm(in, out, fmt.Sprintf("Are you sure you want to delete %d posts? This cannot be undone.", len(posts))) {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}
	if err := store.remove(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Storage cleaned successfully")
	return nil
}

// backupStore copies the current collection to a timestamped file in the
// backup directory and returns its path.
func backupStore(out io.Writer, cfg *config.Config) (string, error) {
	store, err := openStore(cfg.Storage)
	if err != nil {
		return "", err
	}
	defer store.Close()

	posts, err := store.Load()
	if err != nil {
		return "", err
	}

	backupFile := filepath.Join(cfg.Storage.BackupDir, fmt.Sprintf("backup_%d.json", time.Now().UnixNano()))
	if err := repositories.NewJSONFileStore(backupFile).Save(posts); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Backed up %d posts to %s\n", len(posts), backupFile)
	return backupFile, nil
}

// restoreStore replaces the collection with the posts in backupFile.
func restoreStore(in io.Reader, out io.Writer, cfg *config.Config, backupFile string, yes bool) error {
	if _, err := os.Stat(backupFile); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	posts, err := repositories.NewJSONFileStore(backupFile).Load()
	if err != nil {
		return err
	}
	if err := validateCollection(posts); err != nil {
		return fmt.Errorf("invalid backup %s: %w", backupFile, err)
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	current, err := store.Load()
	if err != nil {
		return err
	}
	if len(current) > 0 && !yes &&
		!confirm(in, out, fmt.Sprintf("Storage contains %d posts. Do you want to replace them?", len(current))) {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}
	if err := store.Save(posts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Restored %d posts from %s\n", len(posts), backupFile)
	return nil
}

// validateCollection checks every post and that ids are unique.
func validateCollection(posts []models.Post) error {
	seen := make(map[int]bool, len(posts))
	for i := range posts {
		p := posts[i]
		p.Normalize()
		if err := p.Validate(); err != nil {
			return fmt.Errorf("post %d: %w", posts[i].ID, err)
		}
		if p != posts[i] {
			return fmt.Errorf("post %d: title and content must be trimmed", p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
