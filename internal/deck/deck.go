// Package deck reconciles configured card sources with the store.
//
// A source is a local directory or a git repository of deck files. On each
// sync, newly found cards are inserted with a fresh scheduling snapshot,
// and cards whose content no longer appears in the source are removed.
// Editing a card's wording changes its fingerprint, so the edit shows up
// as a delete plus an insert with reset scheduling - relearning changed
// material from scratch is intended.
package deck

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SUCA-Team/SUCA-api/internal/domain"
	"github.com/SUCA-Team/SUCA-api/internal/fsrs"
	"github.com/SUCA-Team/SUCA-api/internal/gitsource"
	"github.com/SUCA-Team/SUCA-api/internal/parser"
	"github.com/SUCA-Team/SUCA-api/internal/storage"
)

// SourceKind values stored in the sources table.
const (
	KindLocal = "local"
	KindGit   = "git"
)

// KindOf guesses the source kind from its path: git URLs and scp-style
// remotes are git, everything else is a local directory.
func KindOf(path string) string {
	if strings.HasSuffix(path, ".git") ||
		strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "http://") {
		return KindGit
	}
	return KindLocal
}

// SyncAll reconciles every configured source. Git sources are mirrored
// under reposDir first. A failing source is logged and skipped; it never
// aborts the other sources.
func SyncAll(db *storage.DB, reposDir string, now time.Time) error {
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}
	if len(sources) == 0 {
		slog.Info("no sources configured")
		return nil
	}
	if err := os.MkdirAll(reposDir, 0o755); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("syncing source", "id", source.ID, "kind", source.Kind, "path", source.Path)

		dir := source.Path
		if source.Kind == KindGit {
			localPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("cannot determine local path for git source", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(source.Path, localPath); err != nil {
				slog.Error("failed to sync git source", "url", source.Path, "error", err)
				continue
			}
			dir = localPath
		}
		if err := reconcileDir(db, source.ID, dir, now); err != nil {
			slog.Error("failed to reconcile source", "path", source.Path, "error", err)
		}
	}
	return nil
}

// reconcileDir walks a directory of deck files and brings the stored cards
// for the source in line with what the files contain.
func reconcileDir(db *storage.DB, sourceID int64, dir string, now time.Time) error {
	found := make(map[string]bool)
	var parseErrors []error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		cards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			parseErrors = append(parseErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, card := range cards {
			fp := domain.Fingerprint(card)
			found[fp] = true

			existing, findErr := db.FindCard(fp)
			if findErr != nil {
				parseErrors = append(parseErrors, fmt.Errorf("db check for %s: %w", fp, findErr))
				continue
			}
			if existing == nil {
				slog.Info("new card found", "fingerprint", fp)
				if insertErr := db.InsertCard(card, sourceID, fsrs.NewCard(now)); insertErr != nil {
					parseErrors = append(parseErrors, fmt.Errorf("db insert for %s: %w", fp, insertErr))
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walking %s: %w", dir, walkErr)
	}

	stored, err := db.CardsBySource(sourceID)
	if err != nil {
		return fmt.Errorf("listing cards for source %d: %w", sourceID, err)
	}
	var orphaned int
	for _, rec := range stored {
		if found[rec.Fingerprint] {
			continue
		}
		orphaned++
		slog.Info("orphaned card, deleting", "fingerprint", rec.Fingerprint)
		if err := db.DeleteCard(rec.Fingerprint); err != nil {
			slog.Warn("failed to delete orphaned card", "fingerprint", rec.Fingerprint, "error", err)
		}
	}

	if err := db.UpdateSourceLastScanned(sourceID, now); err != nil {
		slog.Warn("failed to update last scanned", "source_id", sourceID, "error", err)
	}

	slog.Info("reconciliation complete",
		"dir", dir,
		"cards_found", len(found),
		"orphaned_deleted", orphaned,
		"errors", len(parseErrors),
	)
	return nil
}

// gitURLToLocalPath derives a stable on-disk mirror path for a git URL:
// <baseDir>/<host>/<repo path without .git>. Both https and scp-style
// (git@host:user/repo.git) remotes are supported.
func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err == nil && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		return filepath.Join(baseDir, parsed.Host, strings.TrimSuffix(parsed.Path, ".git")), nil
	}
	if strings.Contains(repoURL, "@") {
		if userHost, repoPath, ok := strings.Cut(repoURL, ":"); ok {
			if _, host, ok := strings.Cut(userHost, "@"); ok {
				return filepath.Join(baseDir, host, strings.TrimSuffix(repoPath, ".git")), nil
			}
		}
	}
	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
