// Command suca manages a spaced-repetition card collection: it syncs
// cards from configured sources, lists what is due and records reviews.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/SUCA-Team/SUCA-api/internal/config"
	"github.com/SUCA-Team/SUCA-api/internal/deck"
	"github.com/SUCA-Team/SUCA-api/internal/fsrs"
	"github.com/SUCA-Team/SUCA-api/internal/storage"
)

const usage = `Usage: suca [flags] <command> [args]

Commands:
  sync                          pull sources and reconcile cards
  due                           list cards due for review
  review <fingerprint> <1-4>    record a review (1=again 2=hard 3=good 4=easy)
  preview <fingerprint>         show the outcome of each possible rating
  retention <fingerprint>       show the current recall-probability estimate

Flags:
`

func main() {
	flags := pflag.NewFlagSet("suca", pflag.ExitOnError)
	configPath := flags.String("config", "suca.yaml", "path to the YAML config file")
	flags.String("db-path", "suca.db", "path to the SQLite database")
	flags.String("repos-dir", "repos", "directory for mirrored git sources")
	addSource := flags.String("add-source", "", "register a card source (path or git URL) and exit")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	if err := run(*configPath, flags, *addSource, flags.Args()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, flags *pflag.FlagSet, addSource string, args []string) error {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}
	defer db.Close()

	if addSource != "" {
		return registerSource(db, addSource)
	}

	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	now := time.Now()
	switch cmd := args[0]; cmd {
	case "sync":
		return deck.SyncAll(db, cfg.ReposDir, now)
	case "due":
		return listDue(db, cfg, now)
	case "review":
		if len(args) != 3 {
			return errors.New("usage: suca review <fingerprint> <1-4>")
		}
		return reviewCard(db, cfg, args[1], args[2], now)
	case "preview":
		if len(args) != 2 {
			return errors.New("usage: suca preview <fingerprint>")
		}
		return previewCard(db, cfg, args[1], now)
	case "retention":
		if len(args) != 2 {
			return errors.New("usage: suca retention <fingerprint>")
		}
		return showRetention(db, cfg, args[1], now)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func registerSource(db *storage.DB, path string) error {
	existing, err := db.FindSourceByPath(path)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("source already registered: %s", path)
	}
	kind := deck.KindOf(path)
	id, err := db.InsertSource(path, kind)
	if err != nil {
		return err
	}
	slog.Info("source registered", "id", id, "kind", kind, "path", path)
	return nil
}

func newScheduler(cfg config.Config) (*fsrs.Scheduler, error) {
	var opts []fsrs.Option
	if cfg.Scheduler.FuzzSeed != nil {
		opts = append(opts, fsrs.WithRandSource(rand.NewSource(*cfg.Scheduler.FuzzSeed)))
	}
	return fsrs.NewScheduler(cfg.Params(), opts...)
}

func listDue(db *storage.DB, cfg config.Config, now time.Time) error {
	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	due, err := db.DueCards(now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}
	for _, rec := range due {
		fmt.Printf("%s  %-10s  R=%.2f  %s\n",
			rec.Fingerprint[:12],
			rec.Scheduling.State,
			sched.Retrievability(rec.Scheduling, now),
			rec.Content.Front,
		)
	}
	fmt.Printf("\n%d cards due.\n", len(due))
	return nil
}

func reviewCard(db *storage.DB, cfg config.Config, fingerprint, ratingArg string, now time.Time) error {
	n, err := strconv.Atoi(ratingArg)
	if err != nil {
		return fmt.Errorf("rating must be a number 1-4: %q", ratingArg)
	}
	rating, err := fsrs.RatingFromInt(n)
	if err != nil {
		return err
	}
	rec, err := findCard(db, fingerprint)
	if err != nil {
		return err
	}
	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	updated, logEntry, err := sched.Review(rec.Scheduling, rating, now)
	if err != nil {
		return err
	}
	if err := db.UpdateScheduling(rec.Fingerprint, updated); err != nil {
		return err
	}
	if err := db.AppendReviewLog(rec.Fingerprint, logEntry); err != nil {
		return err
	}
	fmt.Printf("Rated %s: next review in %d days (due %s).\n",
		rating, updated.ScheduledDays, updated.Due.Format("2006-01-02"))
	return nil
}

func previewCard(db *storage.DB, cfg config.Config, fingerprint string, now time.Time) error {
	rec, err := findCard(db, fingerprint)
	if err != nil {
		return err
	}
	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	outcomes, err := sched.PreviewAll(rec.Scheduling, now)
	if err != nil {
		return err
	}
	fmt.Printf("Q: %s\n\n", rec.Content.Front)
	for _, rating := range fsrs.Ratings() {
		card := outcomes[rating]
		fmt.Printf("%-6s -> %-10s  %4d days  due %s\n",
			rating, card.State, card.ScheduledDays, card.Due.Format("2006-01-02"))
	}
	return nil
}

func showRetention(db *storage.DB, cfg config.Config, fingerprint string, now time.Time) error {
	rec, err := findCard(db, fingerprint)
	if err != nil {
		return err
	}
	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%.4f\n", sched.Retrievability(rec.Scheduling, now))
	return nil
}

// findCard resolves a fingerprint, accepting an unambiguous prefix so
// users can paste the short form printed by `suca due`.
func findCard(db *storage.DB, fingerprint string) (*storage.CardRecord, error) {
	rec, err := db.FindCard(fingerprint)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec, err = db.FindCardByPrefix(fingerprint)
		if err != nil {
			return nil, err
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("no card with fingerprint %s", fingerprint)
	}
	return rec, nil
}
