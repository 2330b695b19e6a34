// Package bootstrap builds the storage and collaborators shared by the API, the consumer and
// the journal CLI from one loaded config.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/asyncopatedsoul/health-protocol/config"
	kafkaCfg "github.com/asyncopatedsoul/health-protocol/config/kafka"
	"github.com/asyncopatedsoul/health-protocol/config/postgre"
	"github.com/asyncopatedsoul/health-protocol/config/sqlite"
	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	planUC "github.com/asyncopatedsoul/health-protocol/internal/plan/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	meiliRepo "github.com/asyncopatedsoul/health-protocol/internal/repository/meili"
	memoryRepo "github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
	memosRepo "github.com/asyncopatedsoul/health-protocol/internal/repository/memos"
	pgRepo "github.com/asyncopatedsoul/health-protocol/internal/repository/postgre"
	sqliteRepo "github.com/asyncopatedsoul/health-protocol/internal/repository/sqlite"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/yamlfile"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/gcalendar"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
	"github.com/asyncopatedsoul/health-protocol/pkg/meili"
)

// Infra is the wired infrastructure. Optional collaborators are nil when disabled.
type Infra struct {
	Store    repository.Store
	Notes    repository.NoteRepository
	Programs repository.ProgramRepository
	Search   repository.SearchRepository

	Publisher eventbus.Publisher
	Calendar  planUC.Calendar
	Dates     *datemath.Parser

	// MemosEnabled reports that notes come from Memos.
	MemosEnabled bool

	closers []func()
}

// Open connects storage and every enabled collaborator. Optional collaborators that fail to
// initialise are logged and left disabled; storage failures are returned.
func Open(ctx context.Context, cfg *config.Config, l log.Logger) (*Infra, error) {
	infra := &Infra{Publisher: eventbus.NewNop()}

	store, err := infra.openStore(ctx, cfg, l)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Store = store
	infra.Notes = store
	infra.Programs = store
	l.Infof(ctx, "Storage driver: %s", cfg.Storage.Driver)

	dates, err := datemath.NewParser(cfg.Importer.DefaultTimezone)
	if err != nil {
		l.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Importer.DefaultTimezone, err)
		dates, _ = datemath.NewParser("UTC")
	}
	infra.Dates = dates

	if cfg.Programs.FromDir {
		infra.Programs = yamlfile.New(cfg.Programs.Dir, l)
		l.Infof(ctx, "Programs served from %s", cfg.Programs.Dir)
	}

	if cfg.Memos.Enabled {
		client := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
		infra.Notes = memosRepo.New(client, cfg.Memos.UserID, l)
		infra.MemosEnabled = true
		l.Infof(ctx, "Notes served from Memos at %s", cfg.Memos.URL)
	}

	if cfg.Meilisearch.Enabled {
		client := meili.NewClient(cfg.Meilisearch.URL, cfg.Meilisearch.APIKey,
			meili.WithTimeout(cfg.Meilisearch.Timeout),
			meili.WithRateLimit(cfg.Meilisearch.RatePerSec, int(cfg.Meilisearch.RatePerSec)),
		)
		infra.Search = meiliRepo.New(client, cfg.Meilisearch.Index, l)
		l.Infof(ctx, "Search enabled (index %s)", cfg.Meilisearch.Index)
	}

	producer, err := kafkaCfg.ConnectProducer(cfg.Kafka)
	switch {
	case errors.Is(err, kafkaCfg.ErrDisabled):
		l.Info(ctx, "Kafka disabled, events are not published")
	case err != nil:
		l.Warnf(ctx, "Kafka not available (optional): %v", err)
	default:
		infra.Publisher = eventbus.NewKafka(producer, kafkaCfg.Topics(cfg.Kafka))
		infra.closers = append(infra.closers, func() { producer.Close() })
	}

	if cfg.GoogleCalendar.CredentialsPath != "" {
		cal, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath,
			gcalendar.WithTokenPath(cfg.GoogleCalendar.TokenPath))
		if err != nil {
			l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			l.Warn(ctx, "Run `go run ./scripts/gcal-auth` to generate a token")
		} else {
			infra.Calendar = cal
			l.Info(ctx, "Google Calendar export enabled")
		}
	}

	return infra, nil
}

func (i *Infra) openStore(ctx context.Context, cfg *config.Config, l log.Logger) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return pgRepo.New(pool, l), nil
	case config.DriverMemory:
		return memoryRepo.New(), nil
	case config.DriverSQLite:
		db, err := sqlite.Connect(ctx, cfg.Sqlite)
		if err != nil {
			return nil, err
		}
		return sqliteRepo.New(db, l), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Close releases the producer and the store.
func (i *Infra) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
	if i.Store != nil {
		i.Store.Close()
	}
}

// ImporterConfig maps the importer section.
func ImporterConfig(cfg *config.Config) importer.Config {
	return importer.Config{
		Threshold:       cfg.Importer.Threshold,
		SkipDuplicates:  cfg.Importer.SkipDuplicates,
		DefaultTimezone: cfg.Importer.DefaultTimezone,
	}
}

// PlanConfig maps the scheduler and calendar sections.
func PlanConfig(cfg *config.Config) plan.Config {
	return plan.Config{
		DefaultDurationDays: cfg.Scheduler.DefaultDays,
		DefaultTimezone:     cfg.Scheduler.Timezone,
		CalendarID:          cfg.GoogleCalendar.CalendarID,
		EventDuration:       cfg.Scheduler.EventDuration,
	}
}
