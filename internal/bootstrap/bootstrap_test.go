package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asyncopatedsoul/health-protocol/config"
	"github.com/asyncopatedsoul/health-protocol/internal/bootstrap"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

func baseConfig() *config.Config {
	return &config.Config{
		Storage:   config.StorageConfig{Driver: config.DriverMemory},
		Importer:  config.ImporterConfig{Threshold: 0.7, SkipDuplicates: true, DefaultTimezone: "America/Los_Angeles"},
		Scheduler: config.SchedulerConfig{DefaultDays: 21, Timezone: "Asia/Tokyo", EventDuration: 45 * time.Minute},
		GoogleCalendar: config.GoogleCalendarConfig{
			CalendarID: "training",
		},
	}
}

func TestOpenMemory(t *testing.T) {
	infra, err := bootstrap.Open(context.Background(), baseConfig(), log.NewNop())
	require.NoError(t, err)
	defer infra.Close()

	require.NotNil(t, infra.Store)
	require.NotNil(t, infra.Publisher)
	require.Equal(t, "America/Los_Angeles", infra.Dates.Location().String())
	require.Nil(t, infra.Search)
	require.Nil(t, infra.Calendar)
	require.False(t, infra.MemosEnabled)
}

func TestOpenSQLite(t *testing.T) {
	cfg := baseConfig()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Sqlite.Path = filepath.Join(t.TempDir(), "nested", "journal.db")

	infra, err := bootstrap.Open(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer infra.Close()

	ctx := context.Background()
	_, err = infra.Store.CreateUser(ctx, model.User{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	u, err := infra.Store.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1@example.com", u.Email)
}

func TestOpenOptionalCollaborators(t *testing.T) {
	cfg := baseConfig()
	cfg.Importer.DefaultTimezone = "Not/AZone"
	cfg.Programs = config.ProgramsConfig{FromDir: true, Dir: t.TempDir()}
	cfg.Memos = config.MemosConfig{Enabled: true, URL: "http://memos.invalid", UserID: "u1"}
	cfg.Meilisearch = config.MeilisearchConfig{Enabled: true, URL: "http://meili.invalid", Index: "activities", Timeout: time.Second}
	cfg.GoogleCalendar.CredentialsPath = filepath.Join(t.TempDir(), "missing.json")

	infra, err := bootstrap.Open(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer infra.Close()

	require.Equal(t, "UTC", infra.Dates.Location().String())
	require.True(t, infra.MemosEnabled)
	require.NotNil(t, infra.Search)
	require.NotEqual(t, infra.Store, infra.Programs)
	require.Nil(t, infra.Calendar)
}

func TestConfigMapping(t *testing.T) {
	cfg := baseConfig()

	ic := bootstrap.ImporterConfig(cfg)
	require.Equal(t, 0.7, ic.Threshold)
	require.True(t, ic.SkipDuplicates)

	pc := bootstrap.PlanConfig(cfg)
	require.Equal(t, 21, pc.DefaultDurationDays)
	require.Equal(t, "Asia/Tokyo", pc.DefaultTimezone)
	require.Equal(t, "training", pc.CalendarID)
	require.Equal(t, 45*time.Minute, pc.EventDuration)
}
