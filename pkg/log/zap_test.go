package log_test

import (
	"context"
	"testing"

	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

func TestInit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  log.ZapConfig
	}{
		{name: "development console", cfg: log.ZapConfig{Level: "debug", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole, ColorEnabled: true}},
		{name: "production json", cfg: log.ZapConfig{Level: "info", Mode: log.ModeProduction, Encoding: log.EncodingJSON}},
		{name: "unknown level", cfg: log.ZapConfig{Level: "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := log.Init(tt.cfg)
			if l == nil {
				t.Fatal("expected logger")
			}
			l.Debugf(ctx, "debug %d", 1)
			l.Infof(ctx, "info %s", "x")
			l.Warn(ctx, "warn")
			l.Error(ctx, "error")
		})
	}
}

func TestNewNop(t *testing.T) {
	l := log.NewNop()
	l.Infof(context.Background(), "discarded %v", true)
}
