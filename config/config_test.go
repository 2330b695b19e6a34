package config

import (
	"testing"
)

func validConfig() Config {
	return Config{
		Storage:  StorageConfig{Driver: DriverSQLite},
		Sqlite:   SqliteConfig{Path: "data/journal.db"},
		Importer: ImporterConfig{Threshold: 0.7},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "sqlite ok", mutate: func(*Config) {}},
		{name: "memory needs nothing", mutate: func(c *Config) { c.Storage.Driver = DriverMemory; c.Sqlite.Path = "" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Sqlite.Path = "" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Storage.Driver = DriverPostgres
			c.Postgres.DSN = "postgres://localhost/journal"
		}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: true},
		{name: "memos without user", mutate: func(c *Config) {
			c.Memos = MemosConfig{Enabled: true, URL: "http://memos:5230"}
		}, wantErr: true},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enabled = true }, wantErr: true},
		{name: "threshold above one", mutate: func(c *Config) { c.Importer.Threshold = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("splitList() = %v", got)
	}
	if got := splitList(""); len(got) != 0 {
		t.Fatalf("splitList(\"\") = %v, want empty", got)
	}
}
