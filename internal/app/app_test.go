package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap/zaptest"

	"github.com/project-tktt/jobby/internal/app"
	"github.com/project-tktt/jobby/internal/config"
	"github.com/project-tktt/jobby/internal/session"
)

func baseConfig() *config.Config {
	cfg := config.Load()
	cfg.Session.RedisPrefix = "test"
	return cfg
}

func TestNew_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	cases := []struct {
		name    string
		backend string
		setup   func(*config.Config)
	}{
		{name: "memory", backend: config.BackendMemory},
		{name: "file", backend: config.BackendFile, setup: func(c *config.Config) {
			c.Session.File = filepath.Join(t.TempDir(), "session.json")
		}},
		{name: "redis", backend: config.BackendRedis, setup: func(c *config.Config) {
			c.Redis.Addr = mr.Addr()
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Session.Backend = c.backend
			if c.setup != nil {
				c.setup(cfg)
			}

			a, err := app.New(context.Background(), cfg, zaptest.NewLogger(t))
			if err != nil {
				t.Fatal(err)
			}
			defer a.Close()

			ctx := context.Background()
			if err := a.Store.SetToken(ctx, "tok", session.DefaultTTL); err != nil {
				t.Fatal(err)
			}
			if s := session.Current(ctx, a.Store, nil); s.Token != "tok" {
				t.Errorf("token = %q", s.Token)
			}
			if a.Client == nil {
				t.Error("client not built")
			}
		})
	}

	if !mr.Exists("test:jwt_token") {
		t.Error("redis backend did not write under the configured prefix")
	}
}

func TestNew_UnreachableRedis(t *testing.T) {
	cfg := baseConfig()
	cfg.Session.Backend = config.BackendRedis
	cfg.Redis.Addr = "127.0.0.1:1"

	if _, err := app.New(context.Background(), cfg, zaptest.NewLogger(t)); err == nil {
		t.Error("expected connection error")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.Session.Backend = "cookie"
	if _, err := app.New(context.Background(), cfg, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error")
	}
}
