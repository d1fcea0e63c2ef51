package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/taskbot/core/config"
	coretelegram "github.com/m3rciful/taskbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct {
	opts    coretelegram.RunOptions
	stopped bool
}

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	opts := a.opts
	opts.OnStop = func(context.Context, coretelegram.Runtime) error {
		a.stopped = true
		return nil
	}
	return opts, nil
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("TASKBOT_TEST_CONFIG", "/etc/taskbot.yaml")
	if got := ResolveConfigPath("flag.yaml", "TASKBOT_TEST_CONFIG", ""); got != "flag.yaml" {
		t.Fatalf("flag path = %q", got)
	}
	if got := ResolveConfigPath("", "TASKBOT_TEST_CONFIG", ""); got != "/etc/taskbot.yaml" {
		t.Fatalf("env path = %q", got)
	}
	t.Setenv("TASKBOT_TEST_CONFIG", "")
	if got := ResolveConfigPath("", "TASKBOT_TEST_CONFIG", ""); got != DefaultConfigPath {
		t.Fatalf("default path = %q", got)
	}
}

func TestRunWiresLifecycleHooks(t *testing.T) {
	app := &fakeApp{}
	var loadedFrom string
	shutdowns := 0

	err := Run(Options{
		ConfigPath: "cfg.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedFrom = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { shutdowns++; return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loadedFrom != "cfg.yaml" {
		t.Fatalf("loaded from %q", loadedFrom)
	}
	if !app.stopped {
		t.Fatal("app OnStop hook was not chained")
	}
	if shutdowns != 1 {
		t.Fatalf("logger shutdown called %d times", shutdowns)
	}
}

func TestRunBootstrapFailureStillFlushesLogger(t *testing.T) {
	boom := errors.New("db down")
	shutdowns := 0
	err := Run(Options{
		ConfigPath: "cfg.yaml",
		LoadConfig: func(string) (ConfigCarrier, error) {
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return nil, boom
		},
		ShutdownLogger: func() error { shutdowns++; return nil },
		RunTelegram: func(context.Context, coretelegram.RunOptions) error {
			t.Fatal("bot must not start after a failed bootstrap")
			return nil
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if shutdowns != 1 {
		t.Fatalf("logger shutdown called %d times", shutdowns)
	}
}

func TestRunRequiresLoaders(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("expected error without LoadConfig")
	}
	err := Run(Options{LoadConfig: func(string) (ConfigCarrier, error) { return carrier{}, nil }})
	if err == nil {
		t.Fatal("expected error without Bootstrap")
	}
}

func TestRunRejectsEmptyConfig(t *testing.T) {
	err := Run(Options{
		ConfigPath: "x",
		LoadConfig: func(string) (ConfigCarrier, error) { return carrier{}, nil },
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			t.Fatal("bootstrap must not run")
			return nil, nil
		},
	})
	if err == nil {
		t.Fatal("expected error for nil core config")
	}
}
