package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m3rciful/taskbot/core/bootstrap"
	coreconfig "github.com/m3rciful/taskbot/core/config"
	"github.com/m3rciful/taskbot/core/router"
	"github.com/m3rciful/taskbot/core/tasks"
	coretelegram "github.com/m3rciful/taskbot/core/telegram"
)

func newTestApp(t *testing.T, locale string) (*App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	cfg := &coreconfig.Config{
		Storage: coreconfig.StorageConfig{Backend: coreconfig.BackendFile, Path: path},
		Bot:     coreconfig.BotConfig{Locale: locale},
	}
	infra, err := bootstrap.OpenStorage(context.Background(), bootstrap.Options{Config: cfg})
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	today := time.Date(2024, time.February, 20, 9, 0, 0, 0, time.Local)
	return New(cfg, infra, router.WithClock(func() time.Time { return today })), path
}

func TestConversationPersistsAcrossRestart(t *testing.T) {
	a, path := newTestApp(t, "en")
	ctx := context.Background()
	for _, text := range []string{"/new", "Buy milk", "29-02-2024"} {
		a.Router().Handle(ctx, 7, text)
	}

	list, err := tasks.NewJSONFile(path).Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(list) != 1 || list[0].Text != "Buy milk" || list[0].DueDate.String() != "29-02-2024" {
		t.Fatalf("persisted = %+v", list)
	}
}

func TestTelegramRunOptions(t *testing.T) {
	a, _ := newTestApp(t, "ru")
	opts, err := a.TelegramRunOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if got := len(opts.Registry.ListCommands()); got != 5 {
		t.Fatalf("menu has %d commands", got)
	}
	if len(opts.Routes) != 1 || opts.Routes[0].Handler == nil {
		t.Fatalf("routes = %+v", opts.Routes)
	}
	if opts.DispatcherOptions.Workers != 1 {
		t.Fatalf("workers = %d", opts.DispatcherOptions.Workers)
	}
	if err := opts.OnStop(context.Background(), coretelegram.Runtime{}); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestBootstrapRejectsNilConfig(t *testing.T) {
	if _, err := Bootstrap(context.Background(), Config{}); err == nil {
		t.Fatal("expected error")
	}
}
