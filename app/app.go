// Package app wires storage, the conversation router and the Telegram transport
// into one runnable bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/taskbot/core/bootstrap"
	corecmd "github.com/m3rciful/taskbot/core/cmd"
	coreconfig "github.com/m3rciful/taskbot/core/config"
	"github.com/m3rciful/taskbot/core/flow"
	"github.com/m3rciful/taskbot/core/logger"
	"github.com/m3rciful/taskbot/core/messages"
	"github.com/m3rciful/taskbot/core/router"
	coretelegram "github.com/m3rciful/taskbot/core/telegram"
	"github.com/m3rciful/taskbot/core/telegram/keyboard"
	"github.com/m3rciful/taskbot/core/telegram/routes"
	tgsender "github.com/m3rciful/taskbot/core/telegram/sender"
)

// Config satisfies corecmd.ConfigCarrier.
type Config struct {
	*coreconfig.Config
}

// CoreConfig returns the wrapped configuration.
func (c Config) CoreConfig() *coreconfig.Config { return c.Config }

// LoadConfig reads and validates the full bot configuration.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return Config{Config: cfg}, nil
}

// App owns everything the bot needs while it runs.
type App struct {
	cfg      *coreconfig.Config
	infra    *bootstrap.Result
	sessions *flow.Manager
	router   *router.Router
}

// Bootstrap initializes logging and storage and builds the router.
func Bootstrap(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	if carrier == nil || carrier.CoreConfig() == nil {
		return nil, errors.New("app: nil config provided")
	}
	cfg := carrier.CoreConfig()
	infra, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	return New(cfg, infra), nil
}

// New assembles an App over already opened infrastructure.
func New(cfg *coreconfig.Config, infra *bootstrap.Result, opts ...router.Option) *App {
	sessions := flow.NewManager()
	cat := messages.For(cfg.Bot.Locale)
	return &App{
		cfg:      cfg,
		infra:    infra,
		sessions: sessions,
		router:   router.New(infra.Store, sessions, cat, opts...),
	}
}

// Router exposes the chat router, mainly for tests.
func (a *App) Router() *router.Router { return a.router }

// TelegramRunOptions builds the transport options: command menu, middlewares,
// the text route and the storage shutdown hook.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	for _, c := range a.router.Commands() {
		if err := reg.RegisterCommand(c.Name, c.Description); err != nil {
			return coretelegram.RunOptions{}, fmt.Errorf("app: %w", err)
		}
	}

	cat := a.router.Catalog()
	return coretelegram.RunOptions{
		Config:   a.cfg,
		Registry: reg,
		// One worker keeps every chat's replies in order.
		DispatcherOptions: tgsender.Options{Workers: 1},
		Middlewares:       coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes: routes.TextRoutes(a.router, routes.TextOptions{
			Keyboard: keyboard.ReplyButtons(cat.Labels()...),
		}),
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.L.LogAttrs(ctx, slog.LevelInfo, "sessions dropped",
				slog.String("component", "app"),
				slog.String("event", "flow.drop"),
				slog.Int("sessions", a.sessions.Len()),
				slog.Int("tasks", a.infra.Store.Len()),
			)
			return a.infra.Close()
		},
	}, nil
}
