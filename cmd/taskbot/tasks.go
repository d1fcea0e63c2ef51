package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/m3rciful/taskbot/core/bootstrap"
	corecmd "github.com/m3rciful/taskbot/core/cmd"
	coreconfig "github.com/m3rciful/taskbot/core/config"
	"github.com/m3rciful/taskbot/core/messages"
	"github.com/m3rciful/taskbot/core/tasks"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	stylePos    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	styleDue    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	styleDone   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleOpen   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	styleText   = lipgloss.NewStyle()
	styleDoneTx = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

func tasksCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect the stored task list",
	}
	cmd.AddCommand(tasksListCmd(configPath))
	return cmd
}

func tasksListCmd(configPath *string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the task list the bot would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := corecmd.ResolveConfigPath(*configPath, "", "")
			cfg, err := coreconfig.LoadStorage(path)
			if err != nil {
				return err
			}
			if watch {
				ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				return watchList(ctx, cmd.OutOrStdout(), cfg)
			}
			return printStoredList(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reprint whenever the task file changes (file backend only)")
	return cmd
}

func printStoredList(ctx context.Context, out io.Writer, cfg *coreconfig.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cat := messages.For(cfg.Bot.Locale)
	if cfg.Storage.Backend == coreconfig.BackendFile {
		list, err := peekList(ctx, tasks.NewJSONFile(cfg.Storage.Path))
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, renderTerminal(list, cat))
		return err
	}
	res, err := bootstrap.OpenStorage(ctx, bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer res.Close()
	_, err = io.WriteString(out, renderTerminal(res.Store.List(), cat))
	return err
}

func watchList(ctx context.Context, out io.Writer, cfg *coreconfig.Config) error {
	if cfg.Storage.Backend != coreconfig.BackendFile {
		return errors.New("tasks list --watch needs the file storage backend")
	}
	if err := printStoredList(ctx, out, cfg); err != nil {
		return err
	}

	cat := messages.For(cfg.Bot.Locale)
	persister := tasks.NewJSONFile(cfg.Storage.Path)
	var mu sync.Mutex
	return tasks.WatchFile(ctx, persister.Path(), 0, func() {
		mu.Lock()
		defer mu.Unlock()
		reprint(ctx, out, persister, cat)
	})
}

// peekList reads the file without side effects on disk; a missing file is an
// empty list. A corrupt file is reported rather than copied aside, which is
// left to the bot.
func peekList(ctx context.Context, persister *tasks.JSONFile) ([]tasks.Task, error) {
	list, err := persister.Peek(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return list, err
}

func reprint(ctx context.Context, out io.Writer, persister *tasks.JSONFile, cat *messages.Catalog) {
	list, err := peekList(ctx, persister)
	if err != nil {
		fmt.Fprintf(out, "reload failed: %v\n", err)
		return
	}
	fmt.Fprintln(out)
	_, _ = io.WriteString(out, renderTerminal(list, cat))
}

// renderTerminal mirrors the chat list layout with terminal colors.
func renderTerminal(list []tasks.Task, cat *messages.Catalog) string {
	if cat == nil {
		cat = messages.For("")
	}
	if len(list) == 0 {
		return cat.ListEmpty + "\n"
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render(cat.ListHeader))
	b.WriteString("\n\n")
	for i, t := range list {
		text, mark := styleText.Render(t.Text), styleOpen.Render(cat.Open)
		if t.IsCompleted {
			text, mark = styleDoneTx.Render(t.Text), styleDone.Render(cat.Done)
		}
		b.WriteString(stylePos.Render(strconv.Itoa(i+1) + "."))
		b.WriteString(" ")
		b.WriteString(text)
		if t.DueDate != nil {
			b.WriteString(" ")
			b.WriteString(styleDue.Render(fmt.Sprintf("(%s: %s)", cat.DuePrefix, t.DueDate)))
		}
		b.WriteString(" — ")
		b.WriteString(mark)
		b.WriteByte('\n')
	}
	return b.String()
}
