// Package routes binds the chat router to Telegram update endpoints.
package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/taskbot/core/router"
	tg "github.com/m3rciful/taskbot/core/telegram"
	tghelpers "github.com/m3rciful/taskbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// ChatHandler answers one inbound text of a chat.
type ChatHandler interface {
	Handle(ctx context.Context, chatID int64, text string) []router.Reply
}

// TextOptions controls how replies are delivered.
type TextOptions struct {
	// Keyboard is attached to replies that ask for the main menu.
	Keyboard *tele.ReplyMarkup
}

// TextRoutes routes every text update, slash commands included, to h.
// Commands reach OnText because no command endpoint is registered.
func TextRoutes(h ChatHandler, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		chat := c.Chat()
		if h == nil || chat == nil {
			logHandlerSummary(c, handlerText, start, "skip", nil)
			return nil
		}

		ctx := tghelpers.WithHandler(c, handlerText)
		replies := h.Handle(ctx, chat.ID, c.Text())

		var sendErr error
		for _, r := range replies {
			var markup *tele.ReplyMarkup
			if r.Keyboard {
				markup = opts.Keyboard
			}
			if err := tghelpers.SendText(c, r.Text, markup); err != nil && sendErr == nil {
				sendErr = err
			}
		}

		status := ""
		if len(replies) == 0 {
			status = "skip"
		}
		logHandlerSummary(c, handlerText, start, status, sendErr, slog.Int("replies", len(replies)))
		return sendErr
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}

const handlerText = "text"
