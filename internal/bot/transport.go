package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// UpdateSource is the long-polling side of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Commands is the command list shown in Telegram clients.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Boshlash"},
	{Command: "menu", Description: "Menyu"},
	{Command: "add", Description: "Taom qo‘shish (admin)"},
	{Command: "add_full", Description: "Taomni to‘liq qo‘shish (admin)"},
	{Command: "admin", Description: "Admin panel"},
}

// RegisterCommands publishes Commands via setMyCommands.
func RegisterCommands(api Sender) error {
	_, err := api.Request(tgbotapi.NewSetMyCommands(Commands...))
	return err
}

// WebhookPath returns the webhook route for token: "/bot" followed by the
// part of the token after the colon, so the full secret never appears in
// access logs.
func WebhookPath(token string) string {
	if _, secret, ok := strings.Cut(token, ":"); ok {
		return "/bot" + secret
	}
	return "/bot" + token
}

// SetWebhook points Telegram at baseURL + WebhookPath(token).
func SetWebhook(api Sender, baseURL, token string) error {
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(baseURL, "/") + WebhookPath(token))
	if err != nil {
		return fmt.Errorf("build webhook: %w", err)
	}
	if _, err := api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes any registered webhook.
func DeleteWebhook(api Sender) error {
	_, err := api.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

// Poll receives updates by long polling until ctx is done. Each update is
// handled on its own goroutine; Poll waits for in-flight handlers before
// returning, and those handlers are not canceled with ctx.
func (b *Bot) Poll(ctx context.Context, src UpdateSource) {
	hctx := context.WithoutCancel(ctx)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := src.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	log.Info().Msg("bot: long polling started")
	for {
		select {
		case <-ctx.Done():
			src.StopReceivingUpdates()
			log.Info().Msg("bot: long polling stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer wg.Done()
				b.HandleUpdate(hctx, upd)
			}(upd)
		}
	}
}
