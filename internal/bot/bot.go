// Package bot implements the Telegram chat surface: the /start greeting with
// the table label, administrator commands for the menu, the in-chat menu and
// cart, and order confirmation.
//
// The Bot is transport-agnostic. Updates reach HandleUpdate either from the
// webhook route (see handlers.Webhook) or from long polling (Poll).
package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-table-order/internal/cart"
	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/repo"
	"github.com/tbourn/go-table-order/internal/services"
)

// Sender is the subset of *tgbotapi.BotAPI the bot needs to reply.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// MenuService is the subset of services.MenuService used by the bot.
type MenuService interface {
	List(ctx context.Context, category string) ([]domain.MenuItem, error)
	Get(ctx context.Context, id uint) (*domain.MenuItem, error)
	Add(ctx context.Context, in services.NewMenuItem) (*domain.MenuItem, error)
}

// OrderService is the subset of services.OrderService used by the bot.
type OrderService interface {
	Place(ctx context.Context, in services.PlaceOrder) (*domain.Order, error)
	Summary(ctx context.Context, since time.Time) (repo.OrderSummary, error)
}

// Bot dispatches Telegram updates.
type Bot struct {
	API    Sender
	Menu   MenuService
	Orders OrderService
	Carts  cart.Store

	// Admins is the set of Telegram user ids allowed to manage the menu.
	Admins map[int64]struct{}
	// BaseURL is the public base URL of the service, used for mini-app and
	// admin page links. Links are omitted when empty.
	BaseURL string
	// Username is the bot's @username without the @, used for deep links.
	Username string

	now func() time.Time
}

// New returns a Bot. admins lists the administrator user ids.
func New(api Sender, menu MenuService, orders OrderService, carts cart.Store, admins []int64, baseURL, username string) *Bot {
	set := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &Bot{
		API:      api,
		Menu:     menu,
		Orders:   orders,
		Carts:    carts,
		Admins:   set,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: strings.TrimPrefix(username, "@"),
		now:      time.Now,
	}
}

// IsAdmin reports whether userID is on the administrator allow-list.
func (b *Bot) IsAdmin(userID int64) bool {
	_, ok := b.Admins[userID]
	return ok
}

// HandleUpdate processes a single update. It never returns an error: every
// failure is either answered with a fixed text or logged.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Int("update_id", u.UpdateID).Msg("bot: panic while handling update")
		}
	}()

	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.IsCommand():
		b.handleCommand(ctx, u.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil || m.Chat == nil {
		return
	}
	switch m.Command() {
	case "start":
		b.handleStart(m)
	case "add":
		b.handleAdd(ctx, m)
	case "add_full":
		b.handleAddFull(ctx, m)
	case "menu":
		b.handleMenuCommand(ctx, m)
	case "admin":
		b.handleAdmin(ctx, m)
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.API.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("bot: send failed")
	}
}

func (b *Bot) reply(m *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

func (b *Bot) answer(cq *tgbotapi.CallbackQuery, text string, alert bool) {
	cfg := tgbotapi.NewCallback(cq.ID, text)
	cfg.ShowAlert = alert
	if _, err := b.API.Request(cfg); err != nil {
		log.Error().Err(err).Str("callback_id", cq.ID).Msg("bot: answer callback failed")
	}
}
