package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/notify"
	"github.com/tbourn/go-table-order/internal/services"
	"github.com/tbourn/go-table-order/internal/utils"
)

// handleStart greets the customer with the table label carried by the deep
// link ("/start table3") and offers the menu.
func (b *Bot) handleStart(m *tgbotapi.Message) {
	table := strings.TrimSpace(m.CommandArguments())
	if table == "" {
		table = domain.UnknownTable
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if b.BaseURL != "" {
		link := b.BaseURL + "/?table=" + url.QueryEscape(table)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(buttonMiniApp, link)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(buttonMenu, callbackData(cbMenuPrefix, table)),
	))

	msg := tgbotapi.NewMessage(m.Chat.ID, fmt.Sprintf(textStart, html.EscapeString(table)))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

// handleAdd implements "/add <name> <price>". The last argument is the
// price, everything before it is the name.
func (b *Bot) handleAdd(ctx context.Context, m *tgbotapi.Message) {
	if !b.IsAdmin(m.From.ID) {
		b.reply(m, textNotAdmin)
		return
	}
	args := strings.Fields(m.CommandArguments())
	if len(args) < 2 {
		b.reply(m, textAddUsage)
		return
	}
	price, err := utils.ParsePrice(args[len(args)-1])
	if err != nil {
		b.reply(m, textAddUsage)
		return
	}
	b.addItem(ctx, m, services.NewMenuItem{
		Name:  strings.Join(args[:len(args)-1], " "),
		Price: price,
	}, textAddUsage)
}

// handleAddFull implements
// "/add_full <name> <price> <category> <image|-> <description...>".
func (b *Bot) handleAddFull(ctx context.Context, m *tgbotapi.Message) {
	if !b.IsAdmin(m.From.ID) {
		b.reply(m, textNotAdmin)
		return
	}
	args := strings.Fields(m.CommandArguments())
	if len(args) < 4 {
		b.reply(m, textAddFullUsage)
		return
	}
	price, err := utils.ParsePrice(args[1])
	if err != nil {
		b.reply(m, textAddFullUsage)
		return
	}
	image := args[3]
	if image == "-" {
		image = ""
	}
	b.addItem(ctx, m, services.NewMenuItem{
		Name:        args[0],
		Price:       price,
		Category:    args[2],
		Image:       image,
		Description: strings.Join(args[4:], " "),
	}, textAddFullUsage)
}

func (b *Bot) addItem(ctx context.Context, m *tgbotapi.Message, in services.NewMenuItem, usage string) {
	item, err := b.Menu.Add(ctx, in)
	switch {
	case errors.Is(err, services.ErrValidation):
		b.reply(m, usage)
	case err != nil:
		log.Error().Err(err).Int64("user_id", m.From.ID).Msg("bot: add menu item")
		b.reply(m, textGenericError)
	default:
		log.Info().Int64("user_id", m.From.ID).Uint("item_id", item.ID).Msg("bot: menu item added")
		b.reply(m, notify.RenderMenuAdded(item))
	}
}

// handleMenuCommand lists the menu as plain text.
func (b *Bot) handleMenuCommand(ctx context.Context, m *tgbotapi.Message) {
	items, err := b.Menu.List(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("bot: list menu")
		b.reply(m, textGenericError)
		return
	}
	msg := tgbotapi.NewMessage(m.Chat.ID, notify.RenderMenu(items))
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

// handleAdmin shows today's order summary and a link to the admin page.
func (b *Bot) handleAdmin(ctx context.Context, m *tgbotapi.Message) {
	if !b.IsAdmin(m.From.ID) {
		b.reply(m, textNotAdmin)
		return
	}
	now := b.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sum, err := b.Orders.Summary(ctx, since)
	if err != nil {
		log.Error().Err(err).Msg("bot: order summary")
		b.reply(m, textGenericError)
		return
	}

	text := fmt.Sprintf(textAdminStats, sum.Count, sum.Revenue)
	if b.Username != "" {
		text += fmt.Sprintf(textDeepLink, b.Username)
	}
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	if b.BaseURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(buttonAdmin, b.BaseURL+"/admin")),
		)
	}
	b.send(msg)
}
