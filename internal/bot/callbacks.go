package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-table-order/internal/cart"
	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/notify"
	"github.com/tbourn/go-table-order/internal/services"
	"github.com/tbourn/go-table-order/internal/utils"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil {
		return
	}
	switch data := cq.Data; {
	case data == cbConfirm:
		b.confirmOrder(ctx, cq)
	case strings.HasPrefix(data, cbOrderPrefix):
		b.addToCart(ctx, cq, strings.TrimPrefix(data, cbOrderPrefix))
	case strings.HasPrefix(data, cbMenuPrefix):
		b.showMenu(ctx, cq, strings.TrimPrefix(data, cbMenuPrefix))
	default:
		b.answer(cq, "", false)
	}
}

// chatID returns the chat a callback came from, falling back to the user's
// private chat.
func chatID(cq *tgbotapi.CallbackQuery) int64 {
	if cq.Message != nil && cq.Message.Chat != nil {
		return cq.Message.Chat.ID
	}
	return cq.From.ID
}

// showMenu sends the menu with one add-to-cart button per item and a
// confirm button.
func (b *Bot) showMenu(ctx context.Context, cq *tgbotapi.CallbackQuery, table string) {
	b.answer(cq, "", false)

	items, err := b.Menu.List(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("bot: list menu")
		b.send(tgbotapi.NewMessage(chatID(cq), textGenericError))
		return
	}
	if len(items) == 0 {
		b.send(tgbotapi.NewMessage(chatID(cq), notify.MenuEmptyText))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, it := range items {
		label := fmt.Sprintf("%s – %d so‘m", it.Name, it.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbOrderPrefix+strconv.FormatUint(uint64(it.ID), 10)+":", table)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(buttonConfirm, cbConfirm)))

	msg := tgbotapi.NewMessage(chatID(cq), notify.RenderMenu(items)+"\n\n"+textChooseItems)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

// addToCart handles "order:<id>:<table>".
func (b *Bot) addToCart(ctx context.Context, cq *tgbotapi.CallbackQuery, payload string) {
	idPart, table, _ := strings.Cut(payload, ":")
	id, err := utils.ParseID(idPart)
	if err != nil {
		b.answer(cq, textItemMissing, true)
		return
	}

	item, err := b.Menu.Get(ctx, id)
	if errors.Is(err, services.ErrItemNotFound) {
		b.answer(cq, textItemMissing, true)
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("item_id", id).Msg("bot: load menu item")
		b.answer(cq, textGenericError, true)
		return
	}

	c, err := b.Carts.AddItem(ctx, cq.From.ID, table, domain.CartEntry{ItemID: item.ID, Name: item.Name, Price: item.Price})
	if err != nil {
		log.Error().Err(err).Int64("user_id", cq.From.ID).Msg("bot: add to cart")
		b.answer(cq, textGenericError, true)
		return
	}
	b.answer(cq, fmt.Sprintf(textAddedToCart, item.Name, c.Total()), true)
}

// confirmOrder turns the user's cart into a persisted order.
func (b *Bot) confirmOrder(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	uid := cq.From.ID
	c, err := b.Carts.ConfirmAndClear(ctx, uid)
	if errors.Is(err, cart.ErrEmptyCart) {
		b.answer(cq, textCartEmpty, true)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("user_id", uid).Msg("bot: confirm cart")
		b.answer(cq, textGenericError, true)
		return
	}

	o, err := b.Orders.Place(ctx, services.PlaceOrder{
		Table:  c.Table,
		Lines:  c.Lines(),
		UserID: strconv.FormatInt(uid, 10),
		Source: domain.SourceBot,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", uid).Str("table", c.Table).Msg("bot: place order")
		b.restoreCart(ctx, c)
		b.answer(cq, textGenericError, true)
		return
	}

	log.Info().Int64("user_id", uid).Uint("order_id", o.ID).Msg("bot: order confirmed")
	b.answer(cq, "", false)
	b.send(tgbotapi.NewMessage(chatID(cq), textOrderAccepted))
}

// restoreCart puts the entries of a cart whose order could not be written
// back, so the customer can retry.
func (b *Bot) restoreCart(ctx context.Context, c domain.Cart) {
	for _, e := range c.Items {
		if _, err := b.Carts.AddItem(ctx, c.UserID, c.Table, e); err != nil {
			log.Error().Err(err).Int64("user_id", c.UserID).Msg("bot: restore cart")
			return
		}
	}
}

// callbackData joins prefix and table, shortening the table so the result
// fits Telegram's callback data limit.
func callbackData(prefix, table string) string {
	room := maxCallbackData - len(prefix)
	if room <= 0 {
		return prefix
	}
	if len(table) > room {
		table = table[:room]
		for !utf8.ValidString(table) {
			table = table[:len(table)-1]
		}
	}
	return prefix + table
}
