package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// ErrNoDestination is returned when the operator destination is empty or
// neither an @handle nor a numeric chat id.
var ErrNoDestination = errors.New("notify: no valid operator destination")

// Notifier delivers a pre-rendered text to the operator.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Sender is the subset of *tgbotapi.BotAPI used for outgoing messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends notifications to a Telegram chat.
//
// Destination is either a public handle ("@kitchen_channel"), delivered as a
// channel message, or a numeric chat id (group ids are negative).
type Telegram struct {
	API         Sender
	Destination string
}

// Notify implements Notifier.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := t.message(text)
	if err != nil {
		return err
	}
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.API.Send(msg); err != nil {
		return fmt.Errorf("notify: send to %s: %w", t.Destination, err)
	}
	return nil
}

func (t *Telegram) message(text string) (tgbotapi.MessageConfig, error) {
	dest := strings.TrimSpace(t.Destination)
	switch {
	case dest == "":
		return tgbotapi.MessageConfig{}, ErrNoDestination
	case strings.HasPrefix(dest, "@"):
		if len(dest) == 1 {
			return tgbotapi.MessageConfig{}, ErrNoDestination
		}
		return tgbotapi.NewMessageToChannel(dest, text), nil
	default:
		id, err := strconv.ParseInt(dest, 10, 64)
		if err != nil {
			return tgbotapi.MessageConfig{}, fmt.Errorf("%w: %q", ErrNoDestination, dest)
		}
		return tgbotapi.NewMessage(id, text), nil
	}
}

// Nop discards notifications. It is used when no bot token is configured.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(_ context.Context, text string) error {
	log.Debug().Int("len", len(text)).Msg("notification dropped: no notifier configured")
	return nil
}

var (
	_ Notifier = (*Telegram)(nil)
	_ Notifier = Nop{}
)
