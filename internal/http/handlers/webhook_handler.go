package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tbourn/go-table-order/internal/http/middleware"
)

// UpdateDecoder decodes a Telegram webhook request. *tgbotapi.BotAPI
// satisfies it.
type UpdateDecoder interface {
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// UpdateHandler processes one decoded update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u tgbotapi.Update)
}

// Webhook returns the handler mounted on the bot webhook path. The update is
// processed before the request is answered so Telegram does not redeliver
// it; processing is detached from the request's cancellation.
func Webhook(dec UpdateDecoder, h UpdateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := dec.HandleUpdate(c.Request)
		if err != nil {
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(err).Msg("rejected webhook update")
			fail(c, http.StatusBadRequest, ErrCodeUpdateRejected, "malformed update")
			return
		}
		h.HandleUpdate(context.WithoutCancel(c.Request.Context()), *u)
		ok(c, http.StatusOK, OKResponse{OK: true})
	}
}
