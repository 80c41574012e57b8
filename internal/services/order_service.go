// Package services – OrderService
//
// OrderService is the single entry point for placing orders, shared by the
// bot and the mini-app API. It enforces the order rules, persists the order
// in one transaction, and afterwards notifies the operator and publishes an
// order event. Delivery is best-effort: once the row is written the order
// counts as placed, and notification or publishing failures are logged and
// counted, never returned.
package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/events"
	"github.com/tbourn/go-table-order/internal/notify"
	"github.com/tbourn/go-table-order/internal/observability"
	"github.com/tbourn/go-table-order/internal/repo"
)

// deliveryTimeout bounds how long the operator notification and the event
// publish may take after the order is written.
const deliveryTimeout = 10 * time.Second

// PlaceOrder is the input accepted by OrderService.Place.
type PlaceOrder struct {
	Table  string
	Lines  []domain.OrderLine
	UserID string
	Source string
}

// OrderService places orders.
type OrderService struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Events   events.Publisher
}

// NewOrderService wires an OrderService. Nil notifier or publisher are
// replaced by no-op implementations.
func NewOrderService(db *gorm.DB, n notify.Notifier, p events.Publisher) *OrderService {
	if n == nil {
		n = notify.Nop{}
	}
	if p == nil {
		p = events.Nop{}
	}
	return &OrderService{DB: db, Notifier: n, Events: p}
}

// Place validates and persists an order, then notifies the operator.
//
// Rules:
//   - no lines → ErrEmptyCart (nothing written, nobody notified)
//   - a line with an empty name or a negative price → ErrValidation
//   - a missing or non-positive quantity counts as 1
//   - a line subtotal or total that does not fit in int64 → ErrValidation
//   - a blank table becomes domain.UnknownTable
//   - Total = Σ price × qty
func (s *OrderService) Place(ctx context.Context, in PlaceOrder) (*domain.Order, error) {
	ctx, span := otel.Tracer("services/OrderService").Start(ctx, "Place",
		trace.WithAttributes(
			attribute.String("order.source", in.Source),
			attribute.Int("order.lines", len(in.Lines)),
		),
	)
	defer span.End()

	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, len(in.Lines))
	var total int64
	for i, l := range in.Lines {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return nil, fmt.Errorf("%w: items[%d].name is required", ErrValidation, i)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("%w: items[%d].price must be at least 0", ErrValidation, i)
		}
		l.Qty = l.Quantity()
		if l.Price > math.MaxInt64/int64(l.Qty) {
			return nil, fmt.Errorf("%w: items[%d] price × qty is too large", ErrValidation, i)
		}
		sub := l.Subtotal()
		if total > math.MaxInt64-sub {
			return nil, fmt.Errorf("%w: order total is too large", ErrValidation)
		}
		total += sub
		lines = append(lines, l)
	}

	table := strings.TrimSpace(in.Table)
	if table == "" {
		table = domain.UnknownTable
	}
	source := in.Source
	if source == "" {
		source = domain.SourceMiniApp
	}

	o := &domain.Order{
		Table:  table,
		Items:  lines,
		Total:  total,
		UserID: in.UserID,
		Source: source,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.CreateOrder(ctx, tx, o)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist order")
		return nil, fmt.Errorf("persist order: %w", err)
	}
	span.SetAttributes(attribute.Int("order.id", int(o.ID)), attribute.Int64("order.total", o.Total))
	observability.OrdersPlaced.WithLabelValues(o.Source).Inc()

	s.deliver(ctx, o)
	return o, nil
}

// deliver notifies the operator and publishes the order event. The caller's
// cancellation does not abort delivery of an order that is already written.
func (s *OrderService) deliver(ctx context.Context, o *domain.Order) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()

	lg := log.With().Uint("order_id", o.ID).Str("table", o.Table).Str("source", o.Source).Logger()

	if s.Notifier != nil {
		if err := s.Notifier.Notify(dctx, notify.RenderOrder(o)); err != nil {
			observability.NotificationsFailed.Inc()
			lg.Error().Err(err).Msg("operator notification failed")
		}
	}
	if s.Events != nil {
		if err := s.Events.OrderPlaced(dctx, o); err != nil {
			observability.EventsFailed.Inc()
			lg.Error().Err(err).Msg("order event publish failed")
		}
	}
	lg.Info().Int64("total", o.Total).Int("lines", len(o.Items)).Msg("order placed")
}

// Summary returns the number of orders and their revenue since the given
// time. It backs the operator summary in the bot.
func (s *OrderService) Summary(ctx context.Context, since time.Time) (repo.OrderSummary, error) {
	ctx, span := otel.Tracer("services/OrderService").Start(ctx, "Summary")
	defer span.End()

	return repo.OrderStats(ctx, s.DB, since)
}
