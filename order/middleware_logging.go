package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
)

// Logger is a logging service middleware for the order capability.
type Logger struct {
	logger       *zap.Logger
	orderService orderly.OrderService
}

// NewLogger returns a logging service middleware for the order capability.
func NewLogger(log *zap.Logger, s orderly.OrderService) *Logger {
	return &Logger{
		logger:       log,
		orderService: s,
	}
}

var _ orderly.OrderService = (*Logger)(nil)

func (l *Logger) CreateOrder(ctx context.Context, o *orderly.Order) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create order", zap.Error(err), dur)
			return
		}
		l.logger.Debug("order create", zap.String("guid", o.GUID), dur)
	}(time.Now())
	return l.orderService.CreateOrder(ctx, o)
}

func (l *Logger) FindOrderByGUID(ctx context.Context, guid string) (o *orderly.Order, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find order with GUID %v", guid)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("order find by GUID", dur)
	}(time.Now())
	return l.orderService.FindOrderByGUID(ctx, guid)
}

func (l *Logger) FindOrders(ctx context.Context, filter orderly.OrderFilter, opts orderly.FindOptions) (os []*orderly.Order, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find orders", zap.Error(err), dur)
			return
		}
		l.logger.Debug("orders find", zap.Int("matched", n), dur)
	}(time.Now())
	return l.orderService.FindOrders(ctx, filter, opts)
}

func (l *Logger) UpdateOrder(ctx context.Context, id orderly.ID, upd orderly.OrderUpdate) (o *orderly.Order, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to update order with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("order update", dur)
	}(time.Now())
	return l.orderService.UpdateOrder(ctx, id, upd)
}

func (l *Logger) DeleteOrder(ctx context.Context, id orderly.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete order with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("order delete", dur)
	}(time.Now())
	return l.orderService.DeleteOrder(ctx, id)
}
