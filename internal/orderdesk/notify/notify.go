// Package notify delivers operator notifications.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"go-orderdesk/pkg/logging"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Notification struct {
	ID      string
	Kind    Kind
	Message string
}

// Notifier shows n to the operator and calls ack exactly once when the
// notification has been acknowledged.
type Notifier interface {
	Notify(ctx context.Context, n Notification, ack func())
}

// LogNotifier writes notifications to the operator's terminal and the log, and
// acknowledges them as soon as they are shown.
type LogNotifier struct {
	out    io.Writer
	mux    *sync.Mutex
	logger *logging.ZapLogger
}

func NewLogNotifier(out io.Writer, logger *logging.ZapLogger) *LogNotifier {
	return &LogNotifier{
		out:    out,
		mux:    &sync.Mutex{},
		logger: logger,
	}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification, ack func()) {
	n.mux.Lock()
	_, err := fmt.Fprintf(n.out, "[%s] %s\n", notification.Kind, notification.Message)
	n.mux.Unlock()
	if err != nil {
		n.logger.ErrorCtx(ctx, "failed to show notification", zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("id", notification.ID),
		zap.String("kind", string(notification.Kind)),
		zap.String("message", notification.Message),
	}
	switch notification.Kind {
	case Error:
		n.logger.WarnCtx(ctx, "notification", fields...)
	default:
		n.logger.InfoCtx(ctx, "notification", fields...)
	}

	if ack != nil {
		ack()
	}
}
