package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-orderdesk/pkg/logging"
)

func TestLogNotifier(t *testing.T) {
	out := &bytes.Buffer{}
	notifier := NewLogNotifier(out, logging.NewNop())
	acks := 0

	notifier.Notify(context.Background(), Notification{ID: "1", Kind: Success, Message: "Order Deleted Successfully!"}, func() { acks++ })
	notifier.Notify(context.Background(), Notification{ID: "2", Kind: Error, Message: "Order not found"}, func() { acks++ })
	notifier.Notify(context.Background(), Notification{ID: "3", Kind: Error, Message: "no ack"}, nil)

	assert.Equal(t, 2, acks)
	assert.Equal(t, "[success] Order Deleted Successfully!\n[error] Order not found\n[error] no ack\n", out.String())
}
