package console

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/notify"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/synccontroller"
	"go-orderdesk/internal/orderdesk/syncstate"
	"go-orderdesk/pkg/logging"
)

type lockedBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.String()
}

// instantRemote answers every request immediately through the container.
type instantRemote struct {
	mux       sync.Mutex
	container *syncstate.Container
	orders    []orderprotocol.Order
}

func (r *instantRemote) FetchAllOrders(context.Context) {
	r.mux.Lock()
	orders := append([]orderprotocol.Order(nil), r.orders...)
	r.mux.Unlock()
	r.container.StartLoading()
	r.container.SetOrders(orders)
}

func (r *instantRemote) DeleteOrder(_ context.Context, orderID string) {
	r.mux.Lock()
	kept := r.orders[:0]
	for _, order := range r.orders {
		if order.ID != orderID {
			kept = append(kept, order)
		}
	}
	r.orders = kept
	r.mux.Unlock()
	r.container.MarkDeleted()
}

// waitingDriver answers each prompt once the terminal shows what the step
// expects, without any other operator input.
type waitingDriver struct {
	out   *lockedBuffer
	steps []waitStep
}

type waitStep struct {
	until  func(terminal string) bool
	answer int
}

func (d *waitingDriver) Select(ctx context.Context, _ SelectConfig) (int, error) {
	if len(d.steps) == 0 {
		return 0, ErrAborted
	}
	step := d.steps[0]
	d.steps = d.steps[1:]
	deadline := time.Now().Add(2 * time.Second)
	for !step.until(d.out.String()) {
		if time.Now().After(deadline) || ctx.Err() != nil {
			return 0, ErrAborted
		}
		time.Sleep(5 * time.Millisecond)
	}
	return step.answer, nil
}

func TestTableIsRedrawnWhenStateChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &lockedBuffer{}
	logger := logging.NewNop()
	container := syncstate.New()
	remote := &instantRemote{container: container, orders: orders()}
	controller := synccontroller.New(
		remote,
		container,
		notify.NewLogNotifier(out, logger),
		export.NewFormatter(export.Config{}),
		logger,
	)
	driver := &waitingDriver{out: out}
	app := New(
		Config{DownloadsDir: t.TempDir()},
		controller,
		container,
		orderlist.NewBuilder(orderlist.Config{}),
		driver,
		out,
		logger,
	)
	go func() {
		_ = container.Run(ctx, app.Handler(controller.HandleStateChange))
	}()

	tableDrawn := func(terminal string) bool {
		return strings.Contains(terminal, "Pen, Ink")
	}
	refetched := func(terminal string) bool {
		if !strings.Contains(terminal, "[success] Order Deleted Successfully!") {
			return false
		}
		table := lastTable(terminal)
		return strings.Contains(table, "B2") && !strings.Contains(table, "A1")
	}
	driver.steps = []waitStep{
		// the orders show up after the fetch with no operator action
		{until: tableDrawn, answer: 1},
		// delete A1
		{until: func(string) bool { return true }, answer: 0},
		// the list without A1 is drawn once the refetch lands
		{until: refetched, answer: 3},
	}

	require.NoError(t, app.Run(ctx))

	assert.Empty(t, driver.steps)
	terminal := out.String()
	assert.Contains(t, terminal, "₹150")
	table := lastTable(terminal)
	assert.Contains(t, table, "Delivered (green)")
	assert.NotContains(t, table, "Pen, Ink")
	controller.Wait()
}

// lastTable returns the terminal output starting at the last table header.
func lastTable(terminal string) string {
	i := strings.LastIndex(terminal, "Product Names")
	if i < 0 {
		return ""
	}
	return terminal[i:]
}

func TestHandlerSkipsUnchangedState(t *testing.T) {
	out := &bytes.Buffer{}
	var seen []syncstate.State
	app := newConsole(&scriptedDriver{}, &fakeController{disabled: map[string]bool{}}, syncstate.State{}, out)
	handler := app.Handler(func(_ context.Context, state syncstate.State) {
		seen = append(seen, state)
	})
	loaded := syncstate.State{Orders: orders(), OrdersVersion: 1}

	handler(context.Background(), loaded)
	first := out.String()
	handler(context.Background(), syncstate.State{Orders: orders(), OrdersVersion: 1, Deleted: true})
	handler(context.Background(), syncstate.State{Orders: orders(), OrdersVersion: 1, Error: "boom"})

	assert.Len(t, seen, 3)
	assert.Contains(t, first, "Pen, Ink")
	assert.Equal(t, first, out.String())

	handler(context.Background(), syncstate.State{Loading: true, Orders: orders(), OrdersVersion: 1})
	assert.True(t, strings.HasSuffix(out.String(), "Loading orders...\n"))
}
