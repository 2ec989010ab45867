package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/syncstate"
	"go-orderdesk/pkg/logging"
)

// scriptedDriver answers prompts from a fixed list of choices.
type scriptedDriver struct {
	answers []int
	prompts []SelectConfig
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.prompts = append(d.prompts, cfg)
	if len(d.answers) == 0 {
		return 0, ErrAborted
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

type fakeController struct {
	mux       sync.Mutex
	mounted   int
	refreshes int
	deleted   []string
	disabled  map[string]bool
	exportErr error
	exportDir string
}

func (c *fakeController) Mount(context.Context) {
	c.mounted++
}

func (c *fakeController) Refresh(context.Context) bool {
	c.refreshes++
	return true
}

func (c *fakeController) Delete(_ context.Context, orderID string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.disabled[orderID] {
		return false
	}
	c.disabled[orderID] = true
	c.deleted = append(c.deleted, orderID)
	return true
}

func (c *fakeController) Disabled(orderID string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.disabled[orderID]
}

func (c *fakeController) Export(_ context.Context, dir string) (string, error) {
	c.exportDir = dir
	if c.exportErr != nil {
		return "", c.exportErr
	}
	return dir + "/order-list.pdf", nil
}

type staticState struct {
	state syncstate.State
}

func (s staticState) Snapshot() syncstate.State {
	return s.state
}

func orders() []orderprotocol.Order {
	return []orderprotocol.Order{
		{
			ID:         "A1",
			Items:      []orderprotocol.Item{{Name: "Pen"}, {Name: "Ink"}},
			TotalPrice: decimal.NewFromInt(150),
			Status:     "Processing",
		},
		{
			ID:         "B2",
			TotalPrice: decimal.RequireFromString("99.5"),
			Status:     "Delivered",
		},
	}
}

func newConsole(driver PromptDriver, controller Controller, state syncstate.State, out *bytes.Buffer) *Console {
	return New(
		Config{DownloadsDir: "/tmp/downloads"},
		controller,
		staticState{state: state},
		orderlist.NewBuilder(orderlist.Config{}),
		driver,
		out,
		logging.NewNop(),
	)
}

func TestRunDeletesSelectedOrder(t *testing.T) {
	out := &bytes.Buffer{}
	driver := &scriptedDriver{answers: []int{1, 1, 1, 0, 3}}
	controller := &fakeController{disabled: map[string]bool{}}

	err := newConsole(driver, controller, syncstate.State{Orders: orders()}, out).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, controller.mounted)
	assert.Equal(t, []string{"B2", "A1"}, controller.deleted)
	require.Len(t, driver.prompts, 5)
	assert.Equal(t, []string{"A1  Pen, Ink  ₹150", "B2    ₹99.5", "Back"}, driver.prompts[1].Options)
	// B2 is no longer offered once its delete is outstanding
	assert.Equal(t, []string{"A1  Pen, Ink  ₹150", "Back"}, driver.prompts[3].Options)
	assert.Contains(t, out.String(), "/admin/order/B2 | deleting")
}

func TestRunBackDoesNothing(t *testing.T) {
	driver := &scriptedDriver{answers: []int{1, 2, 3}}
	controller := &fakeController{disabled: map[string]bool{}}

	err := newConsole(driver, controller, syncstate.State{Orders: orders()}, &bytes.Buffer{}).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, controller.deleted)
}

func TestRunExport(t *testing.T) {
	out := &bytes.Buffer{}
	controller := &fakeController{disabled: map[string]bool{}}

	err := newConsole(&scriptedDriver{answers: []int{2, 3}}, controller, syncstate.State{Orders: orders()}, out).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/tmp/downloads", controller.exportDir)
	assert.Contains(t, out.String(), "Saved /tmp/downloads/order-list.pdf")
}

func TestRunExportFailureKeepsRunning(t *testing.T) {
	out := &bytes.Buffer{}
	controller := &fakeController{disabled: map[string]bool{}, exportErr: errors.New("disk full")}
	driver := &scriptedDriver{answers: []int{2, 0, 3}}

	err := newConsole(driver, controller, syncstate.State{Orders: orders()}, out).Run(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Saved")
	assert.Equal(t, 1, controller.refreshes)
}

func TestRunAbortedPromptQuits(t *testing.T) {
	err := newConsole(&scriptedDriver{}, &fakeController{disabled: map[string]bool{}}, syncstate.State{}, &bytes.Buffer{}).
		Run(context.Background())

	assert.NoError(t, err)
}

func TestRenderTable(t *testing.T) {
	builder := orderlist.NewBuilder(orderlist.Config{})

	t.Run("loading", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, RenderTable(out, builder.Build(orders(), nil), true))
		assert.Equal(t, "Loading orders...\n", out.String())
	})

	t.Run("rows", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, RenderTable(out, builder.Build(orders(), nil), false))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.Contains(t, lines[0], "Number of Items")
		assert.Contains(t, lines[1], "Pen, Ink")
		assert.Contains(t, lines[1], "₹150")
		assert.Contains(t, lines[1], "Processing (red)")
		assert.Contains(t, lines[2], "Delivered (green)")
	})

	t.Run("empty", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, RenderTable(out, builder.Build(nil, nil), false))
		assert.Contains(t, out.String(), "No orders")
	})
}

func TestSyncWriter(t *testing.T) {
	out := &bytes.Buffer{}
	w := NewSyncWriter(out)
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = w.Write([]byte("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, out.Len())
}
