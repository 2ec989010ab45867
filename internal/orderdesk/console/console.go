// Package console is the operator's terminal front end for the order list.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/syncstate"
	"go-orderdesk/pkg/logging"
)

const (
	actionRefresh = "Refresh"
	actionDelete  = "Delete an order"
	actionExport  = "Export PDF"
	actionQuit    = "Quit"
	optionBack    = "Back"
)

var actions = []string{actionRefresh, actionDelete, actionExport, actionQuit}

type Controller interface {
	Mount(ctx context.Context)
	Refresh(ctx context.Context) bool
	Delete(ctx context.Context, orderID string) bool
	Disabled(orderID string) bool
	Export(ctx context.Context, dir string) (string, error)
}

type State interface {
	Snapshot() syncstate.State
}

type Config struct {
	DownloadsDir string
}

type Console struct {
	cfg        Config
	controller Controller
	state      State
	builder    *orderlist.Builder
	driver     PromptDriver
	out        io.Writer
	logger     *logging.ZapLogger

	mux   sync.Mutex
	drawn drawnState
}

// drawnState identifies the last table put on the terminal.
type drawnState struct {
	valid         bool
	loading       bool
	ordersVersion uint64
}

func New(
	cfg Config,
	controller Controller,
	state State,
	builder *orderlist.Builder,
	driver PromptDriver,
	out io.Writer,
	logger *logging.ZapLogger,
) *Console {
	return &Console{
		cfg:        cfg,
		controller: controller,
		state:      state,
		builder:    builder,
		driver:     driver,
		out:        out,
		logger:     logger,
	}
}

// Run mounts the controller and serves operator actions until the operator
// quits, aborts a prompt or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.controller.Mount(ctx)
	for {
		if err := c.render(); err != nil {
			return fmt.Errorf("failed to render orders: %w", err)
		}
		choice, err := c.driver.Select(ctx, SelectConfig{
			Message: "Action",
			Options: actions,
		})
		if err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("action prompt failed: %w", err)
		}
		if choice < 0 || choice >= len(actions) {
			continue
		}
		switch actions[choice] {
		case actionRefresh:
			if !c.controller.Refresh(ctx) {
				c.println("A notification is pending, the list refreshes once it is acknowledged")
			}
		case actionDelete:
			if err := c.delete(ctx); err != nil {
				if errors.Is(err, ErrAborted) {
					return nil
				}
				return err
			}
		case actionExport:
			c.export(ctx)
		case actionQuit:
			return nil
		}
	}
}

// Handler wraps next so the table is redrawn whenever loading finishes or
// starts, or a new order collection arrives.
func (c *Console) Handler(next syncstate.Handler) syncstate.Handler {
	return func(ctx context.Context, state syncstate.State) {
		if next != nil {
			next(ctx, state)
		}
		if err := c.redraw(state); err != nil {
			c.logger.ErrorCtx(ctx, "failed to redraw orders", zap.Error(err))
		}
	}
}

func (c *Console) render() error {
	state := c.state.Snapshot()
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.draw(state)
}

func (c *Console) redraw(state syncstate.State) error {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.drawn.valid {
		if state.OrdersVersion < c.drawn.ordersVersion {
			return nil
		}
		if state.OrdersVersion == c.drawn.ordersVersion && state.Loading == c.drawn.loading {
			return nil
		}
	}
	return c.draw(state)
}

// draw must be called with mux held.
func (c *Console) draw(state syncstate.State) error {
	c.drawn = drawnState{
		valid:         true,
		loading:       state.Loading,
		ordersVersion: state.OrdersVersion,
	}
	table := c.builder.Build(state.Orders, c.controller.Disabled)
	return RenderTable(c.out, table, state.Loading)
}

func (c *Console) delete(ctx context.Context) error {
	table := c.builder.Build(c.state.Snapshot().Orders, c.controller.Disabled)
	options := make([]string, 0, len(table.Rows)+1)
	ids := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if row.Actions.Delete.Disabled {
			continue
		}
		options = append(options, fmt.Sprintf("%s  %s  %s", row.ID, row.ProductNames, row.FormattedAmount))
		ids = append(ids, row.Actions.Delete.OrderID)
	}
	if len(ids) == 0 {
		c.println("No orders to delete")
		return nil
	}
	options = append(options, optionBack)

	choice, err := c.driver.Select(ctx, SelectConfig{
		Message:  "Order to delete",
		Options:  options,
		PageSize: 15,
	})
	if err != nil {
		return fmt.Errorf("order prompt failed: %w", err)
	}
	if choice < 0 || choice >= len(ids) {
		return nil
	}
	if !c.controller.Delete(ctx, ids[choice]) {
		c.logger.DebugCtx(ctx, "delete ignored", zap.String("orderID", ids[choice]))
	}
	return nil
}

func (c *Console) export(ctx context.Context) {
	path, err := c.controller.Export(ctx, c.cfg.DownloadsDir)
	if err != nil {
		// already reported through the notifier
		return
	}
	c.println("Saved " + path)
}

func (c *Console) println(msg string) {
	if _, err := fmt.Fprintln(c.out, msg); err != nil {
		c.logger.ErrorCtx(context.Background(), "failed to write to terminal", zap.Error(err))
	}
}

// SyncWriter serializes writes from the console loop and notifications.
type SyncWriter struct {
	mux sync.Mutex
	w   io.Writer
}

func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{
		w: w,
	}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.w.Write(p) //nolint:wrapcheck // unnecessary
}
