package synccontroller

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/notify"
	"go-orderdesk/internal/orderdesk/syncstate"
	"go-orderdesk/pkg/logging"
	"go-orderdesk/pkg/threadsafe"
)

// RemoteStore issues remote operations. Outcomes are written into the shared
// state, never returned.
type RemoteStore interface {
	FetchAllOrders(ctx context.Context)
	DeleteOrder(ctx context.Context, orderID string)
}

// SharedState is the part of the state container the controller may touch.
type SharedState interface {
	Snapshot() syncstate.State
	ClearError()
	ClearDeleted()
}

type Exporter interface {
	ExportFile(dir string, orders []orderprotocol.Order) (string, error)
}

type Controller struct {
	remote   RemoteStore
	state    SharedState
	notifier notify.Notifier
	exporter Exporter
	logger   *logging.ZapLogger

	mux           sync.Mutex
	phase         Phase
	lastSeen      syncstate.State
	ordersVersion uint64
	deleting      *threadsafe.HashSet[string]
	inflight      sync.WaitGroup
}

func New(
	remote RemoteStore,
	state SharedState,
	notifier notify.Notifier,
	exporter Exporter,
	logger *logging.ZapLogger,
) *Controller {
	return &Controller{
		remote:   remote,
		state:    state,
		notifier: notifier,
		exporter: exporter,
		logger:   logger,
		phase:    Idle,
		deleting: threadsafe.NewHashSet[string](),
	}
}

// Mount runs the initial reconciliation pass.
func (c *Controller) Mount(ctx context.Context) {
	state := c.state.Snapshot()
	c.mux.Lock()
	c.lastSeen = state
	c.ordersVersion = state.OrdersVersion
	transition := c.transition(state)
	c.mux.Unlock()
	c.apply(ctx, transition.Effect)
}

// HandleStateChange is the syncstate.Handler driving the controller.
func (c *Controller) HandleStateChange(ctx context.Context, state syncstate.State) {
	c.mux.Lock()
	if state.OrdersVersion != c.ordersVersion {
		c.ordersVersion = state.OrdersVersion
		c.deleting.Clear()
	}
	prev := c.lastSeen
	c.lastSeen = state
	if !relevant(prev, state) {
		c.mux.Unlock()
		return
	}
	transition := c.transition(state)
	c.mux.Unlock()
	c.apply(ctx, transition.Effect)
}

func (c *Controller) Phase() Phase {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.phase
}

// Refresh requests a fresh order collection. It is ignored while a
// notification is pending or its flag has not been cleared yet, since
// clearing the flag fetches anyway.
func (c *Controller) Refresh(ctx context.Context) bool {
	c.mux.Lock()
	flagged := c.lastSeen.Error != "" || c.lastSeen.Deleted
	idle := c.phase == Idle
	c.mux.Unlock()
	if !idle || flagged {
		return false
	}
	c.apply(ctx, Effect{Kind: EffectFetchAll})
	return true
}

// Delete triggers a remote delete for orderID unless one is already
// outstanding for it, in which case it returns false.
func (c *Controller) Delete(ctx context.Context, orderID string) bool {
	if !c.deleting.Add(orderID) {
		c.logger.DebugCtx(ctx, "delete already triggered", zap.String("orderID", orderID))
		return false
	}
	c.logger.DebugCtx(ctx, "deleting order", zap.String("orderID", orderID))
	c.async(func() {
		c.remote.DeleteOrder(ctx, orderID)
	})
	return true
}

// Disabled reports whether the delete affordance of orderID is disabled.
func (c *Controller) Disabled(orderID string) bool {
	return c.deleting.Contains(orderID)
}

// Export saves the current order list into dir. Failures are reported to the
// operator and leave the shared state untouched.
func (c *Controller) Export(ctx context.Context, dir string) (string, error) {
	orders := c.state.Snapshot().Orders
	path, err := c.exporter.ExportFile(dir, orders)
	if err != nil {
		c.logger.ErrorCtx(ctx, "export failed", zap.Error(err))
		c.notifier.Notify(ctx, notify.Notification{
			ID:      uuid.NewString(),
			Kind:    notify.Error,
			Message: err.Error(),
		}, func() {})
		return "", err
	}
	c.logger.InfoCtx(ctx, "order list exported", zap.String("path", path), zap.Int("orders", len(orders)))
	return path, nil
}

// Wait blocks until all remote operations started by the controller return.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) transition(state syncstate.State) Transition {
	transition := Reconcile(c.phase, state)
	c.phase = transition.Next
	return transition
}

func (c *Controller) apply(ctx context.Context, effect Effect) {
	switch effect.Kind {
	case EffectNotifyError:
		c.notify(ctx, notify.Error, effect.Message, ErrorPending, c.state.ClearError)
	case EffectNotifyDeleted:
		c.notify(ctx, notify.Success, effect.Message, DeletedPending, c.state.ClearDeleted)
	case EffectFetchAll:
		c.logger.DebugCtx(ctx, "fetching orders")
		c.async(func() {
			c.remote.FetchAllOrders(ctx)
		})
	case EffectNone:
	}
}

func (c *Controller) notify(ctx context.Context, kind notify.Kind, message string, pending Phase, reset func()) {
	notification := notify.Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
	}
	once := &sync.Once{}
	c.notifier.Notify(ctx, notification, func() {
		once.Do(func() {
			c.acknowledge(ctx, notification, pending, reset)
		})
	})
}

// acknowledge returns to Idle before clearing the flag so the state change
// caused by the clear reconciles from Idle.
func (c *Controller) acknowledge(ctx context.Context, notification notify.Notification, pending Phase, reset func()) {
	c.mux.Lock()
	if c.phase == pending {
		c.phase = Idle
	}
	c.mux.Unlock()
	c.logger.DebugCtx(ctx, "notification acknowledged", zap.String("id", notification.ID))
	reset()
}

func (c *Controller) async(f func()) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		f()
	}()
}
