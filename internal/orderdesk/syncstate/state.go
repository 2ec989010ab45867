// Package syncstate holds the shared order-list state that remote operations
// write into and the sync controller reacts to.
package syncstate

import (
	"context"
	"slices"
	"sync"

	"go-orderdesk/internal/common/orderprotocol"
)

// State is the order-list state. Error carries the message of the last failed
// remote operation and is "" when there is none. OrdersVersion increases every
// time Orders is replaced.
type State struct {
	Orders        []orderprotocol.Order
	Loading       bool
	Error         string
	Deleted       bool
	OrdersVersion uint64
}

func (s State) clone() State {
	s.Orders = slices.Clone(s.Orders)
	return s
}

// Handler receives state changes one at a time, in mutation order.
type Handler func(ctx context.Context, state State)

// Container owns State and serializes its change notifications. Handlers may
// mutate the container while being called.
type Container struct {
	mux     sync.Mutex
	state   State
	pending []State
	signal  chan struct{}
}

func New() *Container {
	return &Container{
		state: State{
			Loading: true,
		},
		signal: make(chan struct{}, 1),
	}
}

func (c *Container) Snapshot() State {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.state.clone()
}

func (c *Container) StartLoading() {
	c.mutate(func(s *State) {
		s.Loading = true
	})
}

func (c *Container) SetOrders(orders []orderprotocol.Order) {
	c.mutate(func(s *State) {
		s.Orders = slices.Clone(orders)
		s.Loading = false
		s.OrdersVersion++
	})
}

func (c *Container) SetError(message string) {
	c.mutate(func(s *State) {
		s.Error = message
		s.Loading = false
	})
}

func (c *Container) MarkDeleted() {
	c.mutate(func(s *State) {
		s.Deleted = true
	})
}

func (c *Container) ClearError() {
	c.mutate(func(s *State) {
		s.Error = ""
	})
}

func (c *Container) ClearDeleted() {
	c.mutate(func(s *State) {
		s.Deleted = false
	})
}

// Run delivers state changes to handler until ctx is done.
func (c *Container) Run(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck // unnecessary
		case <-c.signal:
			for _, state := range c.drain() {
				handler(ctx, state)
			}
		}
	}
}

func (c *Container) mutate(f func(s *State)) {
	c.mux.Lock()
	f(&c.state)
	c.pending = append(c.pending, c.state.clone())
	c.mux.Unlock()

	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *Container) drain() []State {
	c.mux.Lock()
	defer c.mux.Unlock()
	res := c.pending
	c.pending = nil
	return res
}
