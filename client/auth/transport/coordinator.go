package transport

import (
	"context"
	"sync"
)

// RefreshFunc obtains a new access token.
type RefreshFunc func(ctx context.Context) (string, error)

type outcome struct {
	token string
	err   error
}

// Coordinator lets one refresh run at a time. Callers arriving while a refresh
// is in flight get a result slot and receive that refresh's outcome instead of
// starting their own.
type Coordinator struct {
	mux        sync.Mutex
	refreshing bool
	waiters    []chan outcome
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Refresh runs fn unless a refresh is already in flight, in which case it waits
// for that one. Every caller of one refresh window gets the same token or the
// same error. Waiters are settled in arrival order.
func (c *Coordinator) Refresh(ctx context.Context, fn RefreshFunc) (token string, leader bool, err error) {
	c.mux.Lock()
	if c.refreshing {
		slot := make(chan outcome, 1)
		c.waiters = append(c.waiters, slot)
		c.mux.Unlock()
		result := <-slot
		return result.token, false, result.err
	}
	c.refreshing = true
	c.mux.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.settle("", errPanicked)
			panic(r)
		}
	}()
	token, err = fn(ctx)
	c.settle(token, err)
	return token, true, err
}

func (c *Coordinator) settle(token string, err error) {
	c.mux.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mux.Unlock()
	for _, slot := range waiters {
		slot <- outcome{token: token, err: err}
	}
}

// Refreshing reports whether a refresh is in flight.
func (c *Coordinator) Refreshing() bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.refreshing
}

// Pending returns the number of callers waiting on the current refresh.
func (c *Coordinator) Pending() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.waiters)
}
