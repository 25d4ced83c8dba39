// Package repo provides typed CRUD over the persisted collections. Each
// repository assigns ids as max(existing)+1, fills defaults for omitted
// fields and triggers a dashboard recompute after every mutation.
package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// ErrNotFound is returned by Update when no entity has the given id.
// Delete never returns it; deleting a missing id is already satisfied.
var ErrNotFound = errors.New("entity not found")

// Recomputer rebuilds the derived dashboard document.
type Recomputer interface {
	Recompute() error
}

// Registry bundles the per-entity repositories over one store.
type Registry struct {
	Users        *Users
	Devices      *Devices
	Activities   *Activities
	Repositories *Repositories
	Alerts       *Alerts
	Settings     *Settings

	c *core
}

// core is the state shared by all repositories in a registry.
type core struct {
	store     *store.Store
	now       func() time.Time
	recompute func() error
	onMutate  func(collection, op string)
	onAlert   func(model.Alert)
}

// NewRegistry creates the repositories. The clock is injected so tests
// can pin time; pass time.Now in production.
func NewRegistry(st *store.Store, now func() time.Time) *Registry {
	c := &core{store: st, now: now}
	return &Registry{
		Users:        &Users{c},
		Devices:      &Devices{c},
		Activities:   &Activities{c},
		Repositories: &Repositories{c},
		Alerts:       &Alerts{c},
		Settings:     &Settings{c},
		c:            c,
	}
}

// SetRecomputer wires the dashboard aggregator. Set once during
// startup, before the registry handles requests.
func (r *Registry) SetRecomputer(rc Recomputer) {
	r.c.recompute = rc.Recompute
}

// SetMutationHook registers a callback invoked after every successful
// mutation, before the recompute. Used for metrics.
func (r *Registry) SetMutationHook(fn func(collection, op string)) {
	r.c.onMutate = fn
}

// SetAlertHook registers a callback invoked after an alert is added.
func (r *Registry) SetAlertHook(fn func(model.Alert)) {
	r.c.onAlert = fn
}

// mutated runs the mutation hook and the dashboard recompute. The
// derived document is rebuilt on every mutation of every entity; the
// cost is one extra document write per mutation.
func (c *core) mutated(collection, op string) error {
	if c.onMutate != nil {
		c.onMutate(collection, op)
	}
	if c.recompute != nil {
		if err := c.recompute(); err != nil {
			return fmt.Errorf("failed to recompute dashboard: %w", err)
		}
	}
	return nil
}

// nextID returns max(existing ids, 0)+1. Ids grow monotonically for the
// life of a collection; deleting the current maximum makes its id
// eligible for reuse, matching the stored-maximum assignment rule.
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if v := id(item); v > max {
			max = v
		}
	}
	return max + 1
}
