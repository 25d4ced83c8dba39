package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Alerts manages the alert collection, kept most-recent-first like
// activities.
type Alerts struct {
	c *core
}

// List returns all alerts, newest first, falling back to the default
// dataset when the collection is missing or corrupt.
func (r *Alerts) List() ([]model.Alert, error) {
	var alerts []model.Alert
	ok, err := r.c.store.Get(store.KeyAlerts, &alerts)
	if err != nil {
		return nil, err
	}
	if !ok {
		alerts = model.DefaultAlerts(r.c.now())
	}
	return alerts, nil
}

// Add prepends a new alert. Alerts start UNREAD. The alert hook fires
// after the alert is durably stored.
func (r *Alerts) Add(a model.Alert) (model.Alert, error) {
	alerts, err := r.List()
	if err != nil {
		return model.Alert{}, err
	}

	a.ID = nextID(alerts, func(x model.Alert) int { return x.ID })
	a.CreatedAt = r.c.now()
	if a.Status == "" {
		a.Status = model.AlertUnread
	}

	alerts = append([]model.Alert{a}, alerts...)
	if err := r.c.store.Set(store.KeyAlerts, alerts); err != nil {
		return model.Alert{}, err
	}
	if r.c.onAlert != nil {
		r.c.onAlert(a)
	}
	if err := r.c.mutated("alerts", "add"); err != nil {
		return model.Alert{}, err
	}
	return a, nil
}

// Update merges the patch onto the alert with the given id. Marking an
// alert READ comes through here.
func (r *Alerts) Update(id int, p model.AlertPatch) (model.Alert, error) {
	alerts, err := r.List()
	if err != nil {
		return model.Alert{}, err
	}

	for i := range alerts {
		if alerts[i].ID != id {
			continue
		}
		if p.Severity != nil {
			alerts[i].Severity = *p.Severity
		}
		if p.Message != nil {
			alerts[i].Message = *p.Message
		}
		if p.Activity != nil {
			alerts[i].Activity = *p.Activity
		}
		if p.Status != nil {
			alerts[i].Status = *p.Status
		}
		if err := r.c.store.Set(store.KeyAlerts, alerts); err != nil {
			return model.Alert{}, err
		}
		if err := r.c.mutated("alerts", "update"); err != nil {
			return model.Alert{}, err
		}
		return alerts[i], nil
	}
	return model.Alert{}, ErrNotFound
}

// Delete removes the alert with the given id. Idempotent.
func (r *Alerts) Delete(id int) error {
	alerts, err := r.List()
	if err != nil {
		return err
	}

	filtered := alerts[:0:0]
	for _, a := range alerts {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	if err := r.c.store.Set(store.KeyAlerts, filtered); err != nil {
		return err
	}
	return r.c.mutated("alerts", "delete")
}
