// Package snapshot handles export, import and reset of the whole store
// as one composite document.
package snapshot

import (
	"time"

	"github.com/devwatch/devwatch/internal/dashboard"
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/store"
)

// Snapshot is the composite export format. On import, a nil field
// leaves the corresponding collection untouched, so partial snapshots
// are valid.
type Snapshot struct {
	Users            []model.User            `json:"users,omitempty"`
	Devices          []model.Device          `json:"devices,omitempty"`
	Activities       []model.Activity        `json:"activities,omitempty"`
	Repositories     []model.Repository      `json:"repositories,omitempty"`
	Alerts           []model.Alert           `json:"alerts,omitempty"`
	SecuritySettings *model.SecuritySettings `json:"securitySettings,omitempty"`
	Dashboard        *model.Dashboard        `json:"dashboard,omitempty"`
}

// Manager performs snapshot operations against one store.
type Manager struct {
	store *store.Store
	reg   *repo.Registry
	dash  *dashboard.Aggregator
	now   func() time.Time
}

// NewManager creates a snapshot manager.
func NewManager(st *store.Store, reg *repo.Registry, dash *dashboard.Aggregator, now func() time.Time) *Manager {
	return &Manager{store: st, reg: reg, dash: dash, now: now}
}

// Export returns a complete snapshot of all collections plus the
// derived dashboard.
func (m *Manager) Export() (*Snapshot, error) {
	users, err := m.reg.Users.List()
	if err != nil {
		return nil, err
	}
	devices, err := m.reg.Devices.List()
	if err != nil {
		return nil, err
	}
	activities, err := m.reg.Activities.List()
	if err != nil {
		return nil, err
	}
	repos, err := m.reg.Repositories.List()
	if err != nil {
		return nil, err
	}
	alerts, err := m.reg.Alerts.List()
	if err != nil {
		return nil, err
	}
	settings, err := m.reg.Settings.Get()
	if err != nil {
		return nil, err
	}
	dash, err := m.dash.Current()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Users:            users,
		Devices:          devices,
		Activities:       activities,
		Repositories:     repos,
		Alerts:           alerts,
		SecuritySettings: &settings,
		Dashboard:        &dash,
	}, nil
}

// Import overwrites each collection present in the snapshot. Absent
// keys are left untouched.
func (m *Manager) Import(snap *Snapshot) error {
	if snap.Users != nil {
		if err := m.store.Set(store.KeyUsers, snap.Users); err != nil {
			return err
		}
	}
	if snap.Devices != nil {
		if err := m.store.Set(store.KeyDevices, snap.Devices); err != nil {
			return err
		}
	}
	if snap.Activities != nil {
		if err := m.store.Set(store.KeyActivities, snap.Activities); err != nil {
			return err
		}
	}
	if snap.Repositories != nil {
		if err := m.store.Set(store.KeyRepositories, snap.Repositories); err != nil {
			return err
		}
	}
	if snap.Alerts != nil {
		if err := m.store.Set(store.KeyAlerts, snap.Alerts); err != nil {
			return err
		}
	}
	if snap.SecuritySettings != nil {
		if err := m.store.Set(store.KeySecuritySettings, snap.SecuritySettings); err != nil {
			return err
		}
	}
	if snap.Dashboard != nil {
		if err := m.store.Set(store.KeyDashboard, snap.Dashboard); err != nil {
			return err
		}
	}
	return nil
}

// Reset wipes every collection and re-seeds the defaults.
func (m *Manager) Reset() error {
	return m.store.Reset(m.now())
}
