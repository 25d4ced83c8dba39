package snapshot

import (
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/devwatch/devwatch/internal/dashboard"
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/store"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *repo.Registry) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(path, logger)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if _, err := st.Seed(testNow); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	now := func() time.Time { return testNow }
	reg := repo.NewRegistry(st, now)
	agg := dashboard.New(st, reg, now, logger, nil)
	reg.SetRecomputer(agg)

	return NewManager(st, reg, agg, now), reg
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(data)
}

func TestExportContainsAllKeys(t *testing.T) {
	mgr, _ := newTestManager(t)

	snap, err := mgr.Export()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(snap.Users) != 6 || len(snap.Devices) != 6 || len(snap.Activities) != 3 || len(snap.Repositories) != 5 || len(snap.Alerts) != 3 {
		t.Errorf("unexpected collection sizes in export: %+v", snap)
	}
	if snap.SecuritySettings == nil || snap.Dashboard == nil {
		t.Error("export must include the settings and dashboard documents")
	}
}

func TestImportOfExportRoundTrips(t *testing.T) {
	mgr, reg := newTestManager(t)

	snap, err := mgr.Export()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	before := asJSON(t, snap)

	// Mutate heavily, then restore.
	if _, err := reg.Users.Add(model.User{Name: "Intruder"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Repositories.Delete(1); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Import(snap); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	restored, err := mgr.Export()
	if err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	if got := asJSON(t, restored); got != before {
		t.Error("import(export()) must restore the exported state")
	}
}

func TestPartialImportLeavesOthersUntouched(t *testing.T) {
	mgr, reg := newTestManager(t)

	devicesBefore, err := reg.Devices.List()
	if err != nil {
		t.Fatal(err)
	}

	err = mgr.Import(&Snapshot{
		Users: []model.User{{ID: 1, Name: "Only User", Email: "only@example.com", Role: model.RoleAdmin, Status: "Active", CreatedAt: testNow}},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	users, err := reg.Users.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Name != "Only User" {
		t.Errorf("users not overwritten: %+v", users)
	}

	devicesAfter, err := reg.Devices.List()
	if err != nil {
		t.Fatal(err)
	}
	if asJSON(t, devicesAfter) != asJSON(t, devicesBefore) {
		t.Error("collections absent from the snapshot must be untouched")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	mgr, reg := newTestManager(t)

	if _, err := reg.Users.Add(model.User{Name: "Doomed"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Alerts.Delete(1); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	users, err := reg.Users.List()
	if err != nil {
		t.Fatal(err)
	}
	if asJSON(t, users) != asJSON(t, model.DefaultUsers(testNow)) {
		t.Error("users must equal the default dataset after reset")
	}
	alerts, err := reg.Alerts.List()
	if err != nil {
		t.Fatal(err)
	}
	if asJSON(t, alerts) != asJSON(t, model.DefaultAlerts(testNow)) {
		t.Error("alerts must equal the default dataset after reset")
	}
}
