package repo

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// countingRecomputer records recompute calls.
type countingRecomputer struct {
	calls int
}

func (c *countingRecomputer) Recompute() error {
	c.calls++
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *countingRecomputer) {
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

	reg := NewRegistry(st, func() time.Time { return testNow })
	rc := &countingRecomputer{}
	reg.SetRecomputer(rc)
	return reg, rc
}

func TestAddAssignsNextID(t *testing.T) {
	reg, _ := newTestRegistry(t)

	u, err := reg.Users.Add(model.User{Name: "New User", Email: "new@example.com", Role: model.RoleViewer})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if u.ID != 7 {
		t.Errorf("expected id 7 after six seeded users, got %d", u.ID)
	}
	if u.Status != "Active" {
		t.Errorf("expected default status Active, got %q", u.Status)
	}
	if !u.CreatedAt.Equal(testNow) {
		t.Errorf("expected createdAt stamped with the clock, got %v", u.CreatedAt)
	}
}

func TestIDMonotonicity(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var assigned []int
	for i := 0; i < 3; i++ {
		d, err := reg.Devices.Add(model.Device{DeviceName: "dev"})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		assigned = append(assigned, d.ID)
	}

	// Delete a non-maximal id; the next assignment must still exceed
	// every id handed out so far.
	if err := reg.Devices.Delete(assigned[0]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	d, err := reg.Devices.Add(model.Device{DeviceName: "dev"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	for _, id := range assigned {
		if d.ID <= id {
			t.Errorf("new id %d not greater than previously assigned %d", d.ID, id)
		}
	}
}

func TestDeviceDefaults(t *testing.T) {
	reg, _ := newTestRegistry(t)

	d, err := reg.Devices.Add(model.Device{DeviceName: "X", DeviceID: "device-100"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if d.Status != model.DevicePending {
		t.Errorf("expected PENDING default, got %q", d.Status)
	}
	if !d.LastActive.Equal(testNow) || !d.CreatedAt.Equal(testNow) {
		t.Error("expected timestamps stamped with the clock")
	}
}

func TestActivityPrepend(t *testing.T) {
	reg, _ := newTestRegistry(t)

	a, err := reg.Activities.Add(model.Activity{ActivityType: model.ActivityGitPush, Repository: "project-alpha"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	activities, err := reg.Activities.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if activities[0].ID != a.ID {
		t.Errorf("expected new activity at head, got id %d", activities[0].ID)
	}
}

func TestAlertPrependAndDefaults(t *testing.T) {
	reg, _ := newTestRegistry(t)

	a, err := reg.Alerts.Add(model.Alert{Severity: model.SeverityWarning, Message: "test"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if a.Status != model.AlertUnread {
		t.Errorf("expected UNREAD default, got %q", a.Status)
	}

	alerts, err := reg.Alerts.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if alerts[0].ID != a.ID {
		t.Errorf("expected new alert at head, got id %d", alerts[0].ID)
	}
}

func TestRepositoryDefaults(t *testing.T) {
	reg, _ := newTestRegistry(t)

	r, err := reg.Repositories.Add(model.Repository{Name: "new-repo", Path: "/repos/new-repo"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if r.IsEncrypted {
		t.Error("expected unencrypted default")
	}
	if r.SecurityStatus != model.RepoSecure {
		t.Errorf("expected SECURE default, got %q", r.SecurityStatus)
	}
}

func TestUpdateShallowMerge(t *testing.T) {
	reg, _ := newTestRegistry(t)

	name := "Renamed User"
	u, err := reg.Users.Update(1, model.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if u.Name != "Renamed User" {
		t.Errorf("patched field not applied: %q", u.Name)
	}
	if u.Email != "admin@devmonitor.com" {
		t.Errorf("untouched field must persist, got %q", u.Email)
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("untouched field must persist, got %q", u.Role)
	}
}

func TestUpdateNotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	status := model.DeviceAuthorized
	_, err := reg.Devices.Update(999, model.DevicePatch{Status: &status})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	reg, _ := newTestRegistry(t)

	d, err := reg.Devices.Add(model.Device{DeviceName: "X"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if d.ID != 7 {
		t.Fatalf("expected id 7, got %d", d.ID)
	}

	if err := reg.Devices.Delete(d.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	devices, err := reg.Devices.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, dev := range devices {
		if dev.ID == d.ID {
			t.Errorf("id %d still present after delete", d.ID)
		}
	}

	// Second delete of the same id is already satisfied.
	if err := reg.Devices.Delete(d.ID); err != nil {
		t.Errorf("second delete must succeed: %v", err)
	}
}

func TestEveryMutationTriggersRecompute(t *testing.T) {
	reg, rc := newTestRegistry(t)

	if _, err := reg.Users.Add(model.User{Name: "A"}); err != nil {
		t.Fatal(err)
	}
	status := model.DeviceAuthorized
	if _, err := reg.Devices.Update(1, model.DevicePatch{Status: &status}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Alerts.Delete(3); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Activities.Add(model.Activity{ActivityType: model.ActivityGitPull}); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Settings.Update(model.DefaultSecuritySettings()); err != nil {
		t.Fatal(err)
	}

	if rc.calls != 5 {
		t.Errorf("expected 5 recomputes, got %d", rc.calls)
	}
}

func TestMutationHookReceivesOps(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var got []string
	reg.SetMutationHook(func(collection, op string) {
		got = append(got, collection+":"+op)
	})

	if _, err := reg.Repositories.Add(model.Repository{Name: "r"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Repositories.Delete(6); err != nil {
		t.Fatal(err)
	}

	want := []string{"repositories:add", "repositories:delete"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAlertHookFires(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var seen []model.Alert
	reg.SetAlertHook(func(a model.Alert) { seen = append(seen, a) })

	if _, err := reg.Alerts.Add(model.Alert{Severity: model.SeverityCritical, Message: "boom"}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0].Message != "boom" {
		t.Errorf("alert hook not invoked: %+v", seen)
	}
}

func TestListFallsBackToDefaultsUnseeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(path, logger)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	reg := NewRegistry(st, func() time.Time { return testNow })

	users, err := reg.Users.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != len(model.DefaultUsers(testNow)) {
		t.Errorf("expected default dataset fallback, got %d users", len(users))
	}
}

func TestRepositoryStats(t *testing.T) {
	reg, _ := newTestRegistry(t)

	compromised := model.RepoCompromised
	if _, err := reg.Repositories.Update(5, model.RepositoryPatch{SecurityStatus: &compromised}); err != nil {
		t.Fatal(err)
	}

	stats, err := reg.Repositories.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRepositories != 5 {
		t.Errorf("expected 5 total, got %d", stats.TotalRepositories)
	}
	if stats.EncryptedRepositories != 4 {
		t.Errorf("expected 4 encrypted, got %d", stats.EncryptedRepositories)
	}
	if stats.CompromisedRepositories != 1 {
		t.Errorf("expected 1 compromised, got %d", stats.CompromisedRepositories)
	}
}

func TestSettingsReplaceWholesale(t *testing.T) {
	reg, _ := newTestRegistry(t)

	s, err := reg.Settings.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	s.MaxFailedAttempts = 5
	s.AutoBlockUnauthorized = true

	if _, err := reg.Settings.Update(s); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := reg.Settings.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.MaxFailedAttempts != 5 || !got.AutoBlockUnauthorized {
		t.Errorf("settings not replaced: %+v", got)
	}
}
