package dashboard

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/store"
)

var testNow = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func repoSet(total, encrypted, compromised int) []model.Repository {
	repos := make([]model.Repository, total)
	for i := range repos {
		repos[i] = model.Repository{ID: i + 1, Name: "r", SecurityStatus: model.RepoSecure}
		if i < encrypted {
			repos[i].IsEncrypted = true
		}
	}
	for i := 0; i < compromised && i < total; i++ {
		repos[total-1-i].SecurityStatus = model.RepoCompromised
	}
	return repos
}

func deviceSet(pending int) []model.Device {
	devices := make([]model.Device, pending)
	for i := range devices {
		devices[i] = model.Device{ID: i + 1, Status: model.DevicePending}
	}
	return devices
}

func alertSet(critical int) []model.Alert {
	alerts := make([]model.Alert, critical)
	for i := range alerts {
		alerts[i] = model.Alert{ID: i + 1, Severity: model.SeverityCritical, Status: model.AlertUnread}
	}
	return alerts
}

func TestSecurityScoreWorkedExample(t *testing.T) {
	// 1 compromised of 4 repos (2 encrypted), 1 pending device,
	// 1 critical alert: 100 - 15 - 5 - 10 - 20*(1-0.5) = 60.
	score := SecurityScore(repoSet(4, 2, 1), deviceSet(1), alertSet(1))
	assert.Equal(t, 60, score)
}

func TestSecurityScoreBounds(t *testing.T) {
	cases := []struct {
		name                          string
		total, encrypted, compromised int
		pending, critical             int
	}{
		{"empty", 0, 0, 0, 0, 0},
		{"all encrypted secure", 5, 5, 0, 0, 0},
		{"everything on fire", 10, 0, 10, 20, 30},
		{"partial encryption", 3, 1, 0, 0, 0},
		{"single compromised", 1, 0, 1, 0, 0},
		{"pending only", 0, 0, 0, 7, 0},
		{"critical only", 0, 0, 0, 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := SecurityScore(repoSet(tc.total, tc.encrypted, tc.compromised), deviceSet(tc.pending), alertSet(tc.critical))
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		})
	}
}

func TestSecurityScorePerfect(t *testing.T) {
	score := SecurityScore(repoSet(4, 4, 0), nil, nil)
	assert.Equal(t, 100, score)
}

func TestSecurityScoreEmptyStoreBaseline(t *testing.T) {
	// With no repositories the encryption term deducts its full 20.
	score := SecurityScore(nil, nil, nil)
	assert.Equal(t, 80, score)
}

func TestActivityTrendShape(t *testing.T) {
	trend := ActivityTrend(nil, testNow)
	require.Len(t, trend, 7)
	assert.Equal(t, "6 days ago", trend[0].Date)
	assert.Equal(t, "Yesterday", trend[5].Date)
	assert.Equal(t, "Today", trend[6].Date)
	for _, p := range trend {
		assert.Zero(t, p.Count)
	}
}

func TestActivityTrendBuckets(t *testing.T) {
	activities := []model.Activity{
		{ID: 1, Timestamp: testNow},                                                 // today
		{ID: 2, Timestamp: testNow.Add(-2 * time.Hour)},                             // today
		{ID: 3, Timestamp: testNow.AddDate(0, 0, -1)},                               // yesterday
		{ID: 4, Timestamp: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},             // today, window start
		{ID: 5, Timestamp: time.Date(2026, 2, 26, 23, 59, 59, 999000000, time.UTC)}, // 6 days ago, window end
		{ID: 6, Timestamp: testNow.AddDate(0, 0, -7)},                               // outside the window
		{ID: 7, Timestamp: testNow.AddDate(0, 0, 1)},                                // the future is not counted
	}

	trend := ActivityTrend(activities, testNow)
	require.Len(t, trend, 7)

	assert.Equal(t, 1, trend[0].Count, "6 days ago")
	assert.Equal(t, 1, trend[5].Count, "yesterday")
	assert.Equal(t, 3, trend[6].Count, "today")

	sum := 0
	for _, p := range trend {
		sum += p.Count
	}
	assert.Equal(t, 5, sum, "sum must equal activities inside the 7-day window")
}

func TestBuildRecentSlices(t *testing.T) {
	var activities []model.Activity
	for i := 7; i >= 1; i-- {
		activities = append(activities, model.Activity{ID: i, Timestamp: testNow})
	}
	var alerts []model.Alert
	for i := 4; i >= 1; i-- {
		alerts = append(alerts, model.Alert{ID: i, Severity: model.SeverityInfo, Status: model.AlertRead, CreatedAt: testNow})
	}

	d := Build(nil, nil, activities, nil, alerts, testNow)
	require.Len(t, d.RecentActivities, 5)
	require.Len(t, d.RecentAlerts, 3)
	// Prepend-on-insert ordering means the head of the collection is
	// the most recent element.
	assert.Equal(t, 7, d.RecentActivities[0].ID)
	assert.Equal(t, 4, d.RecentAlerts[0].ID)
	assert.Equal(t, 7, d.Overview.TotalActivities)
}

func TestBuildSecurityStats(t *testing.T) {
	devices := []model.Device{
		{ID: 1, Status: model.DeviceAuthorized},
		{ID: 2, Status: model.DeviceAuthorized},
		{ID: 3, Status: model.DevicePending},
		{ID: 4, Status: model.DeviceRejected},
	}
	activities := []model.Activity{
		{ID: 1, IsSuspicious: true, Timestamp: testNow},
		{ID: 2, Timestamp: testNow},
	}
	alerts := []model.Alert{
		{ID: 1, Severity: model.SeverityCritical, Status: model.AlertUnread},
		{ID: 2, Severity: model.SeverityCritical, Status: model.AlertRead},
		{ID: 3, Severity: model.SeverityInfo, Status: model.AlertUnread},
	}
	repos := []model.Repository{
		{ID: 1, IsEncrypted: true},
		{ID: 2},
	}

	d := Build(nil, devices, activities, repos, alerts, testNow)
	assert.Equal(t, 2, d.SecurityStats.AuthorizedDevices)
	assert.Equal(t, 4, d.SecurityStats.TotalDevices)
	assert.Equal(t, 1, d.SecurityStats.PendingDevices)
	assert.Equal(t, 1, d.SecurityStats.SuspiciousActivities)
	assert.Equal(t, 1, d.SecurityStats.CriticalAlerts, "only unread criticals count")
	assert.Equal(t, 1, d.SecurityStats.EncryptedRepos)
}

func TestRecomputeReplacesStoredDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.Seed(testNow)
	require.NoError(t, err)

	reg := repo.NewRegistry(st, func() time.Time { return testNow })
	agg := New(st, reg, func() time.Time { return testNow }, logger, nil)
	reg.SetRecomputer(agg)

	// The seeded document carries the canned demo numbers.
	before, err := agg.Current()
	require.NoError(t, err)
	assert.Equal(t, 156, before.Overview.TotalActivities)

	_, err = reg.Users.Add(model.User{Name: "Trigger"})
	require.NoError(t, err)

	after, err := agg.Current()
	require.NoError(t, err)
	assert.Equal(t, 7, after.Overview.TotalUsers, "six seeded users plus one")
	assert.Equal(t, 3, after.Overview.TotalActivities, "derived from the real collection now")
	require.Len(t, after.ActivityTrend, 7)
}
