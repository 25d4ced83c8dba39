// Package dashboard derives the summary document from the current state
// of all collections. The document is rebuilt wholesale on every
// mutation; it is never patched in place.
package dashboard

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/devwatch/devwatch/internal/metrics"
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/store"
)

// Clock supplies the current time. Injected so tests can pin "today"
// for the trend windows.
type Clock func() time.Time

// Aggregator recomputes the dashboard document.
type Aggregator struct {
	store   *store.Store
	reg     *repo.Registry
	now     Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates an aggregator. metrics may be nil.
func New(st *store.Store, reg *repo.Registry, now Clock, logger *slog.Logger, m *metrics.Metrics) *Aggregator {
	return &Aggregator{store: st, reg: reg, now: now, logger: logger, metrics: m}
}

// Current returns the stored dashboard document, falling back to the
// default when missing or corrupt. Reads never trigger a recompute.
func (a *Aggregator) Current() (model.Dashboard, error) {
	var d model.Dashboard
	ok, err := a.store.Get(store.KeyDashboard, &d)
	if err != nil {
		return model.Dashboard{}, err
	}
	if !ok {
		d = model.DefaultDashboard(a.now())
	}
	return d, nil
}

// Recompute reads every collection and replaces the dashboard document.
func (a *Aggregator) Recompute() error {
	users, err := a.reg.Users.List()
	if err != nil {
		return err
	}
	devices, err := a.reg.Devices.List()
	if err != nil {
		return err
	}
	activities, err := a.reg.Activities.List()
	if err != nil {
		return err
	}
	repos, err := a.reg.Repositories.List()
	if err != nil {
		return err
	}
	alerts, err := a.reg.Alerts.List()
	if err != nil {
		return err
	}

	d := Build(users, devices, activities, repos, alerts, a.now())
	if err := a.store.Set(store.KeyDashboard, d); err != nil {
		return fmt.Errorf("failed to store dashboard: %w", err)
	}

	if a.metrics != nil {
		a.metrics.RecomputesTotal.Inc()
		a.metrics.SecurityScore.Set(float64(d.Overview.SecurityScore))
		a.metrics.CollectionSize.WithLabelValues("users").Set(float64(len(users)))
		a.metrics.CollectionSize.WithLabelValues("devices").Set(float64(len(devices)))
		a.metrics.CollectionSize.WithLabelValues("activities").Set(float64(len(activities)))
		a.metrics.CollectionSize.WithLabelValues("repositories").Set(float64(len(repos)))
		a.metrics.CollectionSize.WithLabelValues("alerts").Set(float64(len(alerts)))
	}

	a.logger.Debug("dashboard recomputed", "security_score", d.Overview.SecurityScore)
	return nil
}

// Build computes the dashboard document from the given collections. It
// is a pure function of its inputs.
func Build(users []model.User, devices []model.Device, activities []model.Activity, repos []model.Repository, alerts []model.Alert, now time.Time) model.Dashboard {
	stats := model.SecurityStats{TotalDevices: len(devices)}
	for _, d := range devices {
		switch d.Status {
		case model.DeviceAuthorized:
			stats.AuthorizedDevices++
		case model.DevicePending:
			stats.PendingDevices++
		}
	}
	for _, act := range activities {
		if act.IsSuspicious {
			stats.SuspiciousActivities++
		}
	}
	for _, al := range alerts {
		if al.Severity == model.SeverityCritical && al.Status == model.AlertUnread {
			stats.CriticalAlerts++
		}
	}
	for _, r := range repos {
		if r.IsEncrypted {
			stats.EncryptedRepos++
		}
	}

	return model.Dashboard{
		Overview: model.Overview{
			TotalUsers:      len(users),
			TotalDevices:    len(devices),
			TotalActivities: len(activities),
			SecurityScore:   SecurityScore(repos, devices, alerts),
		},
		SecurityStats:    stats,
		RecentActivities: head(activities, 5),
		RecentAlerts:     head(alerts, 3),
		ActivityTrend:    ActivityTrend(activities, now),
	}
}

// SecurityScore computes the bounded [0,100] risk score. Compromised
// repositories and critical alerts weigh heaviest; the encryption term
// scales with coverage so partial adoption is rewarded proportionally.
func SecurityScore(repos []model.Repository, devices []model.Device, alerts []model.Alert) int {
	var compromised, encrypted int
	for _, r := range repos {
		if r.SecurityStatus == model.RepoCompromised {
			compromised++
		}
		if r.IsEncrypted {
			encrypted++
		}
	}
	totalRepos := len(repos)
	if totalRepos == 0 {
		totalRepos = 1
	}
	encryptionRate := float64(encrypted) / float64(totalRepos)

	var pending, critical int
	for _, d := range devices {
		if d.Status == model.DevicePending {
			pending++
		}
	}
	for _, a := range alerts {
		if a.Severity == model.SeverityCritical {
			critical++
		}
	}

	score := 100.0
	score -= float64(compromised) * 15
	score -= float64(pending) * 5
	score -= float64(critical) * 10
	score -= (1 - encryptionRate) * 20

	return clamp(int(math.Round(score)), 0, 100)
}

var trendLabels = [7]string{"6 days ago", "5 days ago", "4 days ago", "3 days ago", "2 days ago", "Yesterday", "Today"}

// ActivityTrend buckets activities into the trailing seven local days,
// oldest first. Each window is [00:00:00.000, 23:59:59.999] with both
// bounds closed, and windows are computed fresh from now so the trend
// rolls over at midnight without invalidation.
func ActivityTrend(activities []model.Activity, now time.Time) []model.TrendPoint {
	trend := make([]model.TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

		count := 0
		for _, a := range activities {
			if !a.Timestamp.Before(start) && !a.Timestamp.After(end) {
				count++
			}
		}
		trend = append(trend, model.TrendPoint{Date: trendLabels[6-i], Count: count})
	}
	return trend
}

func head[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
