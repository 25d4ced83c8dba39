package model

import "time"

// Default datasets written by the seeder on first run. Repositories fall
// back to the same data when a stored collection is missing or corrupt,
// so the dashboard always has something to show. Timestamps are relative
// to the supplied clock value so the default activity trend and
// "last active" badges look alive.

const day = 24 * time.Hour

// DefaultUsers returns the seed user accounts.
func DefaultUsers(now time.Time) []User {
	return []User{
		{ID: 1, Name: "Admin User", Email: "admin@devmonitor.com", Role: RoleAdmin, Status: "Active", CreatedAt: now.Add(-30 * day)},
		{ID: 2, Name: "Developer User", Email: "developer@devmonitor.com", Role: RoleDeveloper, Status: "Active", CreatedAt: now.Add(-25 * day)},
		{ID: 3, Name: "Viewer User", Email: "viewer@devmonitor.com", Role: RoleViewer, Status: "Active", CreatedAt: now.Add(-20 * day)},
		{ID: 4, Name: "John Doe", Email: "john.doe@example.com", Role: RoleDeveloper, Status: "Active", CreatedAt: now.Add(-15 * day)},
		{ID: 5, Name: "Jane Smith", Email: "jane.smith@example.com", Role: RoleDeveloper, Status: "Active", CreatedAt: now.Add(-10 * day)},
		{ID: 6, Name: "Alex Johnson", Email: "alex.johnson@example.com", Role: RoleAdmin, Status: "Active", CreatedAt: now.Add(-5 * day)},
	}
}

// DefaultDevices returns the seed devices.
func DefaultDevices(now time.Time) []Device {
	return []Device{
		{ID: 1, DeviceName: "MacBook Pro", DeviceID: "device-001", User: UserRef{Name: "Admin User", Email: "admin@devmonitor.com"}, Status: DeviceAuthorized, LastActive: now, CreatedAt: now.Add(-30 * day)},
		{ID: 2, DeviceName: "Dell Laptop", DeviceID: "device-002", User: UserRef{Name: "Developer User", Email: "developer@devmonitor.com"}, Status: DeviceAuthorized, LastActive: now.Add(-1 * time.Hour), CreatedAt: now.Add(-25 * day)},
		{ID: 3, DeviceName: "HP Workstation", DeviceID: "device-003", User: UserRef{Name: "Jane Smith", Email: "jane.smith@example.com"}, Status: DeviceAuthorized, LastActive: now.Add(-2 * time.Hour), CreatedAt: now.Add(-20 * day)},
		{ID: 4, DeviceName: "iPad Pro", DeviceID: "device-004", User: UserRef{Name: "Developer User", Email: "developer@devmonitor.com"}, Status: DevicePending, LastActive: now.Add(-3 * time.Hour), CreatedAt: now.Add(-2 * day)},
		{ID: 5, DeviceName: "Lenovo Laptop", DeviceID: "device-005", User: UserRef{Name: "Alex Johnson", Email: "alex.johnson@example.com"}, Status: DeviceAuthorized, LastActive: now.Add(-4 * time.Hour), CreatedAt: now.Add(-15 * day)},
		{ID: 6, DeviceName: "Unknown Device", DeviceID: "device-006", User: UserRef{Name: "John Doe", Email: "john.doe@example.com"}, Status: DevicePending, LastActive: now.Add(-5 * time.Hour), CreatedAt: now.Add(-1 * day)},
	}
}

// DefaultActivities returns the seed activities, most recent first.
func DefaultActivities(now time.Time) []Activity {
	return []Activity{
		{
			ID:           1,
			ActivityType: ActivityGitPush,
			User:         UserRef{ID: 1, Name: "Admin User", Email: "admin@devmonitor.com"},
			Device:       DeviceRef{ID: 1, DeviceName: "MacBook Pro"},
			Repository:   "project-alpha",
			Timestamp:    now,
			Metadata:     map[string]any{"branch": "main", "commits": 3},
		},
		{
			ID:           2,
			ActivityType: ActivityGitClone,
			User:         UserRef{ID: 2, Name: "Developer User", Email: "developer@devmonitor.com"},
			Device:       DeviceRef{ID: 2, DeviceName: "Dell Laptop"},
			Repository:   "project-beta",
			Timestamp:    now.Add(-1 * time.Hour),
			Metadata:     map[string]any{"size": "150MB"},
		},
		{
			ID:           3,
			ActivityType: ActivityRepoCopy,
			User:         UserRef{ID: 4, Name: "John Doe", Email: "john.doe@example.com"},
			Device:       DeviceRef{ID: 6, DeviceName: "Unknown Device"},
			Repository:   "secret-project",
			Timestamp:    now.Add(-2 * time.Hour),
			IsSuspicious: true,
			Metadata:     map[string]any{"destination": "/external/drive"},
		},
	}
}

// DefaultRepositories returns the seed repositories.
func DefaultRepositories(now time.Time) []Repository {
	return []Repository{
		{ID: 1, Name: "project-alpha", Path: "/repos/project-alpha", IsEncrypted: true, LastAccessed: now, User: UserRef{Email: "admin@devmonitor.com"}, CreatedAt: now.Add(-60 * day)},
		{ID: 2, Name: "project-beta", Path: "/repos/project-beta", IsEncrypted: true, LastAccessed: now.Add(-1 * time.Hour), User: UserRef{Email: "developer@devmonitor.com"}, CreatedAt: now.Add(-45 * day)},
		{ID: 3, Name: "frontend-app", Path: "/repos/frontend-app", IsEncrypted: true, LastAccessed: now.Add(-2 * time.Hour), User: UserRef{Email: "jane.smith@example.com"}, CreatedAt: now.Add(-30 * day)},
		{ID: 4, Name: "backend-api", Path: "/repos/backend-api", IsEncrypted: true, LastAccessed: now.Add(-3 * time.Hour), User: UserRef{Email: "alex.johnson@example.com"}, CreatedAt: now.Add(-25 * day)},
		{ID: 5, Name: "secret-project", Path: "/repos/secret-project", IsEncrypted: false, LastAccessed: now.Add(-4 * time.Hour), User: UserRef{Email: "john.doe@example.com"}, CreatedAt: now.Add(-20 * day)},
	}
}

// DefaultAlerts returns the seed alerts, most recent first.
func DefaultAlerts(now time.Time) []Alert {
	return []Alert{
		{
			ID:       1,
			Severity: SeverityCritical,
			Message:  "Unauthorized repository access detected",
			Activity: ActivityRef{
				ID:         3,
				User:       UserRef{Name: "John Doe", Email: "john.doe@example.com"},
				Device:     DeviceRef{DeviceName: "Unknown Device"},
				Repository: "secret-project",
			},
			Status:    AlertUnread,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:       2,
			Severity: SeverityWarning,
			Message:  "New device pending authorization",
			Activity: ActivityRef{
				ID:     2,
				User:   UserRef{Name: "Developer User", Email: "developer@devmonitor.com"},
				Device: DeviceRef{DeviceName: "iPad Pro"},
			},
			Status:    AlertUnread,
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID:       3,
			Severity: SeverityInfo,
			Message:  "Large file commit detected",
			Activity: ActivityRef{
				ID:         1,
				User:       UserRef{Name: "Jane Smith", Email: "jane.smith@example.com"},
				Device:     DeviceRef{DeviceName: "HP Workstation"},
				Repository: "frontend-app",
			},
			Status:    AlertRead,
			CreatedAt: now.Add(-5 * time.Hour),
		},
	}
}

// DefaultSecuritySettings returns the seed policy document.
func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{
		DeviceAuthRequired:          true,
		SuspiciousActivityDetection: true,
		AutoBlockUnauthorized:       false,
		EncryptionRequired:          true,
		AlertsEnabled:               true,
		MaxFailedAttempts:           3,
	}
}

// DefaultDashboard returns the seed summary document. It is replaced by
// a real recompute on the first mutation.
func DefaultDashboard(now time.Time) Dashboard {
	activities := DefaultActivities(now)
	alerts := DefaultAlerts(now)
	return Dashboard{
		Overview: Overview{
			TotalUsers:      6,
			TotalDevices:    12,
			TotalActivities: 156,
			SecurityScore:   85,
		},
		SecurityStats: SecurityStats{
			AuthorizedDevices:    10,
			TotalDevices:         12,
			PendingDevices:       2,
			SuspiciousActivities: 3,
			CriticalAlerts:       1,
			EncryptedRepos:       8,
		},
		RecentActivities: activities,
		RecentAlerts:     alerts,
		ActivityTrend: []TrendPoint{
			{Date: "6 days ago", Count: 18},
			{Date: "5 days ago", Count: 22},
			{Date: "4 days ago", Count: 19},
			{Date: "3 days ago", Count: 25},
			{Date: "2 days ago", Count: 28},
			{Date: "Yesterday", Count: 24},
			{Date: "Today", Count: 20},
		},
	}
}
