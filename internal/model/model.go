// Package model defines the persisted entities of the developer-activity
// store and the typed patches used for partial updates.
package model

import "time"

// Role is a user role. Roles gate UI features only; nothing in this
// service enforces them.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDeveloper Role = "Developer"
	RoleViewer    Role = "Viewer"
)

// DeviceStatus is the authorization state of a device.
type DeviceStatus string

const (
	DevicePending    DeviceStatus = "PENDING"
	DeviceAuthorized DeviceStatus = "AUTHORIZED"
	DeviceRejected   DeviceStatus = "REJECTED"
	DeviceSuspended  DeviceStatus = "SUSPENDED"
)

// ActivityType identifies the kind of developer activity observed.
type ActivityType string

const (
	ActivityGitPush            ActivityType = "GIT_PUSH"
	ActivityGitClone           ActivityType = "GIT_CLONE"
	ActivityGitPull            ActivityType = "GIT_PULL"
	ActivityGitCommit          ActivityType = "GIT_COMMIT"
	ActivityRepoCopy           ActivityType = "REPO_COPY"
	ActivityUnauthorizedAccess ActivityType = "UNAUTHORIZED_ACCESS"
)

// SecurityStatus is the assessed state of a repository.
type SecurityStatus string

const (
	RepoSecure      SecurityStatus = "SECURE"
	RepoWarning     SecurityStatus = "WARNING"
	RepoCompromised SecurityStatus = "COMPROMISED"
	RepoEncrypted   SecurityStatus = "ENCRYPTED"
)

// Severity is the alert severity level.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// AlertStatus is the read state of an alert.
type AlertStatus string

const (
	AlertUnread AlertStatus = "UNREAD"
	AlertRead   AlertStatus = "READ"
)

// UserRef is a denormalized reference to a user, embedded where an
// entity points at its owner.
type UserRef struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DeviceRef is a denormalized reference to a device.
type DeviceRef struct {
	ID         int    `json:"id,omitempty"`
	DeviceName string `json:"deviceName,omitempty"`
}

// ActivityRef is the denormalized activity context carried by an alert.
type ActivityRef struct {
	ID         int       `json:"id,omitempty"`
	User       UserRef   `json:"user,omitempty"`
	Device     DeviceRef `json:"device,omitempty"`
	Repository string    `json:"repository,omitempty"`
}

// User is a dashboard account.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Device is a developer machine known to the system.
type Device struct {
	ID         int          `json:"id"`
	DeviceName string       `json:"deviceName"`
	DeviceID   string       `json:"deviceId"`
	User       UserRef      `json:"user"`
	Status     DeviceStatus `json:"status"`
	LastActive time.Time    `json:"lastActive"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Activity is one observed developer action. Activities are append-only
// and stored most-recent-first.
type Activity struct {
	ID           int            `json:"id"`
	ActivityType ActivityType   `json:"activityType"`
	User         UserRef        `json:"user"`
	Device       DeviceRef      `json:"device"`
	Repository   string         `json:"repository,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	IsSuspicious bool           `json:"isSuspicious"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Repository is a monitored source repository.
type Repository struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Path           string         `json:"path"`
	IsEncrypted    bool           `json:"isEncrypted"`
	SecurityStatus SecurityStatus `json:"securityStatus,omitempty"`
	LastAccessed   time.Time      `json:"lastAccessed"`
	LastActivity   time.Time      `json:"lastActivity,omitzero"`
	CreatedAt      time.Time      `json:"createdAt"`
	User           UserRef        `json:"user"`
}

// Alert is a security notification. Alerts are stored most-recent-first.
type Alert struct {
	ID        int         `json:"id"`
	Severity  Severity    `json:"severity"`
	Message   string      `json:"message"`
	Activity  ActivityRef `json:"activity"`
	Status    AlertStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SecuritySettings is the singleton policy document.
type SecuritySettings struct {
	DeviceAuthRequired          bool `json:"deviceAuthRequired"`
	SuspiciousActivityDetection bool `json:"suspiciousActivityDetection"`
	AutoBlockUnauthorized       bool `json:"autoBlockUnauthorized"`
	EncryptionRequired          bool `json:"encryptionRequired"`
	AlertsEnabled               bool `json:"alertsEnabled"`
	MaxFailedAttempts           int  `json:"maxFailedAttempts"`
}

// Overview holds the dashboard headline counts.
type Overview struct {
	TotalUsers      int `json:"totalUsers"`
	TotalDevices    int `json:"totalDevices"`
	TotalActivities int `json:"totalActivities"`
	SecurityScore   int `json:"securityScore"`
}

// SecurityStats holds the dashboard security breakdown.
type SecurityStats struct {
	AuthorizedDevices    int `json:"authorizedDevices"`
	TotalDevices         int `json:"totalDevices"`
	PendingDevices       int `json:"pendingDevices"`
	SuspiciousActivities int `json:"suspiciousActivities"`
	CriticalAlerts       int `json:"criticalAlerts"`
	EncryptedRepos       int `json:"encryptedRepos"`
}

// TrendPoint is one day of the 7-day activity trend.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Dashboard is the derived summary document. It is a pure function of
// the other collections and is always rebuilt wholesale, never patched.
type Dashboard struct {
	Overview         Overview      `json:"overview"`
	SecurityStats    SecurityStats `json:"securityStats"`
	RecentActivities []Activity    `json:"recentActivities"`
	RecentAlerts     []Alert       `json:"recentAlerts"`
	ActivityTrend    []TrendPoint  `json:"activityTrend"`
}

// RepositoryStats is the per-status repository breakdown.
type RepositoryStats struct {
	TotalRepositories       int `json:"totalRepositories"`
	EncryptedRepositories   int `json:"encryptedRepositories"`
	CompromisedRepositories int `json:"compromisedRepositories"`
	SecureRepositories      int `json:"secureRepositories"`
	WarningRepositories     int `json:"warningRepositories"`
}
