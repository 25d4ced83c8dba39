package model

import "time"

// Patch types describe partial updates. A nil field is left untouched;
// a set field replaces the stored value wholesale. Handlers decode
// patches with DisallowUnknownFields so unrecognized fields are
// rejected instead of silently merged.

// UserPatch is a partial update to a User.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// DevicePatch is a partial update to a Device.
type DevicePatch struct {
	DeviceName *string       `json:"deviceName,omitempty"`
	DeviceID   *string       `json:"deviceId,omitempty"`
	User       *UserRef      `json:"user,omitempty"`
	Status     *DeviceStatus `json:"status,omitempty"`
	LastActive *time.Time    `json:"lastActive,omitempty"`
}

// ActivityPatch is a partial update to an Activity.
type ActivityPatch struct {
	ActivityType *ActivityType   `json:"activityType,omitempty"`
	User         *UserRef        `json:"user,omitempty"`
	Device       *DeviceRef      `json:"device,omitempty"`
	Repository   *string         `json:"repository,omitempty"`
	IsSuspicious *bool           `json:"isSuspicious,omitempty"`
	Metadata     *map[string]any `json:"metadata,omitempty"`
}

// RepositoryPatch is a partial update to a Repository.
type RepositoryPatch struct {
	Name           *string         `json:"name,omitempty"`
	Path           *string         `json:"path,omitempty"`
	IsEncrypted    *bool           `json:"isEncrypted,omitempty"`
	SecurityStatus *SecurityStatus `json:"securityStatus,omitempty"`
	LastAccessed   *time.Time      `json:"lastAccessed,omitempty"`
	LastActivity   *time.Time      `json:"lastActivity,omitempty"`
	User           *UserRef        `json:"user,omitempty"`
}

// AlertPatch is a partial update to an Alert.
type AlertPatch struct {
	Severity *Severity    `json:"severity,omitempty"`
	Message  *string      `json:"message,omitempty"`
	Activity *ActivityRef `json:"activity,omitempty"`
	Status   *AlertStatus `json:"status,omitempty"`
}
