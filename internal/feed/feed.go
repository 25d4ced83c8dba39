// Package feed folds externally produced activity and alert events into
// the store through the same add path as the API, one event at a time,
// so prepend ordering is preserved.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
)

// Event kinds.
const (
	KindActivity = "activity"
	KindAlert    = "alert"
)

// ErrInvalidEvent marks events that cannot be folded: unknown kinds and
// payloads that do not decode.
var ErrInvalidEvent = errors.New("invalid event")

// Event is the envelope delivered by the real-time channel.
type Event struct {
	ID      string          `json:"id,omitempty"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Folder applies feed events to the repositories.
type Folder struct {
	reg    *repo.Registry
	logger *slog.Logger
}

// NewFolder creates a folder over the given registry.
func NewFolder(reg *repo.Registry, logger *slog.Logger) *Folder {
	return &Folder{reg: reg, logger: logger}
}

// Fold applies one event and returns the stored entity. Events with an
// empty envelope id get one assigned for log correlation.
func (f *Folder) Fold(ev Event) (any, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	switch ev.Kind {
	case KindActivity:
		var a model.Activity
		if err := json.Unmarshal(ev.Payload, &a); err != nil {
			return nil, fmt.Errorf("%w: bad activity payload: %v", ErrInvalidEvent, err)
		}
		stored, err := f.reg.Activities.Add(a)
		if err != nil {
			return nil, err
		}
		f.logger.Info("folded feed event", "event_id", ev.ID, "kind", ev.Kind, "id", stored.ID)
		return stored, nil

	case KindAlert:
		var a model.Alert
		if err := json.Unmarshal(ev.Payload, &a); err != nil {
			return nil, fmt.Errorf("%w: bad alert payload: %v", ErrInvalidEvent, err)
		}
		stored, err := f.reg.Alerts.Add(a)
		if err != nil {
			return nil, err
		}
		f.logger.Info("folded feed event", "event_id", ev.ID, "kind", ev.Kind, "id", stored.ID)
		return stored, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, ev.Kind)
	}
}
