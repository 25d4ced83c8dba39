// Package notify pushes critical alerts to external notification
// services (Discord, Slack, Telegram, email and anything else shoutrrr
// can address by URL).
package notify

import (
	"fmt"
	"log/slog"

	"github.com/containrrr/shoutrrr"

	"github.com/devwatch/devwatch/internal/model"
)

// Notifier fans alerts out to a set of shoutrrr URLs.
type Notifier struct {
	urls   []string
	logger *slog.Logger
}

// New creates a notifier. With no URLs configured every call is a
// no-op.
func New(urls []string, logger *slog.Logger) *Notifier {
	return &Notifier{urls: urls, logger: logger}
}

// AlertCreated sends a notification for newly created critical alerts.
// Delivery is fire-and-forget: failures are logged, never propagated,
// so a dead webhook cannot block a mutation.
func (n *Notifier) AlertCreated(a model.Alert) {
	if a.Severity != model.SeverityCritical || len(n.urls) == 0 {
		return
	}

	msg := fmt.Sprintf("[%s] %s", a.Severity, a.Message)
	if a.Activity.Repository != "" {
		msg += fmt.Sprintf(" (repository: %s)", a.Activity.Repository)
	}

	for _, url := range n.urls {
		go func(u string) {
			if err := shoutrrr.Send(u, msg); err != nil {
				n.logger.Warn("failed to send alert notification", "error", err)
			}
		}(url)
	}
}
