package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Registration kinds
const (
	KindInboundTrigger       = "inbound-trigger"
	KindAutomationSubscriber = "automation-subscriber"
)

var validKinds = map[string]bool{
	KindInboundTrigger:       true,
	KindAutomationSubscriber: true,
}

// Registration is a stored webhook registration: either an inbound trigger
// endpoint the service mounts, or an automation subscriber it delivers to.
type Registration struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	InfluencerID    uuid.UUID  `json:"influencer_id"`
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	Event           string     `json:"event"`
	Kind            string     `json:"kind"`
	Secret          string     `json:"-"`
	Active          bool       `json:"active"`
	LastTriggeredAt *time.Time `json:"last_triggered_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Path extracts the mountable path from the registration URL.
func (r *Registration) Path() (string, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", err
	}
	path := u.Path
	if !strings.HasPrefix(path, "/") || path == "/" {
		return "", errors.New("registration url has no usable path")
	}
	return path, nil
}

// Validate checks the fields set by the admin API.
func (r *Registration) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.URL == "" {
		return errors.New("url is required")
	}
	if r.Event == "" {
		return errors.New("event is required")
	}
	if !validKinds[r.Kind] {
		return errors.New("kind must be inbound-trigger or automation-subscriber")
	}
	if r.Kind == KindInboundTrigger {
		if _, err := r.Path(); err != nil {
			return err
		}
	}
	return nil
}
