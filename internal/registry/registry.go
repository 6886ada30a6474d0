package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// Endpoint is the in-memory projection of one active inbound-trigger
// registration. It exists only while the service runs and is rebuilt from
// storage on every reconciliation pass.
type Endpoint struct {
	Path           string
	RegistrationID uuid.UUID
	UserID         uuid.UUID
	InfluencerID   uuid.UUID
	Name           string
}

// RegistrationSource is the slice of the registration store the registry reads.
type RegistrationSource interface {
	ListActiveByKind(ctx context.Context, kind string) ([]*domain.Registration, error)
}

// Registry holds the set of currently mounted inbound endpoints, keyed by URL
// path. The HTTP layer resolves every request against it through Lookup, which
// is what makes route mounting dynamic without touching the router's own table.
type Registry struct {
	source          RegistrationSource
	logger          *slog.Logger
	unmountInactive bool

	// reconcileMu serializes reconciliation passes; endpoints keeps its own
	// lock so request-path lookups never wait on a running pass.
	reconcileMu sync.Mutex

	mu        sync.RWMutex
	endpoints map[string]Endpoint
}

// Option configures a Registry.
type Option func(*Registry)

// WithUnmountInactive makes reconcile remove endpoints whose registration is
// no longer active. Off by default: the baseline registry is additive-only.
func WithUnmountInactive(enabled bool) Option {
	return func(r *Registry) {
		r.unmountInactive = enabled
	}
}

func New(source RegistrationSource, logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		source:    source,
		logger:    logger,
		endpoints: make(map[string]Endpoint),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile fetches the active inbound-trigger registrations and mounts every
// path not yet present. Re-running with an unchanged registration set is a
// no-op: at most one endpoint exists per path. A storage failure leaves the
// mounted set untouched and degrades the cycle to a no-op.
func (r *Registry) Reconcile(ctx context.Context) error {
	r.reconcileMu.Lock()
	defer r.reconcileMu.Unlock()

	regs, err := r.source.ListActiveByKind(ctx, domain.KindInboundTrigger)
	if err != nil {
		return fmt.Errorf("fetch inbound registrations: %w", err)
	}

	desired := make(map[string]Endpoint, len(regs))
	for _, reg := range regs {
		path, err := reg.Path()
		if err != nil {
			r.logger.Warn("skipping registration with unusable url",
				"registration_id", reg.ID,
				"url", reg.URL,
				"error", err,
			)
			continue
		}

		if prev, ok := desired[path]; ok {
			r.logger.Warn("skipping registration with duplicate path",
				"registration_id", reg.ID,
				"path", path,
				"mounted_registration_id", prev.RegistrationID,
			)
			continue
		}

		desired[path] = Endpoint{
			Path:           path,
			RegistrationID: reg.ID,
			UserID:         reg.UserID,
			InfluencerID:   reg.InfluencerID,
			Name:           reg.Name,
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var mounted, unmounted int
	for path, ep := range desired {
		if _, ok := r.endpoints[path]; !ok {
			r.endpoints[path] = ep
			mounted++
			r.logger.Info("webhook endpoint mounted",
				"path", path,
				"registration_id", ep.RegistrationID,
				"name", ep.Name,
			)
		}
	}

	if r.unmountInactive {
		for path := range r.endpoints {
			if _, ok := desired[path]; !ok {
				delete(r.endpoints, path)
				unmounted++
				r.logger.Info("webhook endpoint unmounted", "path", path)
			}
		}
	}

	if mounted > 0 || unmounted > 0 {
		r.logger.Info("endpoint registry reconciled",
			"mounted", mounted,
			"unmounted", unmounted,
			"total", len(r.endpoints),
		)
	}

	return nil
}

// Lookup resolves a request path to its mounted endpoint.
func (r *Registry) Lookup(path string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.endpoints[path]
	return ep, ok
}

// Paths returns the currently mounted paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.endpoints))
	for path := range r.endpoints {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
