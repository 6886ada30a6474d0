package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

type fakeSource struct {
	mu    sync.Mutex
	regs  []*domain.Registration
	err   error
	calls int
}

func (s *fakeSource) ListActiveByKind(ctx context.Context, kind string) ([]*domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Registration
	for _, r := range s.regs {
		if r.Kind == kind && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSource) set(regs []*domain.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs = regs
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func trigger(url string) *domain.Registration {
	return &domain.Registration{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		InfluencerID: uuid.New(),
		Name:         "test hook",
		URL:          url,
		Event:        "video.requested",
		Kind:         domain.KindInboundTrigger,
		Active:       true,
	}
}

func TestRegistry_Reconcile_MountsActiveTriggers(t *testing.T) {
	source := &fakeSource{regs: []*domain.Registration{
		trigger("https://host.example.com/hooks/abc"),
		trigger("https://host.example.com/hooks/def"),
	}}
	r := New(source, testLogger())

	require.NoError(t, r.Reconcile(context.Background()))

	assert.Equal(t, []string{"/hooks/abc", "/hooks/def"}, r.Paths())

	ep, ok := r.Lookup("/hooks/abc")
	require.True(t, ok)
	assert.Equal(t, source.regs[0].InfluencerID, ep.InfluencerID)
	assert.Equal(t, source.regs[0].UserID, ep.UserID)

	_, ok = r.Lookup("/hooks/nope")
	assert.False(t, ok)
}

func TestRegistry_Reconcile_Idempotent(t *testing.T) {
	source := &fakeSource{regs: []*domain.Registration{
		trigger("https://host.example.com/hooks/abc"),
	}}
	r := New(source, testLogger())

	require.NoError(t, r.Reconcile(context.Background()))
	first := r.Paths()

	require.NoError(t, r.Reconcile(context.Background()))
	assert.Equal(t, first, r.Paths(), "unchanged registration set must not change the mounted paths")
}

func TestRegistry_Reconcile_AdditiveByDefault(t *testing.T) {
	reg := trigger("https://host.example.com/hooks/abc")
	source := &fakeSource{regs: []*domain.Registration{reg}}
	r := New(source, testLogger())

	require.NoError(t, r.Reconcile(context.Background()))
	require.Equal(t, []string{"/hooks/abc"}, r.Paths())

	// Deactivating the registration does not unmount the endpoint.
	reg.Active = false
	require.NoError(t, r.Reconcile(context.Background()))
	assert.Equal(t, []string{"/hooks/abc"}, r.Paths())
}

func TestRegistry_Reconcile_UnmountInactive(t *testing.T) {
	reg := trigger("https://host.example.com/hooks/abc")
	keep := trigger("https://host.example.com/hooks/keep")
	source := &fakeSource{regs: []*domain.Registration{reg, keep}}
	r := New(source, testLogger(), WithUnmountInactive(true))

	require.NoError(t, r.Reconcile(context.Background()))
	require.Equal(t, []string{"/hooks/abc", "/hooks/keep"}, r.Paths())

	reg.Active = false
	require.NoError(t, r.Reconcile(context.Background()))
	assert.Equal(t, []string{"/hooks/keep"}, r.Paths())
}

func TestRegistry_Reconcile_StorageFailureIsNoOp(t *testing.T) {
	source := &fakeSource{regs: []*domain.Registration{
		trigger("https://host.example.com/hooks/abc"),
	}}
	r := New(source, testLogger(), WithUnmountInactive(true))

	require.NoError(t, r.Reconcile(context.Background()))
	require.Equal(t, []string{"/hooks/abc"}, r.Paths())

	source.err = errors.New("connection refused")
	err := r.Reconcile(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"/hooks/abc"}, r.Paths(), "a failed fetch must not unmount anything")
}

func TestRegistry_Reconcile_SkipsUnusableRows(t *testing.T) {
	bad := trigger("https://host.example.com")
	dupA := trigger("https://host-a.example.com/hooks/same")
	dupB := trigger("https://host-b.example.com/hooks/same")
	source := &fakeSource{regs: []*domain.Registration{bad, dupA, dupB}}
	r := New(source, testLogger())

	require.NoError(t, r.Reconcile(context.Background()))

	assert.Equal(t, []string{"/hooks/same"}, r.Paths())
	ep, ok := r.Lookup("/hooks/same")
	require.True(t, ok)
	assert.Equal(t, dupA.ID, ep.RegistrationID, "first row wins a path collision")
}
