//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

func setupIntegrationTest(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "aiinfluencer_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/aiinfluencer_test?sslmode=disable", host, port.Port())

	db, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

		CREATE TABLE users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email TEXT NOT NULL UNIQUE,
			current_plan UUID,
			price_id TEXT,
			subscription_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE influencers (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			template_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE webhooks (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES users(id),
			influencer_id UUID NOT NULL REFERENCES influencers(id),
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			event TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('inbound-trigger', 'automation-subscriber')),
			secret TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			last_triggered_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX idx_webhooks_url_kind ON webhooks (url, kind) WHERE active;

		CREATE TABLE contents (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			influencer_id UUID NOT NULL REFERENCES influencers(id),
			title TEXT NOT NULL,
			script TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('generating', 'completed', 'failed')),
			video_id TEXT,
			video_url TEXT,
			error TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX idx_contents_video_id ON contents (video_id) WHERE video_id IS NOT NULL;
	`)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func seedAccount(t *testing.T, db *pgxpool.Pool) (userID, influencerID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	userID = uuid.New()
	influencerID = uuid.New()

	_, err := db.Exec(ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2)`,
		userID, fmt.Sprintf("%s@example.com", userID))
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		`INSERT INTO influencers (id, user_id, name, template_id) VALUES ($1, $2, 'Ava', 'tmpl_1')`,
		influencerID, userID)
	require.NoError(t, err)

	return userID, influencerID
}

func TestRegistrationRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRegistrationRepository(db)
	userID, influencerID := seedAccount(t, db)

	trigger := &domain.Registration{
		UserID:       userID,
		InfluencerID: influencerID,
		Name:         "content generator",
		URL:          "https://backend.example.com/hooks/ava-generate",
		Event:        "video.create",
		Kind:         domain.KindInboundTrigger,
		Secret:       "trigger-secret",
		Active:       true,
	}
	subscriber := &domain.Registration{
		UserID:       userID,
		InfluencerID: influencerID,
		Name:         "zapier sync",
		URL:          "https://hooks.zapier.com/abc",
		Event:        "video.completed",
		Kind:         domain.KindAutomationSubscriber,
		Active:       true,
	}

	t.Run("create and round-trip", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, trigger))
		require.NoError(t, repo.Create(ctx, subscriber))

		got, err := repo.GetByID(ctx, trigger.ID)
		require.NoError(t, err)
		assert.Equal(t, trigger.URL, got.URL)
		assert.Equal(t, "trigger-secret", got.Secret)
		assert.True(t, got.Active)
		assert.Nil(t, got.LastTriggeredAt)

		// subscriber secret was empty; NULLIF stores NULL and scans back empty
		got, err = repo.GetByID(ctx, subscriber.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Secret)
	})

	t.Run("duplicate active url and kind rejected", func(t *testing.T) {
		dup := *trigger
		dup.ID = uuid.Nil
		err := repo.Create(ctx, &dup)
		assert.ErrorIs(t, err, domain.ErrRegistrationExists)
	})

	t.Run("list active by kind", func(t *testing.T) {
		regs, err := repo.ListActiveByKind(ctx, domain.KindInboundTrigger)
		require.NoError(t, err)
		require.Len(t, regs, 1)
		assert.Equal(t, trigger.ID, regs[0].ID)
	})

	t.Run("list active subscribers for influencer", func(t *testing.T) {
		subs, err := repo.ListActiveSubscribers(ctx, influencerID)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, subscriber.ID, subs[0].ID)
	})

	t.Run("update last triggered", func(t *testing.T) {
		require.NoError(t, repo.UpdateLastTriggered(ctx, subscriber.ID))

		got, err := repo.GetByID(ctx, subscriber.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastTriggeredAt)
		assert.WithinDuration(t, time.Now(), *got.LastTriggeredAt, time.Minute)
	})

	t.Run("deactivated trigger drops out of active listings", func(t *testing.T) {
		trigger.Active = false
		require.NoError(t, repo.Update(ctx, trigger))

		regs, err := repo.ListActiveByKind(ctx, domain.KindInboundTrigger)
		require.NoError(t, err)
		assert.Empty(t, regs)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, subscriber.ID))
		_, err := repo.GetByID(ctx, subscriber.ID)
		assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	})
}

func TestContentRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewContentRepository(db)
	_, influencerID := seedAccount(t, db)

	videoID := "vid_integration_1"
	content := &domain.Content{
		InfluencerID: influencerID,
		Title:        "Launch teaser",
		Script:       "Hello from the integration suite",
		Status:       domain.ContentStatusGenerating,
		VideoID:      &videoID,
	}
	require.NoError(t, repo.Create(ctx, content))

	t.Run("correlate by provider video id", func(t *testing.T) {
		got, err := repo.GetByVideoID(ctx, videoID)
		require.NoError(t, err)
		assert.Equal(t, content.ID, got.ID)
		assert.Equal(t, domain.ContentStatusGenerating, got.Status)
		assert.Nil(t, got.VideoURL)
	})

	t.Run("mark completed sets url and status", func(t *testing.T) {
		require.NoError(t, repo.MarkCompleted(ctx, content.ID, "https://cdn.example.com/v.mp4"))

		got, err := repo.GetByVideoID(ctx, videoID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContentStatusCompleted, got.Status)
		require.NotNil(t, got.VideoURL)
		assert.Equal(t, "https://cdn.example.com/v.mp4", *got.VideoURL)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
	})

	t.Run("unknown video id", func(t *testing.T) {
		_, err := repo.GetByVideoID(ctx, "vid_missing")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("listing is newest first", func(t *testing.T) {
		second := &domain.Content{
			InfluencerID: influencerID,
			Title:        "Follow-up",
			Script:       "Second video",
			Status:       domain.ContentStatusGenerating,
		}
		require.NoError(t, repo.Create(ctx, second))

		list, err := repo.ListByInfluencer(ctx, influencerID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
	})
}
