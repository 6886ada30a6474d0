package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// RegistrationRepository Tests

func registrationRows(regs ...*domain.Registration) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "influencer_id", "name", "url", "event", "kind", "secret", "active", "last_triggered_at", "created_at",
	})
	for _, reg := range regs {
		var secret *string
		if reg.Secret != "" {
			secret = &reg.Secret
		}
		rows.AddRow(reg.ID, reg.UserID, reg.InfluencerID, reg.Name, reg.URL, reg.Event, reg.Kind, secret, reg.Active, reg.LastTriggeredAt, reg.CreatedAt)
	}
	return rows
}

func sampleRegistration(kind string) *domain.Registration {
	return &domain.Registration{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		InfluencerID: uuid.New(),
		Name:         "launch trigger",
		URL:          "https://api.example.com/hooks/ava",
		Event:        "video.create",
		Kind:         kind,
		Secret:       "shh",
		Active:       true,
		CreatedAt:    time.Now(),
	}
}

func TestRegistrationRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface, reg *domain.Registration)
		wantErr   error
	}{
		{
			name: "successful create",
			mockSetup: func(mock pgxmock.PgxPoolIface, reg *domain.Registration) {
				mock.ExpectQuery(`INSERT INTO webhooks`).
					WithArgs(reg.ID, reg.UserID, reg.InfluencerID, reg.Name, reg.URL, reg.Event, reg.Kind, reg.Secret, reg.Active).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
			},
			wantErr: nil,
		},
		{
			name: "duplicate url and kind",
			mockSetup: func(mock pgxmock.PgxPoolIface, reg *domain.Registration) {
				mock.ExpectQuery(`INSERT INTO webhooks`).
					WithArgs(reg.ID, reg.UserID, reg.InfluencerID, reg.Name, reg.URL, reg.Event, reg.Kind, reg.Secret, reg.Active).
					WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_webhooks_url_kind" (SQLSTATE 23505)`))
			},
			wantErr: domain.ErrRegistrationExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			reg := sampleRegistration(domain.KindInboundTrigger)
			tt.mockSetup(mock, reg)

			repo := NewRegistrationRepository(mock)
			err = repo.Create(context.Background(), reg)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_ListActiveByKind(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	reg := sampleRegistration(domain.KindInboundTrigger)
	mock.ExpectQuery(`SELECT (.+) FROM webhooks WHERE kind = \$1 AND active = true`).
		WithArgs(domain.KindInboundTrigger).
		WillReturnRows(registrationRows(reg))

	repo := NewRegistrationRepository(mock)
	regs, err := repo.ListActiveByKind(context.Background(), domain.KindInboundTrigger)

	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, reg.ID, regs[0].ID)
	assert.Equal(t, "shh", regs[0].Secret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_ListActiveSubscribers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	influencerID := uuid.New()
	reg := sampleRegistration(domain.KindAutomationSubscriber)
	reg.InfluencerID = influencerID

	mock.ExpectQuery(`SELECT (.+) FROM webhooks WHERE influencer_id = \$1 AND kind = \$2 AND active = true`).
		WithArgs(influencerID, domain.KindAutomationSubscriber).
		WillReturnRows(registrationRows(reg))

	repo := NewRegistrationRepository(mock)
	subs, err := repo.ListActiveSubscribers(context.Background(), influencerID)

	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, domain.KindAutomationSubscriber, subs[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM webhooks WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	repo := NewRegistrationRepository(mock)
	_, err = repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	reg := sampleRegistration(domain.KindInboundTrigger)
	mock.ExpectExec(`UPDATE webhooks`).
		WithArgs(reg.Name, reg.URL, reg.Event, reg.Active, reg.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRegistrationRepository(mock)
	err = repo.Update(context.Background(), reg)

	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_UpdateLastTriggered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE webhooks SET last_triggered_at = NOW\(\) WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewRegistrationRepository(mock)
	assert.NoError(t, repo.UpdateLastTriggered(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ContentRepository Tests

func TestContentRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	videoID := "vid_123"
	content := &domain.Content{
		InfluencerID: uuid.New(),
		Title:        "Launch teaser",
		Script:       "Hello world",
		Status:       domain.ContentStatusGenerating,
		VideoID:      &videoID,
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO contents`).
		WithArgs(pgxmock.AnyArg(), content.InfluencerID, content.Title, content.Script, content.Status, content.VideoID, content.VideoURL, content.Error).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewContentRepository(mock)
	require.NoError(t, repo.Create(context.Background(), content))

	assert.NotEqual(t, uuid.Nil, content.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_GetByVideoID(t *testing.T) {
	contentID := uuid.New()
	influencerID := uuid.New()
	videoID := "vid_123"
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "job found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "influencer_id", "title", "script", "status", "video_id", "video_url", "error", "created_at", "updated_at",
				}).AddRow(contentID, influencerID, "Title", "Script", domain.ContentStatusGenerating, &videoID, nil, nil, now, now)

				mock.ExpectQuery(`SELECT (.+) FROM contents WHERE video_id = \$1`).
					WithArgs(videoID).
					WillReturnRows(rows)
			},
			wantErr: nil,
		},
		{
			name: "unknown video id",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM contents WHERE video_id = \$1`).
					WithArgs(videoID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewContentRepository(mock)
			got, err := repo.GetByVideoID(context.Background(), videoID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, contentID, got.ID)
				require.NotNil(t, got.VideoID)
				assert.Equal(t, videoID, *got.VideoID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContentRepository_MarkCompleted(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "job updated", rowsAffected: 1, wantErr: nil},
		{name: "job missing", rowsAffected: 0, wantErr: domain.ErrJobNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			id := uuid.New()
			mock.ExpectExec(`UPDATE contents`).
				WithArgs(domain.ContentStatusCompleted, "https://cdn.example.com/v.mp4", id).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			repo := NewContentRepository(mock)
			err = repo.MarkCompleted(context.Background(), id, "https://cdn.example.com/v.mp4")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// CredentialRepository Tests

func TestCredentialRepository_GetHeyGenKey(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantKey   string
		wantErr   error
	}{
		{
			name: "key present",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT heygen_key FROM api_keys WHERE user_id = \$1`).
					WithArgs(userID).
					WillReturnRows(pgxmock.NewRows([]string{"heygen_key"}).AddRow("hg_key"))
			},
			wantKey: "hg_key",
		},
		{
			name: "key absent",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT heygen_key FROM api_keys WHERE user_id = \$1`).
					WithArgs(userID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrAPIKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewCredentialRepository(mock)
			key, err := repo.GetHeyGenKey(context.Background(), userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialRepository_SetHeyGenKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	mock.ExpectExec(`INSERT INTO api_keys`).
		WithArgs(userID, "hg_key").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewCredentialRepository(mock)
	assert.NoError(t, repo.SetHeyGenKey(context.Background(), userID, "hg_key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// AccountRepository Tests

func TestAccountRepository_GetPlanByPriceID(t *testing.T) {
	planID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "plan found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "plan_name", "price_id", "monthly_price"}).
					AddRow(planID, "Basic", "price_basic", 30.0)
				mock.ExpectQuery(`SELECT id, plan_name, price_id, monthly_price FROM plans WHERE price_id = \$1`).
					WithArgs("price_basic").
					WillReturnRows(rows)
			},
		},
		{
			name: "plan missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, plan_name, price_id, monthly_price FROM plans WHERE price_id = \$1`).
					WithArgs("price_basic").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewAccountRepository(mock)
			plan, err := repo.GetPlanByPriceID(context.Background(), "price_basic")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, planID, plan.ID)
				assert.Equal(t, "Basic", plan.PlanName)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetUserByEmail(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "user found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "email", "current_plan", "price_id", "subscription_id", "created_at"}).
					AddRow(userID, "ava@example.com", nil, nil, nil, time.Now())
				mock.ExpectQuery(`SELECT id, email, current_plan, price_id, subscription_id, created_at FROM users WHERE email = \$1`).
					WithArgs("ava@example.com").
					WillReturnRows(rows)
			},
		},
		{
			name: "user missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email, current_plan, price_id, subscription_id, created_at FROM users WHERE email = \$1`).
					WithArgs("ava@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewAccountRepository(mock)
			user, err := repo.GetUserByEmail(context.Background(), "ava@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, userID, user.ID)
				assert.Nil(t, user.CurrentPlan)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_SetPlan(t *testing.T) {
	priceID := "price_basic"
	subID := "sub_1"
	plan := &domain.Plan{ID: uuid.New(), PlanName: "Basic", PriceID: priceID}

	tests := []struct {
		name         string
		plan         *domain.Plan
		priceID      *string
		subID        *string
		rowsAffected int64
		wantErr      error
	}{
		{name: "plan applied", plan: plan, priceID: &priceID, subID: &subID, rowsAffected: 1},
		{name: "reset to free tier", plan: nil, priceID: nil, subID: nil, rowsAffected: 1},
		{name: "unknown user", plan: plan, priceID: &priceID, subID: &subID, rowsAffected: 0, wantErr: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			var planID any
			if tt.plan != nil {
				planID = tt.plan.ID
			}
			mock.ExpectExec(`UPDATE users`).
				WithArgs(planID, tt.priceID, tt.subID, "ava@example.com").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			repo := NewAccountRepository(mock)
			err = repo.SetPlan(context.Background(), "ava@example.com", tt.plan, tt.priceID, tt.subID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
