package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
	"github.com/bazil852/aiinfluencerbackend/internal/fanout"
	"github.com/bazil852/aiinfluencerbackend/internal/provider"
	"github.com/bazil852/aiinfluencerbackend/internal/registry"
	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

// Notifier propagates a terminal job result to automation subscribers.
type Notifier interface {
	Dispatch(ctx context.Context, influencerID uuid.UUID, event fanout.Event) error
}

// Service drives a generation job through its lifecycle: an inbound trigger
// submits the job to the video provider, and a later provider callback
// completes it. The two halves meet only through the stored provider job id.
type Service struct {
	contents    repository.ContentRepositoryInterface
	influencers repository.InfluencerRepositoryInterface
	credentials repository.CredentialRepositoryInterface
	provider    provider.VideoProvider
	notifier    Notifier
	triggers    TriggerTracker
	logger      *slog.Logger
}

// TriggerTracker records when an inbound trigger registration last fired.
type TriggerTracker interface {
	UpdateLastTriggered(ctx context.Context, id uuid.UUID) error
}

func NewService(
	contents repository.ContentRepositoryInterface,
	influencers repository.InfluencerRepositoryInterface,
	credentials repository.CredentialRepositoryInterface,
	videoProvider provider.VideoProvider,
	notifier Notifier,
	triggers TriggerTracker,
	logger *slog.Logger,
) *Service {
	return &Service{
		contents:    contents,
		influencers: influencers,
		credentials: credentials,
		provider:    videoProvider,
		notifier:    notifier,
		triggers:    triggers,
		logger:      logger,
	}
}

// Submit validates the inbound payload, resolves the influencer template and
// the owning user's provider credential, and submits the job. On provider
// acceptance a generating row is persisted and the caller gets the provider's
// video id back immediately; completion arrives later via Complete. Any
// failure past validation and influencer lookup persists a failed row so the
// outcome is never lost.
func (s *Service) Submit(ctx context.Context, ep registry.Endpoint, title, script string) (*domain.Content, error) {
	if title == "" || script == "" {
		return nil, domain.ErrMissingTitleOrScript
	}

	influencer, err := s.influencers.GetByID(ctx, ep.InfluencerID)
	if err != nil {
		if errors.Is(err, domain.ErrInfluencerNotFound) {
			return nil, domain.ErrInfluencerNotFound
		}
		s.logger.Error("influencer lookup failed", "influencer_id", ep.InfluencerID, "error", err)
		return nil, domain.ErrStorage.WithError(err)
	}

	apiKey, err := s.credentials.GetHeyGenKey(ctx, ep.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAPIKeyNotFound) {
			s.persistFailed(ctx, ep.InfluencerID, title, script, domain.ErrAPIKeyNotFound.Message)
			return nil, domain.ErrAPIKeyNotFound
		}
		s.logger.Error("credential lookup failed", "user_id", ep.UserID, "error", err)
		return nil, domain.ErrStorage.WithError(err)
	}

	videoID, err := s.provider.Generate(ctx, provider.GenerateRequest{
		TemplateID: influencer.TemplateID,
		Title:      title,
		Script:     script,
		APIKey:     apiKey,
	})
	if err != nil {
		s.logger.Error("provider generate failed",
			"influencer_id", ep.InfluencerID,
			"template_id", influencer.TemplateID,
			"error", err,
		)
		s.persistFailed(ctx, ep.InfluencerID, title, script, err.Error())
		return nil, domain.ErrVideoGeneration.WithError(err)
	}

	content := &domain.Content{
		InfluencerID: ep.InfluencerID,
		Title:        title,
		Script:       script,
		Status:       domain.ContentStatusGenerating,
		VideoID:      &videoID,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		s.logger.Error("failed to persist generating job", "video_id", videoID, "error", err)
		return nil, domain.ErrStorage.WithError(err)
	}

	if err := s.triggers.UpdateLastTriggered(ctx, ep.RegistrationID); err != nil {
		s.logger.Warn("failed to update trigger timestamp", "registration_id", ep.RegistrationID, "error", err)
	}

	s.logger.Info("generation job submitted",
		"content_id", content.ID,
		"influencer_id", ep.InfluencerID,
		"video_id", videoID,
	)

	return content, nil
}

// Complete correlates a provider completion callback to its stored job by
// provider video id, marks it completed, and fans the result out. An unknown
// video id is a no-op not-found: callbacks for jobs this instance never
// stored are dropped. Fan-out problems never roll the job back.
func (s *Service) Complete(ctx context.Context, videoID, videoURL string) (*domain.Content, error) {
	content, err := s.contents.GetByVideoID(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, domain.ErrJobNotFound
		}
		s.logger.Error("job lookup failed", "video_id", videoID, "error", err)
		return nil, domain.ErrStorage.WithError(err)
	}

	if err := s.contents.MarkCompleted(ctx, content.ID, videoURL); err != nil {
		s.logger.Error("failed to mark job completed", "content_id", content.ID, "error", err)
		return nil, domain.ErrStorage.WithError(err)
	}
	content.Status = domain.ContentStatusCompleted
	content.VideoURL = &videoURL

	influencerName := ""
	if influencer, err := s.influencers.GetByID(ctx, content.InfluencerID); err == nil {
		influencerName = influencer.Name
	} else {
		s.logger.Warn("influencer lookup failed for fan-out payload",
			"influencer_id", content.InfluencerID, "error", err)
	}

	event := fanout.Event{
		Event: fanout.EventVideoCompleted,
		Content: fanout.EventContent{
			Title:          content.Title,
			Script:         content.Script,
			InfluencerName: influencerName,
			VideoURL:       videoURL,
			Status:         domain.ContentStatusCompleted,
		},
	}
	if err := s.notifier.Dispatch(ctx, content.InfluencerID, event); err != nil {
		s.logger.Error("fan-out dispatch failed", "content_id", content.ID, "error", err)
	}

	s.logger.Info("generation job completed",
		"content_id", content.ID,
		"video_id", videoID,
	)

	return content, nil
}

// persistFailed records why a submit never produced a provider job. A write
// failure here only loses the failure record, so it is logged and swallowed.
func (s *Service) persistFailed(ctx context.Context, influencerID uuid.UUID, title, script, detail string) {
	content := &domain.Content{
		InfluencerID: influencerID,
		Title:        title,
		Script:       script,
		Status:       domain.ContentStatusFailed,
		Error:        &detail,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		s.logger.Error("failed to persist failed job", "influencer_id", influencerID, "error", err)
	}
}
