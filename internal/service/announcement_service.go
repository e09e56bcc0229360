package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/events"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

const (
	generalFeedCacheKey = "announcements:general"
	generalFeedCacheTTL = time.Minute
	generalFeedLimit    = 50
)

// AnnouncementService manages classroom and campus-wide announcements. The
// general feed is read far more often than it changes, so it sits behind a
// short-lived Redis cache invalidated on publish.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	cache         *redis.Client
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewAnnouncementService builds the service. cache may be nil; the service
// then always reads through to Postgres.
func NewAnnouncementService(announcements repository.AnnouncementRepository, cache *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		cache:         cache,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Publish stores the announcement and invalidates the general feed cache
// when it lands there.
func (s *AnnouncementService) Publish(ctx context.Context, ann *domain.Announcement) error {
	if strings.TrimSpace(ann.Title) == "" || strings.TrimSpace(ann.Content) == "" {
		return apperrors.NewValidationError("announcement title and content required", nil)
	}
	ann.IsActive = true
	ann.IsGeneral = ann.ClassroomID == nil

	if err := s.announcements.Create(ctx, ann); err != nil {
		return err
	}

	if ann.IsGeneral {
		s.invalidateGeneralFeed(ctx)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAnnouncementPublished,
			Subject:   ann.Title,
			Timestamp: time.Now(),
			Payload: events.AnnouncementPublishedPayload{
				AnnouncementID: ann.ID,
				Title:          ann.Title,
				IsGeneral:      ann.IsGeneral,
			},
		})
	}
	return nil
}

// GeneralFeed returns the campus-wide feed, served from cache when warm.
// Cache failures degrade to a direct read; the cache is never a source of
// truth.
func (s *AnnouncementService) GeneralFeed(ctx context.Context) ([]domain.Announcement, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, generalFeedCacheKey).Result(); err == nil {
			var cached []domain.Announcement
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	feed, err := s.announcements.ListGeneral(ctx, generalFeedLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(feed); err == nil {
			if err := s.cache.Set(ctx, generalFeedCacheKey, raw, generalFeedCacheTTL).Err(); err != nil {
				s.logger.Debug("general feed cache write failed", zap.Error(err))
			}
		}
	}
	return feed, nil
}

// ListByClassroom lists active announcements inside a classroom.
func (s *AnnouncementService) ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Announcement, error) {
	return s.announcements.ListByClassroom(ctx, classroomID)
}

// Remove deactivates an announcement; only the author may remove it.
func (s *AnnouncementService) Remove(ctx context.Context, id, callerID int64) error {
	ann, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if ann.AuthorID != callerID {
		return apperrors.NewForbidden("only the author may remove the announcement")
	}
	if err := s.announcements.Deactivate(ctx, id); err != nil {
		return err
	}
	if ann.IsGeneral {
		s.invalidateGeneralFeed(ctx)
	}
	return nil
}

func (s *AnnouncementService) invalidateGeneralFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, generalFeedCacheKey).Err(); err != nil {
		s.logger.Debug("general feed cache invalidation failed", zap.Error(err))
	}
}
