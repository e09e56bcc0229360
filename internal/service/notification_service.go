package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/events"
)

// NotificationService reacts to domain events. Delivery is a logging stub;
// the event wiring is the part the rest of the system depends on.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountLinked, n.handleAccountLinked)
	n.dispatcher.Subscribe(events.EventInvitationCreated, n.handleInvitationCreated)
	n.dispatcher.Subscribe(events.EventInvitationResponded, n.handleInvitationResponded)
	n.dispatcher.Subscribe(events.EventAnnouncementPublished, n.handleAnnouncementPublished)
}

func (n *NotificationService) handleAccountLinked(_ context.Context, event events.Event) error {
	n.logger.Info("AccountLinked", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleInvitationCreated(_ context.Context, event events.Event) error {
	n.logger.Info("InvitationCreated", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleInvitationResponded(_ context.Context, event events.Event) error {
	n.logger.Info("InvitationResponded", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAnnouncementPublished(_ context.Context, event events.Event) error {
	n.logger.Info("AnnouncementPublished", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}
