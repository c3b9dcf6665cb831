package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/noc-fault-service/internal/config"
	"github.com/spec-kit/noc-fault-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFaultCreated, n.handleFaultCreated)
	n.dispatcher.Subscribe(events.EventFaultStatusChanged, n.handleFaultStatusChanged)
	n.dispatcher.Subscribe(events.EventFaultNoteAdded, n.handleFaultNoteAdded)
}

func (n *NotificationService) handleFaultCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("FaultCreated", zap.String("fault_id", event.FaultID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFaultStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("FaultStatusChanged", zap.String("fault_id", event.FaultID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFaultNoteAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("FaultNoteAdded", zap.String("fault_id", event.FaultID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("fault_id", event.FaultID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("fault_id", event.FaultID),
		zap.String("event_type", string(event.Type)))
}
