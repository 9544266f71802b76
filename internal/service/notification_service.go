package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/config"
	"github.com/swiftapp/staff-service/internal/events"
)

// NotificationService handles emitting notifications for roster events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	timeout := time.Duration(cfg.WebhookTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: timeout},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEmployeeInvited, n.handleInvitation)
	n.dispatcher.Subscribe(events.EventContractorInvited, n.handleInvitation)
	n.dispatcher.Subscribe(events.EventContractorAdded, n.handleRosterChange)
	n.dispatcher.Subscribe(events.EventStaffUpdated, n.handleRosterChange)
	n.dispatcher.Subscribe(events.EventStaffRemoved, n.handleRosterChange)
	n.dispatcher.Subscribe(events.EventInvitationExpired, n.handleInvitationExpired)
}

func (n *NotificationService) handleInvitation(ctx context.Context, event events.Event) error {
	n.logger.Info("InvitationSent", zap.String("staff_id", event.StaffID), zap.String("event_type", string(event.Type)))
	if payload, ok := event.Payload.(events.InvitationPayload); ok {
		n.sendEmail(payload.Email, "You have been invited to Swift", event)
	}
	return n.postWebhook(ctx, event)
}

func (n *NotificationService) handleRosterChange(ctx context.Context, event events.Event) error {
	n.logger.Info("RosterChanged", zap.String("staff_id", event.StaffID), zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	return n.postWebhook(ctx, event)
}

func (n *NotificationService) handleInvitationExpired(ctx context.Context, event events.Event) error {
	n.logger.Info("InvitationExpired", zap.String("staff_id", event.StaffID))
	if payload, ok := event.Payload.(events.InvitationExpiredPayload); ok {
		n.sendEmail(payload.Email, "Your Swift invitation has expired", event)
	}
	return n.postWebhook(ctx, event)
}

// sendEmail only logs; there is no mail transport yet.
func (n *NotificationService) sendEmail(to, subject string, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || to == "" {
		return
	}
	n.logger.Debug("sendEmail",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) error {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", event.Type, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook %s: status %d", event.Type, resp.StatusCode)
	}
	return nil
}
