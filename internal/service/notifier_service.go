package service

import (
	"context"
	"strings"

	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/pkg/mailer"
	"product-support-be/pkg/events"
	pktNats "product-support-be/pkg/nats" // Renamed to avoid collision
)

// NotifierService listens for escalation events on the bus and alerts the
// support inbox by email. It runs as a background worker; the chat path
// never waits on mail delivery.
type NotifierService struct {
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	supportInbox string
	logger       logger.ILogger
}

func NewNotifierService(sub *pktNats.Subscriber, emailService mailer.IEmailService, supportInbox string, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber:   sub,
		emailService: emailService,
		supportInbox: supportInbox,
		logger:       log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("events.ESCALATION_CREATED", "escalation-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start escalation subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotifierService", "Notifier started, listening to events.ESCALATION_CREATED", nil)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	if typeCode != "ESCALATION_CREATED" {
		return nil
	}

	payload := event.Payload()
	sessionId, _ := payload["session_id"].(string)
	severity, _ := payload["severity"].(string)
	reason, _ := payload["reason"].(string)

	if sessionId == "" {
		s.logger.Warn("NotifierService", "Escalation event without session_id, dropping", map[string]interface{}{
			"payload": payload,
		})
		return nil
	}

	if err := s.emailService.SendEscalationNotice(s.supportInbox, sessionId, severity, reason); err != nil {
		// Returning the error Naks the message so delivery is retried.
		return err
	}

	s.logger.Info("NotifierService", "Escalation notice delivered", map[string]interface{}{
		"session_id": sessionId,
		"severity":   severity,
	})
	return nil
}
