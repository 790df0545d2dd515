package service

import (
	"context"
	"time"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/entity"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/events"
	"product-support-be/pkg/nats"

	"github.com/google/uuid"
)

type IEscalationService interface {
	Record(ctx context.Context, sessionId, messageId uuid.UUID, severity string, triggerTypes []string, reason string) (*entity.Escalation, error)
	Resolve(ctx context.Context, escalationId uuid.UUID) error
	ListOpen(ctx context.Context) ([]*entity.Escalation, error)
}

type escalationService struct {
	uowFactory unitofwork.RepositoryFactory
	natsPub    *nats.Publisher
	log        logger.ILogger
}

func NewEscalationService(
	uowFactory unitofwork.RepositoryFactory,
	natsPub *nats.Publisher,
	log logger.ILogger,
) IEscalationService {
	return &escalationService{
		uowFactory: uowFactory,
		natsPub:    natsPub,
		log:        log,
	}
}

// Record persists an escalation and announces it on the event bus so the
// notifier can alert a human agent. Bus failures are logged, not returned:
// the stored row is the durable record.
func (s *escalationService) Record(ctx context.Context, sessionId, messageId uuid.UUID, severity string, triggerTypes []string, reason string) (*entity.Escalation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	escalation := &entity.Escalation{
		Id:           uuid.New(),
		SessionId:    sessionId,
		MessageId:    messageId,
		Severity:     severity,
		TriggerTypes: triggerTypes,
		Reason:       reason,
		Status:       constant.EscalationStatusOpen,
		CreatedAt:    time.Now(),
	}
	if err := uow.EscalationRepository().Create(ctx, escalation); err != nil {
		return nil, err
	}

	if s.natsPub != nil {
		evt := events.BaseEvent{
			Type: "ESCALATION_CREATED",
			Data: map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"session_id":    sessionId.String(),
				"severity":      severity,
				"reason":        reason,
			},
			OccurredAt: time.Now(),
		}
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.log.Error("escalation", "failed to publish escalation event", map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	s.log.Warn("escalation", "escalation recorded", map[string]interface{}{
		"escalation_id": escalation.Id.String(),
		"session_id":    sessionId.String(),
		"severity":      severity,
	})
	return escalation, nil
}

func (s *escalationService) Resolve(ctx context.Context, escalationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	escalation, err := uow.EscalationRepository().FindOne(ctx, specification.ByID{ID: escalationId})
	if err != nil {
		return err
	}
	if escalation == nil {
		return apperr.NotFound("escalation", escalationId.String())
	}
	if escalation.Status == constant.EscalationStatusResolved {
		return apperr.PreconditionFailed("escalation is already resolved", escalation.Status)
	}

	now := time.Now()
	escalation.Status = constant.EscalationStatusResolved
	escalation.ResolvedAt = &now
	return uow.EscalationRepository().Update(ctx, escalation)
}

func (s *escalationService) ListOpen(ctx context.Context) ([]*entity.Escalation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EscalationRepository().FindAll(ctx,
		specification.ByStatus{Status: constant.EscalationStatusOpen},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}
