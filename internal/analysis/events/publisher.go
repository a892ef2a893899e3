package events

import (
	"context"

	"github.com/validaeja/validaeja-backend/pkg/logger"
	"github.com/validaeja/validaeja-backend/pkg/messaging"
)

// AnalysisEventPublisher publishes analysis lifecycle events to the laudo
// events exchange. A nil inner publisher disables publishing, which keeps
// the analysis pipeline usable when the broker is not configured.
type AnalysisEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewAnalysisEventPublisher creates a publisher bound to the laudo events exchange.
func NewAnalysisEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*AnalysisEventPublisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeLaudoEvents, "laudo-service", log)
	if err != nil {
		return nil, err
	}

	return &AnalysisEventPublisher{
		publisher: pub,
		logger:    log,
	}, nil
}

// NewNoopAnalysisEventPublisher returns a publisher that drops all events.
// Used in tests and when messaging is disabled.
func NewNoopAnalysisEventPublisher(log *logger.Logger) *AnalysisEventPublisher {
	return &AnalysisEventPublisher{logger: log}
}

// PublishAnalysisCompleted emits an event after a verdict becomes available.
// Publish failures are logged and swallowed; the analysis itself already
// succeeded and must not be rolled back because of the broker.
func (p *AnalysisEventPublisher) PublishAnalysisCompleted(ctx context.Context, event *messaging.AnalysisCompletedEvent) {
	if p == nil || p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, messaging.EventAnalysisCompleted, event); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", event.SessionID).
			Str("analysis_id", event.AnalysisID).
			Msg("failed to publish analysis completed event")
	}
}

// PublishAnalysisFailed emits an event when ingestion or OCR fails and no
// result is stored.
func (p *AnalysisEventPublisher) PublishAnalysisFailed(ctx context.Context, event *messaging.AnalysisFailedEvent) {
	if p == nil || p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, messaging.EventAnalysisFailed, event); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", event.SessionID).
			Msg("failed to publish analysis failed event")
	}
}
