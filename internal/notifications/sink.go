package notifications

import (
	"context"

	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
)

// Event is a semantic notification emitted by the core. The sink owns any
// user-facing formatting; the core never builds display text.
type Event struct {
	Type     enums.NotificationEvent `json:"type"`
	Severity enums.Severity          `json:"severity"`
	Message  string                  `json:"message"`
	OrderRef string                  `json:"order_ref,omitempty"`
}

// Sink receives user-visible feedback events.
type Sink interface {
	Notify(ctx context.Context, event Event)
}

type logSink struct {
	logg *logger.Logger
}

// NewLogSink emits notification events as structured log entries.
func NewLogSink(logg *logger.Logger) Sink {
	return &logSink{logg: logg}
}

func (s *logSink) Notify(ctx context.Context, event Event) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"event":    string(event.Type),
		"severity": string(event.Severity),
	})
	if event.OrderRef != "" {
		ctx = s.logg.WithOrderRef(ctx, event.OrderRef)
	}
	if event.Severity == enums.SeverityError {
		s.logg.Warn(ctx, event.Message)
		return
	}
	s.logg.Info(ctx, event.Message)
}
