package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/ticketflow/ticketflow/internal/events"
)

// StartEventLogger subscribes an audit logger to ticket lifecycle
// events so every mutation leaves a structured trace.
func StartEventLogger(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	log := func(name string) events.EventHandler {
		return func(_ context.Context, event events.Event) error {
			logger.Info(name,
				zap.String("event_id", event.ID),
				zap.String("ticket_id", event.TicketID),
				zap.Any("payload", event.Payload),
			)
			return nil
		}
	}
	dispatcher.Subscribe(events.EventTicketCreated, log("TicketCreated"))
	dispatcher.Subscribe(events.EventTicketUpdated, log("TicketUpdated"))
	dispatcher.Subscribe(events.EventTicketDeleted, log("TicketDeleted"))
}
