package events

import "github.com/sirupsen/logrus"

// AllPlanningEvents lists every event type a plan evaluation emits
var AllPlanningEvents = []string{
	OrderPlannedEvent,
	ReceiptScheduledEvent,
	PolicyEvaluatedEvent,
	PlanCompletedEvent,
}

// LogHandler writes every planning event to a logrus logger at debug level
type LogHandler struct {
	Logger logrus.FieldLogger
}

func (h *LogHandler) Handle(event Event) error {
	logger := h.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"event":   event.Type(),
		"plan":    event.StreamID(),
		"version": event.Version(),
		"data":    event.Data(),
	}).Debug("planning event")
	return nil
}

func (h *LogHandler) CanHandle(eventType string) bool {
	for _, t := range AllPlanningEvents {
		if t == eventType {
			return true
		}
	}
	return false
}
