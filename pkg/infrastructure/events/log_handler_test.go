package events

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandler_LogsPlanningEvents(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store := NewInMemoryEventStore()
	handler := &LogHandler{Logger: logger}
	require.NoError(t, store.Subscribe(AllPlanningEvents, handler))

	require.NoError(t, store.AppendEvent("plan-9", NewPlanCompletedEvent("plan-9", "Lot-for-Lot (L4L)", decimal.NewFromInt(10), 2)))
	store.Wait()

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "planning event", entry.Message)
	assert.Equal(t, PlanCompletedEvent, entry.Data["event"])
	assert.Equal(t, "plan-9", entry.Data["plan"])
}

func TestLogHandler_CanHandle(t *testing.T) {
	handler := &LogHandler{}
	for _, eventType := range AllPlanningEvents {
		assert.True(t, handler.CanHandle(eventType))
	}
	assert.False(t, handler.CanHandle("demand.changed"))
}
