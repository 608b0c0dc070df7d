package events_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/events"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func TestNoop_SatisfiesPublisherWithoutPanicking(t *testing.T) {
	var p events.Publisher = events.Noop{}
	p.Publish(events.Event{Kind: events.KindNodeCreated, At: time.Now()})
}

func TestLogging_Publish_LogsEventFields(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	p := events.NewLogging(log)
	nodeID, sessionID := ids.NewNodeID(), ids.NewSessionID()
	p.Publish(events.Event{
		Kind:      events.KindPromptSubmitted,
		NodeID:    nodeID,
		SessionID: sessionID,
		At:        time.Now(),
		Detail:    "prompt submitted",
	})

	assert.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "prompt submitted", entry.Message)
	assert.Equal(t, string(events.KindPromptSubmitted), entry.Data["kind"])
	assert.Equal(t, nodeID.String(), entry.Data["node_id"])
	assert.Equal(t, sessionID.String(), entry.Data["session_id"])
}

func TestNewLogging_NilLoggerDefaultsToStandardLogger(t *testing.T) {
	p := events.NewLogging(nil)
	p.Publish(events.Event{Kind: events.KindQueryExecuted, At: time.Now()})
}
