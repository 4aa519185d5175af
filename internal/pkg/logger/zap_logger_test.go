package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("CHAT", "turn completed", map[string]interface{}{"session_id": "s1"})
	l.Warn("CHAT", "no details", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "turn completed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "CHAT", ctx["module"])
	assert.Equal(t, map[string]interface{}{"session_id": "s1"}, ctx["details"])
}

func TestZapLogger_ErrorAddsReference(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Error("AUTH", "store down", map[string]interface{}{"error": errors.New("dial tcp").Error()})

	entries := logs.FilterMessage("store down").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dial tcp", entries[0].ContextMap()["error_ref"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("X", "ignored", nil)
	assert.NoError(t, l.Sync())
}

func TestWatermillAdapter_MergesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := NewWatermillAdapter(NewFromZap(zap.New(core))).
		With(map[string]interface{}{"topic": "knowledge.changed"})

	adapter.Error("publish failed", errors.New("closed"), map[string]interface{}{"uuid": "m1"})

	entries := logs.All()
	require.Len(t, entries, 1)
	details := entries[0].ContextMap()["details"].(map[string]interface{})
	assert.Equal(t, "knowledge.changed", details["topic"])
	assert.Equal(t, "m1", details["uuid"])
	assert.Equal(t, "closed", details["error"])
	assert.Equal(t, "EVENTBUS", entries[0].ContextMap()["module"])
}
