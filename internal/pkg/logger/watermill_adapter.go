package logger

import (
	"maps"

	"github.com/ThreeDotsLabs/watermill"
)

// WatermillAdapter routes watermill's internal logs into an ILogger.
type WatermillAdapter struct {
	log    ILogger
	fields watermill.LogFields
}

var _ watermill.LoggerAdapter = &WatermillAdapter{}

func NewWatermillAdapter(log ILogger) *WatermillAdapter {
	return &WatermillAdapter{log: log}
}

func (a *WatermillAdapter) details(fields watermill.LogFields) map[string]interface{} {
	out := make(map[string]interface{}, len(a.fields)+len(fields))
	maps.Copy(out, a.fields)
	maps.Copy(out, fields)
	return out
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	d := a.details(fields)
	if err != nil {
		d["error"] = err.Error()
	}
	a.log.Error("EVENTBUS", msg, d)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info("EVENTBUS", msg, a.details(fields))
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug("EVENTBUS", msg, a.details(fields))
}

// Trace is mapped to Debug; zap has no lower level.
func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug("EVENTBUS", msg, a.details(fields))
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{log: a.log, fields: a.details(fields)}
}
