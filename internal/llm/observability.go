package llm

import "go.uber.org/zap"

// CallEvent records metadata about a single completion-service call.
type CallEvent struct {
	Model     string
	LatencyMs int64
	Success   bool
	Error     string
}

// Observer receives events about completion calls for logging and
// metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver logs call events through a zap logger.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs events via logger.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	if event.Success {
		o.logger.Info("llm call",
			zap.String("model", event.Model),
			zap.Int64("latency_ms", event.LatencyMs),
		)
		return
	}
	o.logger.Warn("llm call failed",
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.String("error", event.Error),
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
