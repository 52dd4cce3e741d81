package i18nkeys

import "time"

// SelectorLogEvent describes a completed catalog selection for logging.
type SelectorLogEvent struct {
	Engine   string
	Expr     string
	Total    int
	Matched  int
	Duration time.Duration
	Err      error
}

// SelectorLogger records selection events.
type SelectorLogger interface {
	LogSelection(SelectorLogEvent)
}

// SelectorLoggerFunc adapts a function to SelectorLogger.
type SelectorLoggerFunc func(SelectorLogEvent)

// LogSelection implements SelectorLogger.
func (f SelectorLoggerFunc) LogSelection(event SelectorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopSelectorLogger struct{}

func (noopSelectorLogger) LogSelection(SelectorLogEvent) {}

// WithSelectorLogger attaches a selection logger to the catalog.
func WithSelectorLogger(logger SelectorLogger) Option {
	return func(cfg *catalogConfig) {
		if logger == nil {
			cfg.logger = noopSelectorLogger{}
			return
		}
		cfg.logger = logger
	}
}

func (c *Catalog) selectorLogger() SelectorLogger {
	if c.logger != nil {
		return c.logger
	}
	return noopSelectorLogger{}
}
