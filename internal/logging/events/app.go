package events

import "github.com/atomfield/reelcode/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

// Start records the process startup context: flags, argv, executable,
// terminal probes.
func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

// Exit records an error that ended the program.
func (AppTracer) Exit(err error) {
	if err == nil {
		logging.Trace("app.exit", nil)
		return
	}
	logging.Trace("app.exit", map[string]interface{}{"error": err.Error()})
}
