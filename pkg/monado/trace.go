package monado

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// tracer emits trace events for one connection. It must not reference the
// Monado so the cleanup path can use it.
type tracer struct {
	connID string
	path   string
	out    log.Logger
}

func newTracer(path string, out log.Logger) *tracer {
	return &tracer{
		connID: uuid.NewString(),
		path:   path,
		out:    out,
	}
}

func (t *tracer) event(category log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Category:     category,
		LibraryPath:  t.path,
	}
}

func (t *tracer) call(function, target string, status mnd.Result, d time.Duration) {
	e := t.event(log.CategoryCall)
	e.Call = &log.CallEvent{
		Function: function,
		Target:   target,
		Status:   status,
		Duration: d,
	}
	t.out.Log(e)
}

func (t *tracer) lifecycle(stage log.LifecycleStage, version, reason string) {
	e := t.event(log.CategoryLifecycle)
	e.Lifecycle = &log.LifecycleEvent{
		Stage:   stage,
		Version: version,
		Reason:  reason,
	}
	t.out.Log(e)
}

func (t *tracer) failure(context string, code mnd.Result, err error) {
	e := t.event(log.CategoryError)
	e.Error = &log.ErrorEventData{
		Message: err.Error(),
		Code:    &code,
		Context: context,
	}
	t.out.Log(e)
}

func clientTarget(id uint32) string { return "client " + strconv.FormatUint(uint64(id), 10) }
func deviceTarget(i uint32) string  { return "device " + strconv.FormatUint(uint64(i), 10) }
func originTarget(id uint32) string { return "origin " + strconv.FormatUint(uint64(id), 10) }
