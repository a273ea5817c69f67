package monado_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/monado-tools/libmonado-go/internal/mndtest"
	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/monado"
	"github.com/stretchr/testify/require"
)

const fakePath = "/opt/monado/lib/libmonado.so"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(rt *mndtest.Runtime) monado.Config {
	return monado.Config{
		Logger: quietLogger(),
		Loader: rt.Loader(),
	}
}

// connect creates a Monado over rt and closes it when the test ends.
func connect(t *testing.T, rt *mndtest.Runtime) *monado.Monado {
	t.Helper()
	m, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// recordingLogger keeps trace events in memory.
type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingLogger) Events() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]log.Event(nil), r.events...)
}

func (r *recordingLogger) stages() []log.LifecycleStage {
	var stages []log.LifecycleStage
	for _, e := range r.Events() {
		if e.Lifecycle != nil {
			stages = append(stages, e.Lifecycle.Stage)
		}
	}
	return stages
}
