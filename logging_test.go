package activeobject

import (
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logEvent is a minimal logiface.Event implementation that records its
// fields, including the message, which lands under the `msg` key.
type logEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	fields map[string]any
}

func (x *logEvent) Level() logiface.Level        { return x.level }
func (x *logEvent) AddField(key string, val any) { x.fields[key] = val }

type logEventFactory struct{}

func (logEventFactory) NewEvent(level logiface.Level) *logEvent {
	return &logEvent{level: level, fields: make(map[string]any)}
}

// logEventSink collects written events for later inspection.
type logEventSink struct {
	mu     sync.Mutex
	events []*logEvent
}

func (x *logEventSink) Write(event *logEvent) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.events = append(x.events, event)
	return nil
}

func (x *logEventSink) snapshot() []*logEvent {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]*logEvent(nil), x.events...)
}

func newTestLogger(sink *logEventSink) *logiface.Logger[logiface.Event] {
	return logiface.New[*logEvent](
		logiface.WithEventFactory[*logEvent](logEventFactory{}),
		logiface.WithWriter[*logEvent](sink),
		logiface.WithLevel[*logEvent](logiface.LevelTrace),
	).Logger()
}

func TestLogging_lifecycleEvents(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	sink := &logEventSink{}
	obj := New(counter{}, &Config[counter]{Logger: newTestLogger(sink)})

	// A blocking call, so the worker has provably started (and logged as
	// much) before shutdown begins.
	require.NoError(t, obj.Do(func(state *counter) { state.n++ }))
	require.NoError(t, obj.Close())

	events := sink.snapshot()
	require.Len(t, events, 3)

	assert.Equal(t, logiface.LevelTrace, events[0].level)
	assert.Equal(t, `worker started`, events[0].fields[`msg`])

	assert.Equal(t, logiface.LevelDebug, events[1].level)
	assert.Equal(t, `shutdown requested`, events[1].fields[`msg`])

	assert.Equal(t, logiface.LevelDebug, events[2].level)
	assert.Equal(t, `worker exited`, events[2].fields[`msg`])
	assert.Equal(t, `1`, events[2].fields[`executed`])
	assert.Equal(t, `0`, events[2].fields[`recovered`])

	for i, event := range events {
		assert.Contains(t, event.fields, `object`, `event %d`, i)
	}
}

func TestLogging_asyncPanicLogged(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	sink := &logEventSink{}
	obj := New(counter{}, &Config[counter]{Logger: newTestLogger(sink)})

	require.NoError(t, obj.DoAsync(func(state *counter) { panic(`kaboom`) }))
	// Blocking call as a sync point: the panic has been recovered and
	// logged by the time this returns.
	require.NoError(t, obj.Do(func(state *counter) {}))

	var panicked *logEvent
	for _, event := range sink.snapshot() {
		if event.fields[`msg`] == `operation panicked` {
			panicked = event
			break
		}
	}
	require.NotNil(t, panicked, `expected a panic event to be logged`)
	assert.Equal(t, logiface.LevelError, panicked.level)
	assert.Equal(t, `kaboom`, panicked.fields[`recovered`])
	assert.Contains(t, panicked.fields, `stack`)
	assert.NotEmpty(t, panicked.fields[`stack`])

	require.NoError(t, obj.Close())
	assert.Equal(t, uint64(1), obj.Stats().Recovered)
}

func TestLogging_nilLoggerIsSilent(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	// No logger configured: faults are still recovered and counted, and
	// nothing crashes on the nil logger.
	obj := New(counter{}, nil)
	require.NoError(t, obj.DoAsync(func(state *counter) { panic(`kaboom`) }))
	require.NoError(t, obj.Do(func(state *counter) {}))
	require.NoError(t, obj.Close())
	assert.Equal(t, uint64(1), obj.Stats().Recovered)
}
