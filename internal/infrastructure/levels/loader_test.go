package levels

import (
	"bytes"
	"log"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

func newTestLoader(t *testing.T) (*Loader, *bytes.Buffer) {
	t.Helper()
	fsys := fstest.MapFS{
		"levels/Main.yaml":   {Data: []byte("name: Main\ntitle: Main Hall\n")},
		"levels/Arena.yaml":  {Data: []byte("name: Arena\n")},
		"levels/Broken.yaml": {Data: []byte("props: {")},
	}
	var logs bytes.Buffer
	return NewLoader(config.NewFSLoader(fsys, "mem"), log.New(&logs, "", 0)), &logs
}

// settle waits for background reads and delivers their completions
func settle(l *Loader) int {
	l.Wait()
	return l.Pump()
}

type hookRecorder struct {
	events []string
}

func (h *hookRecorder) hooks() Hooks {
	return Hooks{
		Loaded:   func(cfg *config.LevelConfig) { h.events = append(h.events, "loaded:"+cfg.Name) },
		Unloaded: func(name string) { h.events = append(h.events, "unloaded:"+name) },
	}
}

func TestLoader_LoadAsync(t *testing.T) {
	l, _ := newTestLoader(t)
	rec := &hookRecorder{}
	l.SetHooks(rec.hooks())

	op, err := l.LoadAsync("Main")
	require.NoError(t, err)

	var completed []string
	op.OnComplete(func(o coordinator.Operation) {
		completed = append(completed, o.ID())
		assert.True(t, l.IsLoaded("Main"), "level is loaded before callbacks run")
	})

	l.Wait()
	assert.Empty(t, completed, "completion waits for Pump")
	assert.Equal(t, 1, l.Loading())

	assert.Equal(t, 1, l.Pump())
	assert.Equal(t, []string{op.ID()}, completed)
	assert.Equal(t, []string{"loaded:Main"}, rec.events)
	assert.Equal(t, []string{"Main"}, l.Loaded())
	assert.Equal(t, 0, l.Loading())

	cfg, ok := l.Level("Main")
	require.True(t, ok)
	assert.Equal(t, "Main Hall", cfg.Title)

	levelOp := op.(*Operation)
	assert.True(t, levelOp.Done())
	assert.Equal(t, KindLoad, levelOp.Kind())
	assert.Equal(t, "Main", levelOp.Level())
	assert.NoError(t, levelOp.Err())
}

func TestLoader_LoadAsyncScheduleFailures(t *testing.T) {
	l, _ := newTestLoader(t)

	_, err := l.LoadAsync("Nowhere")
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, err = l.LoadAsync("Main")
	require.NoError(t, err)
	_, err = l.LoadAsync("Main")
	assert.ErrorIs(t, err, ErrAlreadyLoaded, "still loading")

	settle(l)
	_, err = l.LoadAsync("Main")
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
}

func TestLoader_LoadFailureStillCompletes(t *testing.T) {
	l, logs := newTestLoader(t)
	rec := &hookRecorder{}
	l.SetHooks(rec.hooks())

	op, err := l.LoadAsync("Broken")
	require.NoError(t, err)
	done := false
	op.OnComplete(func(coordinator.Operation) { done = true })

	settle(l)

	assert.True(t, done)
	assert.Error(t, op.(*Operation).Err())
	assert.False(t, l.IsLoaded("Broken"))
	assert.Empty(t, rec.events)
	assert.Contains(t, logs.String(), "failed to load Broken")

	_, err = l.LoadAsync("Broken")
	assert.NoError(t, err, "a failed level can be requested again")
}

func TestLoader_UnloadAsync(t *testing.T) {
	l, _ := newTestLoader(t)
	rec := &hookRecorder{}
	l.SetHooks(rec.hooks())

	_, err := l.UnloadAsync("Main")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = l.LoadAsync("Main")
	require.NoError(t, err)
	_, err = l.UnloadAsync("Main")
	assert.ErrorIs(t, err, ErrNotLoaded, "cannot unload a level still loading")
	settle(l)

	op, err := l.UnloadAsync("Main")
	require.NoError(t, err)
	assert.False(t, l.IsLoaded("Main"), "leaves the loaded set at once")

	done := false
	op.OnComplete(func(coordinator.Operation) { done = true })
	assert.False(t, done)

	assert.Equal(t, 1, l.Pump())
	assert.True(t, done)
	assert.Equal(t, KindUnload, op.(*Operation).Kind())
	assert.Equal(t, []string{"loaded:Main", "unloaded:Main"}, rec.events)
}

func TestLoader_ReloadInOneFrame(t *testing.T) {
	l, _ := newTestLoader(t)
	rec := &hookRecorder{}
	l.SetHooks(rec.hooks())
	_, err := l.LoadAsync("Main")
	require.NoError(t, err)
	settle(l)

	_, err = l.UnloadAsync("Main")
	require.NoError(t, err)
	_, err = l.LoadAsync("Main")
	require.NoError(t, err)
	settle(l)

	assert.Equal(t, []string{"loaded:Main", "unloaded:Main", "loaded:Main"}, rec.events)
	assert.True(t, l.IsLoaded("Main"))
}

func TestLoader_ManyLoads(t *testing.T) {
	l, _ := newTestLoader(t)

	a, err := l.LoadAsync("Main")
	require.NoError(t, err)
	b, err := l.LoadAsync("Arena")
	require.NoError(t, err)

	assert.Equal(t, 2, settle(l))
	assert.True(t, a.(*Operation).Done())
	assert.True(t, b.(*Operation).Done())
	assert.Equal(t, []string{"Arena", "Main"}, l.Loaded())
	assert.Equal(t, 0, l.Pump(), "nothing left to deliver")
}

func TestOperation_OnCompleteAfterDone(t *testing.T) {
	op := newOperation(KindLoad, "Main")
	op.complete()

	called := false
	op.OnComplete(func(coordinator.Operation) { called = true })
	assert.True(t, called)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "load", KindLoad.String())
	assert.Equal(t, "unload", KindUnload.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestLoader_DrivesCoordinator(t *testing.T) {
	l, _ := newTestLoader(t)
	c := coordinator.New(coordinator.Options{Loader: l, Logger: log.New(&bytes.Buffer{}, "", 0)})

	require.NoError(t, c.RequestLoad("Main"))
	require.NoError(t, c.RequestLoad("Arena"))
	assert.ErrorIs(t, c.RequestLoad("Nowhere"), coordinator.ErrLoadSchedule)

	settle(l)
	assert.Equal(t, "Running", c.State().String())
	assert.Equal(t, 0, c.PendingLoads())

	require.NoError(t, c.RequestUnload("Arena"))
	assert.ErrorIs(t, c.RequestUnload("Arena"), coordinator.ErrUnloadSchedule)
}
