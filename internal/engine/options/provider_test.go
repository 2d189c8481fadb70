package options_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/jopts/internal/core/ports/mocks"
	"go.trai.ch/jopts/internal/engine/compilerargs"
	"go.trai.ch/jopts/internal/engine/options"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const declaration = `options.compilerArgs = ['-Xlint:all', "-Werror"]`

var testProject = domain.NewProject("/work/app", "")

// countingExtractor wraps compilerargs.Extract and counts invocations.
func countingExtractor(calls *atomic.Int32) options.ExtractFunc {
	return func(text string) []string {
		calls.Add(1)
		return compilerargs.Extract(text)
	}
}

// staticSource is a BuildScriptSource returning fixed content, safe for concurrent use.
type staticSource struct {
	text  string
	err   error
	reads atomic.Int32
}

func (s *staticSource) ResolveProject(string) (domain.Project, error) {
	return testProject, nil
}

func (s *staticSource) ReadBuildScript(domain.Project) (string, error) {
	s.reads.Add(1)
	return s.text, s.err
}

func TestNewProvider_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)

	_, err := options.NewProvider(domain.Project{}, source, nil)
	require.ErrorIs(t, err, domain.ErrInvalidProject)

	_, err = options.NewProvider(testProject, nil, nil)
	require.ErrorIs(t, err, domain.ErrNilDependency)
}

func TestProvider_Arguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil)

	p, err := options.NewProvider(testProject, source, nil)
	require.NoError(t, err)

	assert.Equal(t, testProject, p.Project())
	assert.False(t, p.Cached())
	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(context.Background()))
	assert.True(t, p.Cached())
}

func TestProvider_ArgumentsIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil).Times(1)

	var calls atomic.Int32
	p, err := options.NewProvider(testProject, source, nil, options.WithExtractor(countingExtractor(&calls)))
	require.NoError(t, err)

	first := p.Arguments(context.Background())
	second := p.Arguments(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_ArgumentsReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil)

	p, err := options.NewProvider(testProject, source, nil)
	require.NoError(t, err)

	args := p.Arguments(context.Background())
	args[0] = "mutated"

	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(context.Background()))
}

func TestProvider_InvalidateRecomputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)

	gomock.InOrder(
		source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil),
		// Unchanged content is still recomputed after an invalidation.
		source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil),
		source.EXPECT().ReadBuildScript(testProject).Return(`options.compilerArgs = ['-g']`, nil),
	)

	var calls atomic.Int32
	p, err := options.NewProvider(testProject, source, nil, options.WithExtractor(countingExtractor(&calls)))
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(ctx))

	p.Invalidate()
	assert.False(t, p.Cached())
	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(ctx))

	p.Invalidate()
	assert.Equal(t, []string{"-g"}, p.Arguments(ctx))
	assert.Equal(t, int32(3), calls.Load())
}

func TestProvider_InvalidateNotifiesSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil).AnyTimes()

	p, err := options.NewProvider(testProject, source, nil)
	require.NoError(t, err)

	var first, second, removed int
	p.Subscribe(func() { first++ })
	p.Subscribe(func() { second++ })
	id := p.Subscribe(func() { removed++ })
	p.Unsubscribe(id)
	p.Unsubscribe(id)

	// Empty state still notifies.
	p.Invalidate()

	_ = p.Arguments(context.Background())
	p.Invalidate()
	p.Invalidate()

	assert.Equal(t, 3, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 0, removed)
}

func TestProvider_SubscriberMayReenter(t *testing.T) {
	source := &staticSource{text: declaration}
	p, err := options.NewProvider(testProject, source, nil)
	require.NoError(t, err)

	var seen []string
	p.Subscribe(func() {
		seen = p.Arguments(context.Background())
		p.Subscribe(func() {})
	})

	done := make(chan struct{})
	go func() {
		p.Invalidate()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Invalidate deadlocked with a re-entrant subscriber")
	}

	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, seen)
	assert.True(t, p.Cached())
}

func TestProvider_MissingBuildScript(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	source.EXPECT().
		ReadBuildScript(testProject).
		Return("", zerr.With(zerr.Wrap(fs.ErrNotExist, domain.ErrBuildScriptReadFailed.Error()), "path", "/work/app/build.gradle")).
		Times(1)

	p, err := options.NewProvider(testProject, source, nil, options.WithLogger(logger))
	require.NoError(t, err)

	assert.Empty(t, p.Arguments(context.Background()))
	// The empty result is cached like any other.
	assert.Empty(t, p.Arguments(context.Background()))
	assert.True(t, p.Cached())
}

func TestProvider_ReadErrorIsLoggedAndSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	source.EXPECT().ReadBuildScript(testProject).Return("", errors.New("permission denied")).Times(1)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	p, err := options.NewProvider(testProject, source, nil, options.WithLogger(logger))
	require.NoError(t, err)

	assert.Empty(t, p.Arguments(context.Background()))
	assert.Empty(t, p.Arguments(context.Background()))
}

func TestProvider_RegistersWithChangeSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockBuildScriptSource(ctrl)
	changes := mocks.NewMockChangeSource(ctrl)

	var onChange func()
	cancels := 0
	changes.EXPECT().
		Register(testProject, gomock.Any()).
		DoAndReturn(func(_ domain.Project, fn func()) func() {
			onChange = fn
			return func() { cancels++ }
		})
	source.EXPECT().ReadBuildScript(testProject).Return(declaration, nil).Times(2)

	p, err := options.NewProvider(testProject, source, changes)
	require.NoError(t, err)
	require.NotNil(t, onChange)

	notified := 0
	p.Subscribe(func() { notified++ })

	_ = p.Arguments(context.Background())
	onChange()
	assert.False(t, p.Cached())
	assert.Equal(t, 1, notified)
	_ = p.Arguments(context.Background())

	p.Close()
	p.Close()
	assert.Equal(t, 1, cancels)
}

func TestProvider_ConcurrentReadersShareOneValue(t *testing.T) {
	const readers = 64

	source := &staticSource{text: declaration}
	var calls atomic.Int32
	slow := func(text string) []string {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return compilerargs.Extract(text)
	}

	p, err := options.NewProvider(testProject, source, nil, options.WithExtractor(slow))
	require.NoError(t, err)

	results := make([][]string, readers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := range readers {
		go func() {
			defer wg.Done()
			<-start
			results[i] = p.Arguments(context.Background())
		}()
	}
	close(start)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"-Xlint:all", "-Werror"}, r)
	}
	assert.LessOrEqual(t, int(calls.Load()), 3)
	assert.Equal(t, calls.Load(), source.reads.Load())
}

func TestProvider_InvalidateDuringComputeDropsStaleValue(t *testing.T) {
	source := &staticSource{text: declaration}
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	blocking := func(text string) []string {
		once.Do(func() {
			close(started)
			<-release
		})
		return compilerargs.Extract(text)
	}

	p, err := options.NewProvider(testProject, source, nil, options.WithExtractor(blocking))
	require.NoError(t, err)

	done := make(chan []string)
	go func() {
		done <- p.Arguments(context.Background())
	}()

	<-started
	p.Invalidate()
	close(release)

	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, <-done)
	assert.False(t, p.Cached())
	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(context.Background()))
	assert.Equal(t, int32(2), source.reads.Load())
}

func TestProvider_ComputeIgnoresCallerCancellation(t *testing.T) {
	source := &staticSource{text: declaration}
	p, err := options.NewProvider(testProject, source, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, []string{"-Xlint:all", "-Werror"}, p.Arguments(ctx))
}

// recordingTracer captures span names and attributes.
type recordingTracer struct {
	mu    sync.Mutex
	spans []*recordingSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	s := &recordingSpan{name: name, attrs: cfg.Attributes}
	r.mu.Lock()
	r.spans = append(r.spans, s)
	r.mu.Unlock()
	return ctx, s
}

type recordingSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

func (s *recordingSpan) End()                { s.ended = true }
func (s *recordingSpan) RecordError(e error) { s.err = e }
func (s *recordingSpan) SetAttribute(k string, v any) {
	if s.attrs == nil {
		s.attrs = make(map[string]any)
	}
	s.attrs[k] = v
}

func TestProvider_TracesComputation(t *testing.T) {
	tracer := &recordingTracer{}
	readErr := errors.New("io failure")

	ok, err := options.NewProvider(testProject, &staticSource{text: declaration}, nil, options.WithTracer(tracer))
	require.NoError(t, err)
	failing, err := options.NewProvider(testProject, &staticSource{err: readErr}, nil, options.WithTracer(tracer))
	require.NoError(t, err)

	_ = ok.Arguments(context.Background())
	_ = ok.Arguments(context.Background())
	_ = failing.Arguments(context.Background())

	require.Len(t, tracer.spans, 2)

	s := tracer.spans[0]
	assert.Equal(t, "options.compute", s.name)
	assert.True(t, s.ended)
	assert.Equal(t, "/work/app", s.attrs["project.root"])
	assert.Equal(t, 2, s.attrs["args.count"])
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64String(declaration)), s.attrs["script.digest"])
	assert.NoError(t, s.err)

	s = tracer.spans[1]
	assert.True(t, s.ended)
	assert.ErrorIs(t, s.err, readErr)
	assert.Equal(t, 0, s.attrs["args.count"])
	assert.NotContains(t, s.attrs, "script.digest")
}
