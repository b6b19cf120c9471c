package coordinator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"glance/internal/event"
	"glance/internal/log"
	"glance/internal/preview"
	"glance/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingResolver remembers every path it was asked to load
type recordingResolver struct {
	loads []string
	sizes []types.Size
}

func (r *recordingResolver) Resolve(path string, size types.Size) *preview.Preview {
	r.loads = append(r.loads, path)
	r.sizes = append(r.sizes, size)
	return preview.New(path, &preview.Text{Lines: []string{path}})
}

func fixedSize() types.Size { return types.NewSize(80, 24) }

func newTestCoordinator(r Resolver) (*Coordinator, *event.Queue) {
	q := event.NewQueue()
	return New(q, r, WithLogger(log.NewLogger(log.WithOutput(io.Discard)))), q
}

func TestIdenticalConsecutiveRequestsReloadOnce(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()

	for _, p := range []string{"x", "x", "y"} {
		q.Send(event.PathRequested{Source: "s", Path: p})
		c.Tick(fixedSize)
	}

	assert.Equal(t, []string{"x", "y"}, r.loads)
	assert.Equal(t, "y", c.Current().Path)
	assert.Equal(t, "x", c.Previous().Path)
}

func TestOnlyLatestRequestPerTickIsLoaded(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()

	q.Send(event.PathRequested{Source: "s", Path: "/1"})
	q.Send(event.PathRequested{Source: "s", Path: "/2"})
	q.Send(event.PathRequested{Source: "s", Path: "/3"})

	out := c.Tick(fixedSize)
	assert.True(t, out.Reloaded)
	assert.True(t, out.Changed())
	assert.Equal(t, []string{"/3"}, r.loads)
	assert.Equal(t, []types.Size{fixedSize()}, r.sizes)
	assert.Equal(t, 0, c.Pending())
}

func TestEmptyTickChangesNothing(t *testing.T) {
	r := &recordingResolver{}
	c, _ := newTestCoordinator(r)
	c.AddSource()

	sizeCalls := 0
	out := c.Tick(func() types.Size { sizeCalls++; return fixedSize() })
	assert.Equal(t, Outcome{}, out)
	assert.Nil(t, c.Current())
	assert.Zero(t, sizeCalls, "size is only queried for a reload")
}

func TestTerminationAfterEverySourceCloses(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d sources", n), func(t *testing.T) {
			r := &recordingResolver{}
			c, q := newTestCoordinator(r)
			for i := 0; i < n; i++ {
				c.AddSource()
			}

			for i := 0; i < n; i++ {
				src := fmt.Sprintf("src-%d", i)
				q.Send(event.PathRequested{Source: src, Path: fmt.Sprintf("/p%d", i)})
				q.Send(event.SourceFailed{Source: src, Err: fmt.Errorf("hiccup")})
				q.Send(event.SourceClosed{Source: src})
			}

			for i := 0; i < n; i++ {
				require.False(t, c.Done(), "quit before all %d sources closed", n)
				out := c.Tick(fixedSize)
				require.True(t, out.Closed)
				assert.Equal(t, i == n-1, out.Quit)
			}
			assert.True(t, c.Done())
			assert.Equal(t, 0, c.LiveSources())

			out := c.Tick(fixedSize)
			assert.True(t, out.Quit, "a finished coordinator keeps reporting quit")
		})
	}
}

func TestDrainStopsAtSourceClosed(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()
	c.AddSource()

	q.Send(event.PathRequested{Source: "a", Path: "/before"})
	q.Send(event.SourceClosed{Source: "a"})
	q.Send(event.PathRequested{Source: "b", Path: "/after"})

	out := c.Tick(fixedSize)
	assert.True(t, out.Closed)
	assert.True(t, out.Reloaded)
	assert.False(t, out.Quit)
	assert.Equal(t, []string{"/before"}, r.loads, "requests behind the closure wait")
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, 1, c.LiveSources())

	out = c.Tick(fixedSize)
	assert.True(t, out.Reloaded)
	assert.False(t, out.Closed)
	assert.Equal(t, []string{"/before", "/after"}, r.loads)
}

func TestClosureAloneStillCounts(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()

	q.Send(event.SourceClosed{Source: "only"})
	out := c.Tick(fixedSize)
	assert.Equal(t, Outcome{Closed: true, Quit: true}, out)
	assert.Empty(t, r.loads)
}

func TestSourceFailureInstallsErrorPreview(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()

	q.Send(event.PathRequested{Source: "s", Path: "/a"})
	c.Tick(fixedSize)

	q.Send(event.SourceFailed{Source: "s", Err: fmt.Errorf("read interrupted")})
	out := c.Tick(fixedSize)
	assert.True(t, out.Failed)
	require.NotNil(t, c.Current())
	assert.Equal(t, preview.ErrorLabel, c.Current().Path)
	assert.Equal(t, preview.KindError, c.Current().Kind())
	assert.EqualError(t, c.Current().Content.(*preview.Error).Err, "read interrupted")
	assert.Equal(t, "/a", c.Previous().Path)

	// The error is keyed under a label, so the same path reloads
	q.Send(event.PathRequested{Source: "s", Path: "/a"})
	out = c.Tick(fixedSize)
	assert.True(t, out.Reloaded)
	assert.Equal(t, []string{"/a", "/a"}, r.loads)
}

func TestFailureAfterRequestInSamePassWins(t *testing.T) {
	r := &recordingResolver{}
	c, q := newTestCoordinator(r)
	c.AddSource()

	q.Send(event.PathRequested{Source: "s", Path: "/a"})
	q.Send(event.SourceFailed{Source: "s", Err: fmt.Errorf("bad line")})
	out := c.Tick(fixedSize)

	assert.True(t, out.Failed)
	assert.False(t, out.Reloaded)
	assert.Empty(t, r.loads)
}

func TestTwoSourcesScenario(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "a.txt")
	imagePath := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(textPath, []byte("hello\nworld\n"), 0644))
	writePNG(t, imagePath)

	resolver := preview.NewResolver(preview.WithLogger(log.NewLogger(log.WithOutput(io.Discard))))
	c, q := newTestCoordinator(resolver)
	c.AddSource()
	c.AddSource()

	q.Send(event.PathRequested{Source: "A", Path: textPath})
	q.Send(event.SourceClosed{Source: "A"})
	q.Send(event.PathRequested{Source: "B", Path: imagePath})
	q.Send(event.SourceClosed{Source: "B"})

	var kinds []preview.Kind
	for !c.Done() {
		out := c.Tick(fixedSize)
		if out.Reloaded {
			kinds = append(kinds, c.Current().Kind())
		}
	}
	assert.Equal(t, []preview.Kind{preview.KindText, preview.KindImage}, kinds)
	assert.Equal(t, imagePath, c.Current().Path)
	assert.Equal(t, textPath, c.Previous().Path)
}

func TestMissingFileThenSuccessfulLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("ok\n"), 0644))

	resolver := preview.NewResolver(preview.WithLogger(log.NewLogger(log.WithOutput(io.Discard))))
	c, q := newTestCoordinator(resolver)
	c.AddSource()

	missing := filepath.Join(dir, "missing.txt")
	q.Send(event.PathRequested{Source: "s", Path: missing})
	c.Tick(fixedSize)
	require.Equal(t, preview.KindError, c.Current().Kind())
	assert.Equal(t, missing, c.Current().Path)

	q.Send(event.PathRequested{Source: "s", Path: good})
	c.Tick(fixedSize)
	assert.Equal(t, preview.KindText, c.Current().Kind())
	assert.Equal(t, []string{"ok"}, c.Current().Content.(*preview.Text).Lines)
}

func TestWaitWakesOnSend(t *testing.T) {
	c, q := newTestCoordinator(&recordingResolver{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Send(event.PathRequested{Source: "s", Path: "/wake"})
	}()

	start := time.Now()
	c.Wait(5 * time.Second)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, 1, c.Pending())

	start = time.Now()
	c.Wait(5 * time.Second)
	assert.Less(t, time.Since(start), time.Second, "pending events skip the wait")
}

func TestWaitTimesOut(t *testing.T) {
	c, _ := newTestCoordinator(&recordingResolver{})
	start := time.Now()
	c.Wait(15 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
