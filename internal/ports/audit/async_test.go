package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// gatedSink bloquea cada Log hasta que se cierre release.
type gatedSink struct {
	release chan struct{}
	started chan struct{}

	mu     sync.Mutex
	got    []Entry
	ctxErr []error
}

func newGatedSink() *gatedSink {
	return &gatedSink{release: make(chan struct{}), started: make(chan struct{}, 16)}
}

func (s *gatedSink) Log(ctx context.Context, e Entry) error {
	s.started <- struct{}{}
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, e)
	s.ctxErr = append(s.ctxErr, ctx.Err())
	return nil
}

func (s *gatedSink) entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.got...)
}

func TestAsync_LogDoesNotWaitForSink(t *testing.T) {
	sink := newGatedSink()
	a := NewAsync(sink, 8, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []error, 1)
	go func() {
		done <- []error{
			a.Log(ctx, Entry{UserID: "u1", Action: ActionShare}),
			a.Log(ctx, Entry{UserID: "u1", Action: ActionRevokeShare}),
		}
	}()

	select {
	case errs := <-done:
		for _, err := range errs {
			require.NoError(t, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Log blocked on a slow sink")
	}
	// el request terminó antes del envío
	cancel()

	close(sink.release)
	a.Close()

	got := sink.entries()
	require.Len(t, got, 2)
	require.Equal(t, ActionShare, got[0].Action)
	require.Equal(t, ActionRevokeShare, got[1].Action)
	for _, err := range sink.ctxErr {
		require.NoError(t, err)
	}
}

func TestAsync_FullQueueDrops(t *testing.T) {
	sink := newGatedSink()
	a := NewAsync(sink, 1, nil)
	ctx := context.Background()

	require.NoError(t, a.Log(ctx, Entry{UserID: "first"}))
	<-sink.started // el worker ya lo sacó de la cola

	require.NoError(t, a.Log(ctx, Entry{UserID: "second"}))
	require.ErrorIs(t, a.Log(ctx, Entry{UserID: "third"}), ErrQueueFull)

	close(sink.release)
	a.Close()

	got := sink.entries()
	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].UserID)
	require.Equal(t, "second", got[1].UserID)
}

func TestAsync_ReportsErrorsAndRejectsAfterClose(t *testing.T) {
	var (
		mu     sync.Mutex
		failed []string
	)
	a := NewAsync(&recordingSink{err: errors.New("down")}, 4, func(e Entry, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, e.UserID+": "+err.Error())
	})

	require.NoError(t, a.Log(context.Background(), Entry{UserID: "u1"}))
	a.Close()
	a.Close()

	require.Equal(t, []string{"u1: down"}, failed)
	require.ErrorIs(t, a.Log(context.Background(), Entry{UserID: "u2"}), ErrClosed)
}

func TestAsync_DefaultQueueSize(t *testing.T) {
	a := NewAsync(Nop{}, 0, nil)
	defer a.Close()
	require.Equal(t, DefaultQueueSize, cap(a.queue))
}
