package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"snapbook-backend/store"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func testDeps() Deps {
	return Deps{
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
		Notifier: &recordingNotifier{},
	}
}

func day(offset int) time.Time {
	return fixedNow.AddDate(0, 0, offset)
}

// flakyStore is a memory store whose writes can be switched off.
type flakyStore struct {
	*store.MemoryStore
	mu   sync.Mutex
	fail bool
}

var errWrite = errors.New("storage full")

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore()}
}

func (f *flakyStore) failWrites(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errWrite
	}
	return f.MemoryStore.Set(ctx, key, value)
}

type sentText struct {
	To   string
	Body string
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []sentText
	err   error
	delay time.Duration
}

func (n *recordingNotifier) Notify(_ context.Context, to, body string) error {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentText{To: to, Body: body})
	return nil
}

func (n *recordingNotifier) Sent() []sentText {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentText(nil), n.sent...)
}

// stubEncoder returns "encoded:<name>" after an optional per-file delay.
type stubEncoder struct {
	delay map[string]time.Duration
	fail  map[string]bool
}

func (e stubEncoder) Encode(ctx context.Context, name string, _ []byte) (string, error) {
	if d := e.delay[name]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if e.fail[name] {
		return "", errors.New("cannot decode " + name)
	}
	return "encoded:" + name, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
