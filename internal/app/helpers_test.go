package app

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/protocol"
)

var errSendFailed = errors.New("send failed")

// fakeConn records every frame it is asked to send.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	err    error
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) received() []core.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Frame, len(f.frames))
	copy(out, f.frames)
	return out
}

// lastEvent decodes the most recent frame sent to the conn.
func lastEvent(t *testing.T, f *fakeConn) (string, json.RawMessage) {
	t.Helper()
	frames := f.received()
	require.NotEmpty(t, frames)
	env, err := protocol.Decode(frames[len(frames)-1])
	require.NoError(t, err)
	return env.Event, env.Data
}
