package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	frame, err := Encode(EventReserveUpdate, []string{"r1", "r2"})
	require.NoError(t, err)

	env, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, EventReserveUpdate, env.Event)

	var ids []string
	require.NoError(t, json.Unmarshal(env.Data, &ids))
	require.Equal(t, []string{"r1", "r2"}, ids)
}

func TestEncodePreservesRawPayloadVerbatim(t *testing.T) {
	payload := json.RawMessage(`{"roomID":"lab1","sender":"A","body":"hi","extra":42}`)

	frame, err := Encode(EventReceiveMessage, payload)
	require.NoError(t, err)

	env, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, EventReceiveMessage, env.Event)
	require.JSONEq(t, string(payload), string(env.Data))
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	for _, raw := range []string{"", "not json", `["array"]`, `"join-room"`} {
		_, err := Decode([]byte(raw))
		require.Error(t, err, "frame %q", raw)
	}
}

func TestDecodeToleratesMissingData(t *testing.T) {
	env, err := Decode([]byte(`{"event":"leave-room"}`))
	require.NoError(t, err)
	require.Equal(t, EventLeaveRoom, env.Event)
	require.Nil(t, env.Data)
}
