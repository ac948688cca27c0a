package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/animolab/animolab/internal/app/mocks"
	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/internal/domain"
	"github.com/animolab/animolab/internal/protocol"
)

func newOrchestrator(t *testing.T) (*Orchestrator, *mocks.MockReservationStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReservationStore(ctrl)
	rooms := NewRooms()
	reg := NewRegistry(rooms)
	o := &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		Presence: NewBroadcaster(store, reg),
		Relay:    NewRelay(rooms, reg),
	}
	return o, store
}

func connect(o *Orchestrator, id core.ConnID) *fakeConn {
	conn := &fakeConn{}
	o.OnConnect(id, conn)
	return conn
}

func TestOrchestrator_ConnectPushesCurrentSnapshot(t *testing.T) {
	o, store := newOrchestrator(t)

	records := []domain.Reservation{{ID: "r1", UserID: "12345", Lab: "GK304", Seat: 1}}
	store.EXPECT().FindByUser(gomock.Any(), domain.UserID("12345")).Return(records, nil)
	connect(o, "a")
	o.OnReserved(context.Background(), "a", "12345")

	late := connect(o, "b")

	event, data := lastEvent(t, late)
	require.Equal(t, protocol.EventReserveUpdate, event)

	var got []domain.Reservation
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, records, got)
}

func TestOrchestrator_MessageReachesRoomButNotSender(t *testing.T) {
	o, _ := newOrchestrator(t)

	a := connect(o, "a")
	b := connect(o, "b")
	c := connect(o, "c")
	o.OnJoinRoom("a", "lab1")
	o.OnJoinRoom("b", "lab1")
	o.OnJoinRoom("c", "lab2")

	sentBefore := len(a.received())
	payload := json.RawMessage(`{"roomID":"lab1","sender":"A","body":"hi"}`)
	o.OnMessage("a", "lab1", payload)

	event, data := lastEvent(t, b)
	require.Equal(t, protocol.EventReceiveMessage, event)
	require.JSONEq(t, string(payload), string(data))

	require.Len(t, a.received(), sentBefore, "sender must not receive its own message")
	require.Len(t, c.received(), 1, "other rooms only saw the initial snapshot")
}

func TestOrchestrator_DisconnectIsTerminal(t *testing.T) {
	o, _ := newOrchestrator(t)

	a := connect(o, "a")
	connect(o, "c")
	o.OnJoinRoom("a", "lab1")
	o.OnJoinRoom("c", "lab1")

	o.OnDisconnect("a")

	require.Empty(t, o.Rooms.RoomsOf("a"))

	// Late events for a disconnected id are dropped.
	o.OnJoinRoom("a", "lab1")
	require.Empty(t, o.Rooms.RoomsOf("a"))

	sentBefore := len(a.received())
	o.OnMessage("c", "lab1", json.RawMessage(`{"roomID":"lab1","body":"anyone?"}`))
	require.Len(t, a.received(), sentBefore)

	// Double-fired close events are harmless.
	require.NotPanics(t, func() { o.OnDisconnect("a") })
}

func TestOrchestrator_MessageToDrainedRoomIsSilent(t *testing.T) {
	o, _ := newOrchestrator(t)

	connect(o, "a")
	c := connect(o, "c")
	o.OnJoinRoom("a", "lab1")
	o.OnDisconnect("a")
	o.OnJoinRoom("c", "lab1")

	require.NotPanics(t, func() {
		o.OnMessage("c", "lab1", json.RawMessage(`{"roomID":"lab1","body":"hello?"}`))
	})
	require.Len(t, c.received(), 1, "sender only ever saw the initial snapshot")
}

func TestOrchestrator_ReservedRefreshesAndBroadcastsToAll(t *testing.T) {
	o, store := newOrchestrator(t)

	a := connect(o, "a")
	b := connect(o, "b")

	records := []domain.Reservation{{ID: "r9", UserID: "12345", Lab: "LS212", Seat: 9}}
	store.EXPECT().FindByUser(gomock.Any(), domain.UserID("12345")).Return(records, nil)

	o.OnReserved(context.Background(), "a", "12345")

	for _, conn := range []*fakeConn{a, b} {
		event, data := lastEvent(t, conn)
		require.Equal(t, protocol.EventReserveUpdate, event)

		var got []domain.Reservation
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, records, got)
	}
}

func TestOrchestrator_FailedLookupBroadcastsPriorSnapshot(t *testing.T) {
	o, store := newOrchestrator(t)

	a := connect(o, "a")

	known := []domain.Reservation{{ID: "r1", UserID: "12345", Lab: "GK304", Seat: 4}}
	store.EXPECT().FindByUser(gomock.Any(), domain.UserID("12345")).Return(known, nil)
	store.EXPECT().FindByUser(gomock.Any(), domain.UserID("12345")).Return(nil, context.DeadlineExceeded)

	o.OnReserved(context.Background(), "a", "12345")
	o.OnReserved(context.Background(), "a", "12345")

	event, data := lastEvent(t, a)
	require.Equal(t, protocol.EventReserveUpdate, event)

	var got []domain.Reservation
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, known, got, "failed lookup must re-broadcast the prior snapshot, not an empty one")
}
