package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	rooms := NewRooms()
	reg := NewRegistry(rooms)
	conn := &fakeConn{}

	reg.Register("a", conn)

	got, ok := reg.Get("a")
	require.True(t, ok)
	require.Same(t, conn, got.(*fakeConn))
	require.Equal(t, 1, reg.Count())
}

func TestRegistry_DeregisterUnknownIsNoop(t *testing.T) {
	reg := NewRegistry(NewRooms())

	require.NotPanics(t, func() {
		reg.Deregister("ghost")
		reg.Deregister("ghost")
	})
}

func TestRegistry_DeregisterCascadesIntoRooms(t *testing.T) {
	rooms := NewRooms()
	reg := NewRegistry(rooms)

	reg.Register("a", &fakeConn{})
	rooms.Join("a", "lab1")
	rooms.Join("a", "lab2")

	reg.Deregister("a")

	_, ok := reg.Get("a")
	require.False(t, ok)
	require.Empty(t, rooms.RoomsOf("a"))
	require.Empty(t, rooms.MembersExcept("lab1", "nobody"))
	require.Empty(t, rooms.MembersExcept("lab2", "nobody"))
}

func TestRegistry_AllIsAPointInTimeCopy(t *testing.T) {
	reg := NewRegistry(NewRooms())
	reg.Register("a", &fakeConn{})
	reg.Register("b", &fakeConn{})

	all := reg.All()
	require.Len(t, all, 2)

	reg.Deregister("a")
	require.Len(t, all, 2)
	require.Equal(t, 1, reg.Count())
}
