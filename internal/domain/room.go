package domain

// RoomID names a chat room. Rooms exist only as membership sets;
// they are created on first join and dropped when the last member leaves.
type RoomID string
