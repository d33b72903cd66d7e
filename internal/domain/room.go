package domain

type RoomName string

// Rooms are not stored entities: a room exists exactly while at least one
// User references it, so there is nothing here beyond the name type.
