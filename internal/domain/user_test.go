package domain

import (
	"strings"
	"testing"
)

func TestValidName(t *testing.T) {
	if err := ValidName("Alice"); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if err := ValidName(""); err != ErrNameEmpty {
		t.Fatalf("empty name: got %v", err)
	}
	if err := ValidName(strings.Repeat("x", MaxNameLen+1)); err != ErrNameTooLong {
		t.Fatalf("overlong name: got %v", err)
	}
}

func TestValidRoom(t *testing.T) {
	if err := ValidRoom("general"); err != nil {
		t.Fatalf("valid room rejected: %v", err)
	}
	if err := ValidRoom(""); err != ErrRoomEmpty {
		t.Fatalf("empty room: got %v", err)
	}
	if err := ValidRoom(strings.Repeat("x", MaxRoomLen+1)); err != ErrRoomTooLong {
		t.Fatalf("overlong room: got %v", err)
	}
}
