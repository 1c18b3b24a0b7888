package main

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		arg      string
		expected multiplayer.MatchMode
		wantErr  bool
	}{
		{"ai", multiplayer.ModeAI, false},
		{"pong", multiplayer.ModeAI, false},
		{"1v1", multiplayer.ModeVersus, false},
		{"PONG_1V1", multiplayer.ModeVersus, false},
		{"pong_4p", multiplayer.ModeFourPlayer, false},
		{"4p", multiplayer.ModeFourPlayer, false},
		{"breakout", "", true},
	}
	for _, tt := range tests {
		got, err := parseMode(tt.arg)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("parseMode(%q) = %q, %v, expected %q", tt.arg, got, err, tt.expected)
		}
	}
}

func TestBackendWithoutStorageSeatsGuests(t *testing.T) {
	b := &backend{}
	if b.saver() != nil || b.stats() != nil {
		t.Fatal("empty backend should have no saver and no stats")
	}

	seats := b.seats(4, []string{"ann", "", " bob "})
	names := []string{"ann", "Player 2", "bob", "Player 4"}
	for i, s := range seats {
		if s.Name != names[i] || s.UserID != 0 {
			t.Errorf("seat %d = %+v, expected guest %q", i+1, s, names[i])
		}
	}
}

func TestBackendRegistersNicks(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/pong.db")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	b := &backend{store: store}
	first := b.seat("ann")
	again := b.seat("ANN")
	if first.UserID == 0 || again.UserID != first.UserID {
		t.Errorf("seat ids = %d, %d, expected one registered user", first.UserID, again.UserID)
	}
	if again.Name != "ann" {
		t.Errorf("seat name = %q, expected the stored nick", again.Name)
	}
}

func TestFilterByNick(t *testing.T) {
	ann, bob := int64(1), int64(2)
	stats := []storage.UserStats{{UserID: ann, Nick: "ann"}, {UserID: bob, Nick: "bob"}}
	matches := []storage.Match{
		{ID: 1, MatchRecord: multiplayer.MatchRecord{Player1ID: &ann, Player2ID: &bob}},
		{ID: 2, MatchRecord: multiplayer.MatchRecord{Player1ID: &bob}},
	}

	st, played := filterByNick(stats, matches, "Ann")
	if len(st) != 1 || st[0].UserID != ann {
		t.Fatalf("filterByNick() stats = %+v, expected ann only", st)
	}
	if len(played) != 1 || played[0].ID != 1 {
		t.Errorf("filterByNick() matches = %+v, expected match 1", played)
	}

	if st, _ := filterByNick(stats, matches, "cid"); st != nil {
		t.Errorf("filterByNick(cid) = %+v, expected nil", st)
	}
}
