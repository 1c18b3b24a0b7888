package multiplayer

import (
	"context"
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected MatchMode
		wantErr  bool
	}{
		{in: "ai", expected: ModeAI},
		{in: "CPU", expected: ModeAI},
		{in: "1v1", expected: ModeVersus},
		{in: "4p", expected: ModeFourPlayer},
		{in: "tennis", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) = %q, expected error", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.expected {
			t.Errorf("ParseMode(%q) = %q, %v, expected %q", tc.in, got, err, tc.expected)
		}
	}
}

func TestMatchModeSeats(t *testing.T) {
	if ModeAI.Seats() != 2 || ModeVersus.Seats() != 2 || ModeFourPlayer.Seats() != 4 {
		t.Error("Seats() returned unexpected counts")
	}
}

func TestMatchRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     MatchRecord
		wantErr bool
	}{
		{name: "guest match", rec: MatchRecord{ScoreP1: 5, ScoreP2: 2, DurationSeconds: 90}},
		{name: "winner is player one", rec: MatchRecord{Player1ID: ID(1), Player2ID: ID(2), WinnerID: ID(1), ScoreP1: 5}},
		{name: "winner not in match", rec: MatchRecord{Player1ID: ID(1), Player2ID: ID(2), WinnerID: ID(3)}, wantErr: true},
		{name: "negative score", rec: MatchRecord{ScoreP1: -1}, wantErr: true},
		{name: "details agree", rec: withLines(MatchRecord{Player1ID: ID(1), Player2ID: ID(2), WinnerID: ID(1)},
			PlayerLine{Seat: 1, UserID: ID(1), Winner: true}, PlayerLine{Seat: 2, UserID: ID(2)})},
		{name: "details name another winner", rec: withLines(MatchRecord{Player1ID: ID(1), Player2ID: ID(2), WinnerID: ID(1)},
			PlayerLine{Seat: 1, UserID: ID(1)}, PlayerLine{Seat: 2, UserID: ID(2), Winner: true}), wantErr: true},
		{name: "details flag a guest over winner id", rec: withLines(MatchRecord{Player1ID: ID(1), WinnerID: ID(1)},
			PlayerLine{Seat: 1, UserID: ID(1)}, PlayerLine{Seat: 2, Name: "guest", Winner: true}), wantErr: true},
		{name: "two winners in details", rec: withLines(MatchRecord{},
			PlayerLine{Seat: 1, Winner: true}, PlayerLine{Seat: 2, Winner: true}), wantErr: true},
		{name: "player missing from details", rec: withLines(MatchRecord{Player1ID: ID(1), Player2ID: ID(2)},
			PlayerLine{Seat: 1, UserID: ID(1)}, PlayerLine{Seat: 2, UserID: ID(3)}), wantErr: true},
		{name: "negative line score", rec: withLines(MatchRecord{}, PlayerLine{Seat: 1, Score: -2}), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() = %v, expected ErrInvalidRecord", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
		})
	}
}

func withLines(r MatchRecord, lines ...PlayerLine) MatchRecord {
	r.Details = &MatchDetails{Players: lines}
	return r
}

func TestMatchRecordLinesWinnerIDOverridesFlags(t *testing.T) {
	rec := withLines(MatchRecord{Player1ID: ID(1), Player2ID: ID(2), WinnerID: ID(2)},
		PlayerLine{Seat: 1, UserID: ID(1), Score: 4},
		PlayerLine{Seat: 2, UserID: ID(2), Score: 5},
	)
	lines := rec.Lines()
	if lines[0].Winner || !lines[1].Winner {
		t.Errorf("winner flags = %v/%v, expected winner_id to decide", lines[0].Winner, lines[1].Winner)
	}
	if rec.Details.Players[1].Winner {
		t.Error("Lines() should not modify the record's details")
	}
}

func TestMatchRecordLinesWithoutDetails(t *testing.T) {
	rec := MatchRecord{Player1ID: ID(7), Player2ID: ID(9), ScoreP1: 1, ScoreP2: 5, WinnerID: ID(9)}
	lines := rec.Lines()

	if len(lines) != 2 {
		t.Fatalf("Lines() returned %d lines, expected 2", len(lines))
	}
	if lines[0].Winner || !lines[1].Winner {
		t.Errorf("winner flags = %v/%v, expected false/true", lines[0].Winner, lines[1].Winner)
	}
	if lines[1].Score != 5 {
		t.Errorf("lines[1].Score = %d, expected 5", lines[1].Score)
	}
}

func TestMatchRecordLinesGuestWinner(t *testing.T) {
	rec := MatchRecord{Player1ID: ID(7), ScoreP1: 2, ScoreP2: 5}
	lines := rec.Lines()

	if lines[0].Winner || !lines[1].Winner {
		t.Errorf("winner flags = %v/%v, expected the higher score to win", lines[0].Winner, lines[1].Winner)
	}
}

func TestSaverFunc(t *testing.T) {
	var got MatchRecord
	saver := SaverFunc(func(_ context.Context, rec MatchRecord) (int64, error) {
		got = rec
		return 42, nil
	})

	id, err := saver.SaveMatchResult(context.Background(), MatchRecord{ScoreP1: 3})
	if err != nil || id != 42 {
		t.Errorf("SaveMatchResult() = %d, %v, expected 42, nil", id, err)
	}
	if got.ScoreP1 != 3 {
		t.Errorf("saver saw ScoreP1 = %d, expected 3", got.ScoreP1)
	}
}

func TestIDHelper(t *testing.T) {
	if ID(0) != nil {
		t.Error("ID(0) should be nil")
	}
	if p := ID(4); p == nil || *p != 4 {
		t.Errorf("ID(4) = %v, expected pointer to 4", p)
	}
}
