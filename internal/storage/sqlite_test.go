package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store *Store, nick string) User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), nick, "")
	if err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", nick, err)
	}
	return u
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.CreateUser(context.Background(), "ann", ""); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.UserByNick(context.Background(), "ANN"); err != nil {
		t.Errorf("UserByNick() after reopen = %v, expected the user", err)
	}
}

func TestCreateUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, "  ann ", "🐱")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if u.ID == 0 || u.Nick != "ann" || u.Avatar != "🐱" {
		t.Errorf("CreateUser() = %+v, expected trimmed ann with avatar", u)
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	tests := []struct {
		name     string
		nick     string
		expected error
	}{
		{"duplicate", "ann", ErrConflict},
		{"duplicate ignoring case", "ANN", ErrConflict},
		{"empty", "   ", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateUser(ctx, tt.nick, "")
			if !errors.Is(err, tt.expected) {
				t.Errorf("CreateUser(%q) = %v, expected %v", tt.nick, err, tt.expected)
			}
		})
	}
}

func TestUsersListAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	users, err := store.Users(ctx)
	if err != nil || users == nil || len(users) != 0 {
		t.Fatalf("Users() on empty store = %v, %v, expected empty slice", users, err)
	}

	mustUser(t, store, "bob")
	ann := mustUser(t, store, "Ann")
	mustUser(t, store, "cat")

	users, err = store.Users(ctx)
	if err != nil {
		t.Fatalf("Users() failed: %v", err)
	}
	if len(users) != 3 || users[0].Nick != "Ann" || users[2].Nick != "cat" {
		t.Errorf("Users() = %+v, expected Ann, bob, cat", users)
	}

	if err := store.DeleteUser(ctx, ann.ID); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}
	if _, err := store.User(ctx, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("User() after delete = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteUser(ctx, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteUser() = %v, expected ErrNotFound", err)
	}
}

func TestSaveMatchResultUpdatesStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")
	bob := mustUser(t, store, "bob")

	results := []struct{ annScore, bobScore int }{
		{5, 3}, // ann wins
		{5, 1}, // ann wins
		{2, 5}, // bob wins
	}
	for _, r := range results {
		rec := multiplayer.MatchRecord{
			Player1ID:       &ann.ID,
			Player2ID:       &bob.ID,
			ScoreP1:         r.annScore,
			ScoreP2:         r.bobScore,
			DurationSeconds: 60,
		}
		if r.annScore > r.bobScore {
			rec.WinnerID = &ann.ID
		} else {
			rec.WinnerID = &bob.ID
		}
		if _, err := store.SaveMatchResult(ctx, rec); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	st, err := store.Stats(ctx, ann.ID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	expected := UserStats{
		UserID: ann.ID, Nick: "ann",
		GamesPlayed: 3, Wins: 2, Losses: 1,
		GoalsScored: 12, GoalsReceived: 9,
		WinStreak: 0, BestStreak: 2,
	}
	if st != expected {
		t.Errorf("Stats(ann) = %+v, expected %+v", st, expected)
	}

	st, _ = store.Stats(ctx, bob.ID)
	if st.Wins != 1 || st.Losses != 2 || st.WinStreak != 1 || st.BestStreak != 1 {
		t.Errorf("Stats(bob) = %+v, expected 1 win, 2 losses, streak 1", st)
	}
}

func TestSaveMatchResultGuests(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")

	// ann loses to a guest: no winner id, the higher score decides
	rec := multiplayer.MatchRecord{Player1ID: &ann.ID, ScoreP1: 1, ScoreP2: 5, DurationSeconds: 30}
	id, err := store.SaveMatchResult(ctx, rec)
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	m, err := store.Match(ctx, id)
	if err != nil {
		t.Fatalf("Match() failed: %v", err)
	}
	if m.Player2ID != nil || m.WinnerID != nil || m.ScoreP2 != 5 {
		t.Errorf("Match() = %+v, expected a guest opponent", m)
	}

	st, _ := store.Stats(ctx, ann.ID)
	if st.Losses != 1 || st.GoalsReceived != 5 {
		t.Errorf("Stats(ann) = %+v, expected a loss with 5 goals received", st)
	}
}

func TestSaveMatchResultRejects(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")
	bob := mustUser(t, store, "bob")
	versus := func(winner int64, lines ...multiplayer.PlayerLine) multiplayer.MatchRecord {
		return multiplayer.MatchRecord{
			Player1ID: &ann.ID, Player2ID: &bob.ID, ScoreP1: 5, ScoreP2: 2, WinnerID: multiplayer.ID(winner),
			Details: &multiplayer.MatchDetails{Mode: multiplayer.ModeVersus, Players: lines},
		}
	}

	tests := []struct {
		name     string
		rec      multiplayer.MatchRecord
		expected error
	}{
		{"negative score", multiplayer.MatchRecord{ScoreP1: -1}, multiplayer.ErrInvalidRecord},
		{"winner not seated", multiplayer.MatchRecord{Player1ID: &ann.ID, WinnerID: multiplayer.ID(99)}, multiplayer.ErrInvalidRecord},
		{"unknown player", multiplayer.MatchRecord{Player1ID: &ann.ID, Player2ID: multiplayer.ID(99)}, ErrNotFound},
		{"unknown player in details", multiplayer.MatchRecord{Details: &multiplayer.MatchDetails{
			Players: []multiplayer.PlayerLine{{Seat: 3, UserID: multiplayer.ID(99)}},
		}}, ErrNotFound},
		{"details contradict winner", versus(ann.ID,
			multiplayer.PlayerLine{Seat: 1, UserID: &ann.ID, Score: 5},
			multiplayer.PlayerLine{Seat: 2, UserID: &bob.ID, Score: 2, Winner: true},
		), multiplayer.ErrInvalidRecord},
		{"player missing from details", versus(ann.ID,
			multiplayer.PlayerLine{Seat: 1, UserID: &ann.ID, Score: 5},
			multiplayer.PlayerLine{Seat: 2, Name: "guest", Score: 2},
		), multiplayer.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveMatchResult(ctx, tt.rec); !errors.Is(err, tt.expected) {
				t.Errorf("SaveMatchResult() = %v, expected %v", err, tt.expected)
			}
		})
	}

	matches, _ := store.RecentMatches(ctx, 10)
	if len(matches) != 0 {
		t.Errorf("RecentMatches() = %d matches, expected rejected saves to leave nothing", len(matches))
	}
}

func TestSaveMatchResultWinnerIDDecidesStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")
	bob := mustUser(t, store, "bob")

	// details carry the seat lines but no winner flags
	rec := multiplayer.MatchRecord{
		Player1ID: &ann.ID, Player2ID: &bob.ID, ScoreP1: 5, ScoreP2: 3, WinnerID: &ann.ID,
		Details: &multiplayer.MatchDetails{Mode: multiplayer.ModeVersus, Players: []multiplayer.PlayerLine{
			{Seat: 1, Name: "ann", UserID: &ann.ID, Score: 5},
			{Seat: 2, Name: "bob", UserID: &bob.ID, Score: 3},
		}},
	}
	if _, err := store.SaveMatchResult(ctx, rec); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	st, _ := store.Stats(ctx, ann.ID)
	if st.Wins != 1 || st.Losses != 0 || st.WinStreak != 1 {
		t.Errorf("Stats(ann) = %+v, expected the win from winner_id", st)
	}
	st, _ = store.Stats(ctx, bob.ID)
	if st.Wins != 0 || st.Losses != 1 {
		t.Errorf("Stats(bob) = %+v, expected one loss", st)
	}
}

func TestSaveFourPlayerDetails(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")
	bob := mustUser(t, store, "bob")
	cat := mustUser(t, store, "cat")

	rec := multiplayer.MatchRecord{
		Player1ID: &cat.ID, Player2ID: &ann.ID,
		ScoreP1: 3, ScoreP2: 1, WinnerID: &cat.ID, DurationSeconds: 95,
		Details: &multiplayer.MatchDetails{
			SessionID: "abc",
			Mode:      multiplayer.ModeFourPlayer,
			Players: []multiplayer.PlayerLine{
				{Seat: 1, Name: "ann", UserID: &ann.ID, Score: 1, Hits: 4, Saves: 2, ShotsOnTarget: 1},
				{Seat: 2, Name: "bob", UserID: &bob.ID, Score: 0, Saves: 1},
				{Seat: 3, Name: "cat", UserID: &cat.ID, Score: 3, Hits: 6, ShotsOnTarget: 3, Winner: true},
				{Seat: 4, Name: "CPU 4", Bot: true, Score: 1},
			},
		},
	}
	id, err := store.SaveMatchResult(ctx, rec)
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	m, err := store.Match(ctx, id)
	if err != nil {
		t.Fatalf("Match() failed: %v", err)
	}
	if m.Details == nil || len(m.Details.Players) != 4 || m.Details.Players[3].Name != "CPU 4" {
		t.Fatalf("Match().Details = %+v, expected the four seat lines", m.Details)
	}

	st, _ := store.Stats(ctx, bob.ID)
	expected := UserStats{UserID: bob.ID, Nick: "bob", GamesPlayed: 1, Losses: 1, GoalsReceived: 5, Saves: 1}
	if st != expected {
		t.Errorf("Stats(bob) = %+v, expected %+v", st, expected)
	}
	st, _ = store.Stats(ctx, cat.ID)
	if st.Wins != 1 || st.ShotsOnTarget != 3 || st.GoalsScored != 3 {
		t.Errorf("Stats(cat) = %+v, expected the win with 3 goals", st)
	}

	// bob sits in neither column, only in the details
	matches, err := store.UserMatches(ctx, bob.ID, 10)
	if err != nil {
		t.Fatalf("UserMatches() failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != id {
		t.Errorf("UserMatches(bob) = %+v, expected match %d", matches, id)
	}
}

func TestRecentMatchesOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveMatchResult(ctx, multiplayer.MatchRecord{ScoreP1: i}); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	matches, err := store.RecentMatches(ctx, 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("RecentMatches() returned %d matches, expected 3", len(matches))
	}
	for i, expected := range []int{5, 4, 3} {
		if matches[i].ScoreP1 != expected {
			t.Errorf("matches[%d].ScoreP1 = %d, expected %d", i, matches[i].ScoreP1, expected)
		}
	}

	if _, err := store.Match(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Match(999) = %v, expected ErrNotFound", err)
	}
}

func TestDeleteUserKeepsMatches(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")

	id, err := store.SaveMatchResult(ctx, multiplayer.MatchRecord{
		Player1ID: &ann.ID, ScoreP1: 5, WinnerID: &ann.ID,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	if err := store.DeleteUser(ctx, ann.ID); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}

	m, err := store.Match(ctx, id)
	if err != nil {
		t.Fatalf("Match() after user delete failed: %v", err)
	}
	if m.Player1ID != nil || m.WinnerID != nil || m.ScoreP1 != 5 {
		t.Errorf("Match() = %+v, expected cleared player references and kept score", m)
	}

	if _, err := store.Stats(ctx, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stats() after user delete = %v, expected ErrNotFound", err)
	}
}

func TestUpsertAndResetStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ann := mustUser(t, store, "ann")
	bob := mustUser(t, store, "bob")

	st, err := store.Stats(ctx, ann.ID)
	if err != nil || st.GamesPlayed != 0 || st.Nick != "ann" {
		t.Fatalf("Stats() for a new user = %+v, %v, expected zeroed stats", st, err)
	}

	in := UserStats{UserID: ann.ID, GamesPlayed: 10, Wins: 7, Losses: 3, WinStreak: 2, BestStreak: 4}
	if err := store.UpsertStats(ctx, in); err != nil {
		t.Fatalf("UpsertStats() failed: %v", err)
	}
	in.Wins = 8
	if err := store.UpsertStats(ctx, in); err != nil {
		t.Fatalf("second UpsertStats() failed: %v", err)
	}

	all, err := store.AllStats(ctx)
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all[0].UserID != ann.ID || all[0].Wins != 8 || all[1].UserID != bob.ID {
		t.Errorf("AllStats() = %+v, expected ann with 8 wins then bob", all)
	}

	if err := store.UpsertStats(ctx, UserStats{UserID: ann.ID, Wins: -1}); !errors.Is(err, ErrInvalid) {
		t.Errorf("UpsertStats(negative) = %v, expected ErrInvalid", err)
	}
	if err := store.UpsertStats(ctx, UserStats{UserID: 99}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpsertStats(unknown) = %v, expected ErrNotFound", err)
	}

	if err := store.ResetStats(ctx, ann.ID); err != nil {
		t.Fatalf("ResetStats() failed: %v", err)
	}
	st, _ = store.Stats(ctx, ann.ID)
	if st.GamesPlayed != 0 || st.Wins != 0 {
		t.Errorf("Stats() after reset = %+v, expected zeroed stats", st)
	}
	if err := store.ResetStats(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResetStats(unknown) = %v, expected ErrNotFound", err)
	}
}
