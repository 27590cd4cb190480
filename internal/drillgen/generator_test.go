package drillgen

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/abhisek/tactiz/internal/gamepool"
	"github.com/abhisek/tactiz/internal/gamepool/gamepooltest"
)

// quietGame shuffles knights for 20 plies: no captures or checks, and the
// starting placement recurs at plies 4, 8, 12 and 16.
const quietGame = `[Event "Shuffle"]
[Result "*"]

1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8 5. Nc3 Nc6 6. Nb1 Nb8
7. Nc3 Nc6 8. Nb1 Nb8 9. Nf3 Nf6 10. Ng1 Ng8 *
`

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

func operaPool() []*gamepool.Game {
	return []*gamepool.Game{gamepooltest.Game("opera", gamepooltest.Opera)}
}

func TestGenerateShortGameFails(t *testing.T) {
	gen := New(DefaultConfig())
	pool := []*gamepool.Game{gamepooltest.Game("short", gamepooltest.ThreePly)}

	for _, mode := range AllModes() {
		d, err := gen.Generate(seeded(1), pool, mode, Options{})
		if d != nil {
			t.Fatalf("%s: got drill %+v, want failure", mode, d)
		}
		var gf *GenerationFailure
		if !errors.As(err, &gf) {
			t.Fatalf("%s: error = %v, want *GenerationFailure", mode, err)
		}
		if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, ErrNoCandidate) {
			t.Errorf("%s: error = %v does not match sentinels", mode, err)
		}
		if gf.Attempts != 50 {
			t.Errorf("%s: attempts = %d, want 50", mode, gf.Attempts)
		}
		if gf.Rejections["length"] != 50 {
			t.Errorf("%s: rejections = %v, want 50 length rejections", mode, gf.Rejections)
		}
	}
}

func TestGenerateGameShorterThanSolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPlies = 3
	gen := New(cfg)
	pool := []*gamepool.Game{gamepooltest.Game("short", gamepooltest.ThreePly)}

	for _, mode := range AllModes() {
		d, err := gen.Generate(seeded(1), pool, mode, Options{})
		if d != nil || !errors.Is(err, ErrNoCandidate) {
			t.Fatalf("%s: got drill %v err %v, want no candidate", mode, d, err)
		}
		var gf *GenerationFailure
		if errors.As(err, &gf) && gf.Rejections["length"] != cfg.MaxAttempts {
			t.Errorf("%s: rejections = %v", mode, gf.Rejections)
		}
	}
}

func TestGenerateEmptyPool(t *testing.T) {
	_, err := New(DefaultConfig()).Generate(seeded(1), nil, ModeAny, Options{})
	if !errors.Is(err, ErrEmptyPool) || !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("error = %v, want empty pool generation failure", err)
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	_, err := New(DefaultConfig()).Generate(seeded(1), operaPool(), Mode("blindfold"), Options{})
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("error = %v, want ErrUnknownMode", err)
	}
}

func TestGenerateMalformedGamesAreSkipped(t *testing.T) {
	gen := New(DefaultConfig())

	pool := []*gamepool.Game{
		gamepooltest.Game("bad", gamepooltest.Illegal),
		gamepooltest.Game("opera", gamepooltest.Opera),
	}
	for seed := uint64(0); seed < 20; seed++ {
		d, err := gen.Generate(seeded(seed), pool, ModeRandomMoment, Options{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if d.SourceGameID != "opera" {
			t.Fatalf("seed %d: drill from %q", seed, d.SourceGameID)
		}
	}

	_, err := gen.Generate(seeded(1), pool[:1], ModeRandomMoment, Options{})
	var gf *GenerationFailure
	if !errors.As(err, &gf) || gf.Rejections["replay"] != 50 {
		t.Fatalf("error = %v, want 50 replay rejections", err)
	}
}

func TestGenerateInvariants(t *testing.T) {
	gen := New(DefaultConfig())
	pool := []*gamepool.Game{
		gamepooltest.Game("opera", gamepooltest.Opera),
		gamepooltest.Game("quiet", quietGame),
		gamepooltest.Game("short", gamepooltest.ScholarsMate),
	}

	for _, mode := range AllModes() {
		for _, startMove := range []int{0, 1, 5, 40} {
			for seed := uint64(0); seed < 40; seed++ {
				d, err := gen.Generate(seeded(seed), pool, mode, Options{StartMove: startMove})
				if err != nil {
					if mode == ModeRandomMoment || mode == ModeAny {
						continue
					}
					t.Fatalf("%s/%d/%d: %v", mode, startMove, seed, err)
				}
				if len(d.Solution) == 0 || len(d.Solution) > 6 {
					t.Fatalf("%s: solution length %d", mode, len(d.Solution))
				}
				if d.PlayedMove != d.Solution[0] {
					t.Errorf("%s: played move %q != first solution move %q", mode, d.PlayedMove, d.Solution[0])
				}
				if d.Mode == ModeAny {
					t.Errorf("drill mode was not resolved")
				}
				if d.Difficulty != 3 {
					t.Errorf("difficulty = %d, want 3", d.Difficulty)
				}
				if d.Goal == "" || d.ID == "" {
					t.Errorf("drill missing goal or id: %+v", d)
				}

				replay, _ := findGame(pool, d.SourceGameID).Replay()
				if replay.Plies[d.Ply].FENBefore != d.Position {
					t.Errorf("%s: position does not match ply %d", mode, d.Ply)
				}
				isStart := replay.Plies[d.Ply].Placement == gamepool.StartPlacement
				if isStart && mode != ModeStartFromMove {
					t.Errorf("%s: drill at the starting position", mode)
				}
				if isStart && d.SourceGameID == "opera" && startMove != 1 {
					t.Errorf("opera start position with startMove %d", startMove)
				}
			}
		}
	}
}

func findGame(pool []*gamepool.Game, id string) *gamepool.Game {
	for _, g := range pool {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func TestGenerateStartFromMove(t *testing.T) {
	gen := New(DefaultConfig())

	d, err := gen.Generate(seeded(3), operaPool(), ModeStartFromMove, Options{StartMove: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"e4", "e5", "Nf3", "d6", "d4", "Bg4"}
	if diff := cmp.Diff(want, d.Solution); diff != "" {
		t.Errorf("solution mismatch (-want +got):\n%s", diff)
	}
	if d.Ply != 0 || d.Theme != ThemeOpening {
		t.Errorf("ply = %d theme = %q, want 0 opening", d.Ply, d.Theme)
	}
	if d.Goal != "White to move. Continue the opening as it was played." {
		t.Errorf("goal = %q", d.Goal)
	}

	d, err = gen.Generate(seeded(3), operaPool(), ModeStartFromMove, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if d.Ply != 18 || d.PlayedMove != "Nxb5" {
		t.Errorf("default start move: ply %d move %q, want 18 Nxb5", d.Ply, d.PlayedMove)
	}
	if d.MoveNumber() != 10 {
		t.Errorf("move number = %d, want 10", d.MoveNumber())
	}

	d, err = gen.Generate(seeded(3), operaPool(), ModeStartFromMove, Options{StartMove: -4})
	if err != nil {
		t.Fatal(err)
	}
	if d.Ply != 0 || d.Solution[0] != "e4" {
		t.Errorf("negative start move: ply %d first move %q, want 0 e4", d.Ply, d.Solution[0])
	}

	// Past the end clamps to the last full solution window.
	d, err = gen.Generate(seeded(3), operaPool(), ModeStartFromMove, Options{StartMove: 40})
	if err != nil {
		t.Fatal(err)
	}
	if d.Ply != gamepooltest.OperaPlies-6 || len(d.Solution) != 6 {
		t.Errorf("clamped ply %d with %d moves", d.Ply, len(d.Solution))
	}
	if d.Solution[5] != "Rd8#" {
		t.Errorf("last solution move = %q, want Rd8#", d.Solution[5])
	}
}

func TestGenerateEndgameFinish(t *testing.T) {
	d, err := New(DefaultConfig()).Generate(seeded(9), operaPool(), ModeEndgameFinish, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if d.Ply != 13 || d.Theme != ThemeEndgame {
		t.Errorf("ply %d theme %q, want 13 endgame", d.Ply, d.Theme)
	}
	want := []string{"Qe7", "Nc3", "c6", "Bg5", "b5", "Nxb5"}
	if diff := cmp.Diff(want, d.Solution); diff != "" {
		t.Errorf("solution mismatch (-want +got):\n%s", diff)
	}
	if SideToMove(d.Position) != "Black" {
		t.Errorf("side to move = %s, want Black", SideToMove(d.Position))
	}
}

func TestGenerateRandomMomentRange(t *testing.T) {
	gen := New(DefaultConfig())
	seen := make(map[int]bool)
	for seed := uint64(0); seed < 200; seed++ {
		d, err := gen.Generate(seeded(seed), operaPool(), ModeRandomMoment, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if d.Ply < 12 || d.Ply > 25 {
			t.Fatalf("ply %d outside [12, 25]", d.Ply)
		}
		if d.Theme != ThemeAdvantage {
			t.Fatalf("theme = %q", d.Theme)
		}
		seen[d.Ply] = true
	}
	if len(seen) < 5 {
		t.Errorf("only %d distinct plies over 200 seeds", len(seen))
	}
}

func TestGenerateCriticalPosition(t *testing.T) {
	gen := New(DefaultConfig())
	allowed := map[int]bool{18: true, 19: true, 20: true, 24: true}
	for seed := uint64(0); seed < 100; seed++ {
		d, err := gen.Generate(seeded(seed), operaPool(), ModeCriticalPosition, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !allowed[d.Ply] {
			t.Fatalf("ply %d (%s) is not a tactical ply", d.Ply, d.PlayedMove)
		}
		if d.Theme != ThemeTactics {
			t.Fatalf("theme = %q", d.Theme)
		}
	}
}

func TestGenerateCriticalFallsBackToMidpoint(t *testing.T) {
	pool := []*gamepool.Game{gamepooltest.Game("quiet", quietGame)}
	d, err := New(DefaultConfig()).Generate(seeded(5), pool, ModeCriticalPosition, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if d.Ply != 10 || d.PlayedMove != "Nb1" {
		t.Errorf("ply %d move %q, want midpoint 10 Nb1", d.Ply, d.PlayedMove)
	}
}

func TestGenerateRejectsStartPlacement(t *testing.T) {
	// Random moments in the quiet game can only land on ply 12, which
	// repeats the starting placement.
	pool := []*gamepool.Game{gamepooltest.Game("quiet", quietGame)}
	_, err := New(DefaultConfig()).Generate(seeded(5), pool, ModeRandomMoment, Options{})
	var gf *GenerationFailure
	if !errors.As(err, &gf) {
		t.Fatalf("error = %v, want *GenerationFailure", err)
	}
	if gf.Rejections["start-position"] != 50 {
		t.Errorf("rejections = %v, want 50 start-position", gf.Rejections)
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	gen := New(DefaultConfig())
	pool := []*gamepool.Game{
		gamepooltest.Game("opera", gamepooltest.Opera),
		gamepooltest.Game("quiet", quietGame),
	}
	ignoreID := cmpopts.IgnoreFields(Drill{}, "ID")

	for seed := uint64(0); seed < 20; seed++ {
		a, errA := gen.Generate(seeded(seed), pool, ModeAny, Options{})
		b, errB := gen.Generate(seeded(seed), pool, ModeAny, Options{})
		if (errA == nil) != (errB == nil) {
			t.Fatalf("seed %d: errors differ: %v vs %v", seed, errA, errB)
		}
		if errA != nil {
			continue
		}
		if diff := cmp.Diff(a, b, ignoreID); diff != "" {
			t.Errorf("seed %d: drills differ (-a +b):\n%s", seed, diff)
		}
	}
}

type scriptedRand struct {
	floats []float64
}

func (r *scriptedRand) IntN(n int) int { return 0 }

func (r *scriptedRand) Float64() float64 {
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func TestPickModeWeights(t *testing.T) {
	gen := New(DefaultConfig())
	tests := []struct {
		x    float64
		want Mode
	}{
		{0.0, ModeCriticalPosition},
		{0.39, ModeCriticalPosition},
		{0.41, ModeRandomMoment},
		{0.64, ModeRandomMoment},
		{0.66, ModeStartFromMove},
		{0.84, ModeStartFromMove},
		{0.86, ModeEndgameFinish},
		{0.999, ModeEndgameFinish},
	}
	for _, tt := range tests {
		got := gen.pickMode(&scriptedRand{floats: []float64{tt.x}})
		if got != tt.want {
			t.Errorf("pickMode(%v) = %s, want %s", tt.x, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"any", ModeAny, false},
		{"critical-position", ModeCriticalPosition, false},
		{"RANDOM_MOMENT", ModeRandomMoment, false},
		{" endgame_finish ", ModeEndgameFinish, false},
		{"bullet", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestGeneratedThemeMatchesMode(t *testing.T) {
	gen := New(DefaultConfig())
	for _, mode := range []Mode{ModeRandomMoment, ModeCriticalPosition, ModeStartFromMove, ModeEndgameFinish} {
		d, err := gen.Generate(seeded(5), operaPool(), mode, Options{})
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if d.Theme != ThemeFor(mode) {
			t.Errorf("%s: theme = %q, want %q", mode, d.Theme, ThemeFor(mode))
		}
	}
	if got := ThemeFor(ModeAny); got != "" {
		t.Errorf("ThemeFor(any) = %q, want empty", got)
	}
}
