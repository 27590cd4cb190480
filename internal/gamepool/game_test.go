package gamepool_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tactiz/internal/gamepool"
	"github.com/abhisek/tactiz/internal/gamepool/gamepooltest"
)

func TestReplayOpera(t *testing.T) {
	g := gamepooltest.Game("opera", gamepooltest.Opera)

	r, err := g.Replay()
	require.NoError(t, err)
	require.Equal(t, gamepooltest.OperaPlies, r.Len())

	first := r.Plies[0]
	assert.Equal(t, "e4", first.SAN)
	assert.Equal(t, gamepool.StartPlacement, first.Placement)
	assert.False(t, first.IsTactical())

	check := r.Plies[20]
	assert.Equal(t, "Bxb5+", check.SAN)
	assert.True(t, check.Capture)
	assert.True(t, check.Check)
	assert.False(t, check.Mate)

	castle := r.Plies[22]
	assert.Equal(t, "O-O-O", castle.SAN)
	assert.False(t, castle.IsTactical())

	mate := r.Plies[32]
	assert.Equal(t, "Rd8#", mate.SAN)
	assert.True(t, mate.Mate)
	assert.False(t, mate.Check)
}

func TestReplayPositionsAreValidFEN(t *testing.T) {
	g := gamepooltest.Game("opera", gamepooltest.Opera)
	r, err := g.Replay()
	require.NoError(t, err)

	for _, p := range r.Plies {
		_, err := chess.FEN(p.FENBefore)
		assert.NoErrorf(t, err, "ply %d: %s", p.Index, p.FENBefore)
		assert.True(t, strings.HasPrefix(p.FENBefore, p.Placement+" "), "ply %d placement mismatch", p.Index)
	}
}

func TestReplayMalformed(t *testing.T) {
	for _, pgn := range []string{"", "   ", gamepooltest.Illegal} {
		g := gamepooltest.Game("bad", pgn)
		_, err := g.Replay()
		if !errors.Is(err, gamepool.ErrMalformed) {
			t.Errorf("Replay(%q) error = %v, want ErrMalformed", pgn, err)
		}
	}
}

func TestReplayIsMemoized(t *testing.T) {
	g := gamepooltest.Game("opera", gamepooltest.Opera)

	var wg sync.WaitGroup
	results := make([]*gamepool.Replay, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := g.Replay()
			if err != nil {
				t.Errorf("replay: %v", err)
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("replay %d returned a different instance", i)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	g := &gamepool.Game{ID: "x", White: "w", Black: "b", Result: "1-0", TimeClass: "blitz", Event: "e", PGN: "1. e4 *"}
	back := gamepool.FromRecord(g.Record())
	assert.Equal(t, g.ID, back.ID)
	assert.Equal(t, g.White, back.White)
	assert.Equal(t, g.TimeClass, back.TimeClass)
	assert.Equal(t, g.PGN, back.PGN)
}
