// Package gamepooltest provides known games for tests.
package gamepooltest

import "github.com/abhisek/tactiz/internal/gamepool"

// Opera is Morphy's 1858 Opera Game: 33 plies ending in mate.
const Opera = `[Event "Paris Opera"]
[Site "Paris FRA"]
[Date "1858.11.02"]
[White "Paul Morphy"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]
[TimeControl "-"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7
8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8 13. Rxd7 Rxd7
14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0
`

// OperaPlies is the number of plies in Opera.
const OperaPlies = 33

// ScholarsMate is a 7-ply miniature.
const ScholarsMate = `[Event "Casual"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[TimeControl "180+2"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`

// ThreePly is a game far too short to cut a drill from.
const ThreePly = `[Event "Casual"]
[White "carol"]
[Black "dave"]
[Result "*"]

1. e4 e5 2. Nf3 *
`

// Illegal contains a move that is not legal in its position.
const Illegal = `[Event "Broken"]
[White "eve"]
[Black "frank"]
[Result "*"]

1. e4 e5 2. Ke3 Nc6 *
`

// Game builds a pool game with the given id and PGN text.
func Game(id, pgn string) *gamepool.Game {
	return &gamepool.Game{ID: id, Result: "*", PGN: pgn}
}
