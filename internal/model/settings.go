package model

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Settings tunes power object spawning and power-up durations. Durations
// count half-turns: one tick per completed turn of either side.
type Settings struct {
	SpawnChance     float64
	MaxPowerObjects int
	RarityWeights   [3]int
	ShieldTurns     int
	BlackHoleTurns  int
	ArmageddonTurns int
}

func DefaultSettings() Settings {
	return Settings{
		SpawnChance:     0.25,
		MaxPowerObjects: 2,
		RarityWeights:   [3]int{60, 30, 10},
		ShieldTurns:     4,
		BlackHoleTurns:  6,
		ArmageddonTurns: 4,
	}
}

// Option configures a Game at construction.
type Option func(*Game)

func WithID(id string) Option {
	return func(g *Game) { g.ID = id }
}

func WithSettings(s Settings) Option {
	return func(g *Game) { g.settings = s }
}

// WithRand fixes the randomness source. Two games built with equally seeded
// sources and fed the same inputs stay identical.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(g *Game) { g.log = log }
}

// WithBoard starts the game from a custom position instead of the standard
// one.
func WithBoard(b *Board) Option {
	return func(g *Game) { g.board = b }
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
