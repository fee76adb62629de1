package bot

import (
	"log"
	"math/rand"

	"vindinium-bot/models"
	"vindinium-bot/pathing"
)

// Bot decides the move for one turn
type Bot interface {
	Step(state *models.State) models.Direction
	Name() string
}

// NewRand returns a seeded generator; a zero seed is mapped to 1
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

var moves = [...]models.Direction{models.North, models.East, models.South, models.West, models.Stay}

// RandomBot picks any of the five moves uniformly
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates a random bot drawing from rng
func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

// Step returns a random move
func (b *RandomBot) Step(_ *models.State) models.Direction {
	return moves[b.rng.Intn(len(moves))]
}

// Name identifies the bot in logs
func (b *RandomBot) Name() string {
	return "random"
}

// PathBot walks toward a fixed destination. Picking the destination is left
// to the caller; an unreachable one makes the bot stay put.
type PathBot struct {
	Target   models.Position
	Searcher pathing.Searcher
}

// NewPathBot creates a bot heading for target
func NewPathBot(target models.Position, searcher pathing.Searcher) *PathBot {
	return &PathBot{Target: target, Searcher: searcher}
}

// Step returns the first move of the shortest path to the target
func (b *PathBot) Step(state *models.State) models.Direction {
	start := state.HeroPosition()
	dir, ok, err := b.Searcher.NextMove(&state.Game.Board, start, b.Target)
	if err != nil {
		log.Printf("pathbot: turn %d: %v", state.Game.Turn, err)
		return models.Stay
	}
	if !ok {
		log.Printf("pathbot: turn %d: no path from %v to %v", state.Game.Turn, start, b.Target)
		return models.Stay
	}
	return dir
}

// Name identifies the bot in logs
func (b *PathBot) Name() string {
	return "path"
}
