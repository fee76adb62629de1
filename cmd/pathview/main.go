// pathview loads a saved turn snapshot, plans a route to the given tile and
// shows the board with the route drawn over it.
//
//	pathview -state turn.json -x 8 -y 3         full screen, q to quit
//	pathview -state turn.json -x 8 -y 3 -text   print and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"vindinium-bot/bot"
	"vindinium-bot/config"
	"vindinium-bot/models"
	"vindinium-bot/pathing"
	"vindinium-bot/render"
)

func loadState(path string) (*models.State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state models.State
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}
	return &state, nil
}

// chooseMove takes the first step of a planned path, or asks the fallback
// bot when there is none to take
func chooseMove(state *models.State, path pathing.Path, ok bool, fallback string, seed int64) (models.Direction, string) {
	if ok {
		if len(path) == 0 {
			return models.Stay, "path"
		}
		return pathing.ResolveDirection(state.HeroPosition(), path[0].Pos), "path"
	}
	if fallback == "random" {
		rnd := bot.NewRandomBot(bot.NewRand(seed))
		return rnd.Step(state), rnd.Name()
	}
	return models.Stay, "path"
}

func main() {
	var statePath, cfgPath, fallback string
	var x, y int
	var text bool
	flag.StringVar(&statePath, "state", "", "turn snapshot JSON file")
	flag.StringVar(&cfgPath, "config", "", "YAML config file")
	flag.IntVar(&x, "x", 0, "target column")
	flag.IntVar(&y, "y", 0, "target row")
	flag.BoolVar(&text, "text", false, "print the board instead of opening the terminal view")
	flag.StringVar(&fallback, "fallback", "stay", "move when the target is unreachable: stay or random")
	flag.Parse()

	if statePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	state, err := loadState(statePath)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	searcher := pathing.Searcher{MaxIterations: cfg.Search.MaxIterations}
	start, target := state.HeroPosition(), models.Position{X: x, Y: y}
	grid := pathing.BuildGrid(&state.Game.Board)
	path, ok, err := searcher.FindPath(start, target, grid)
	if err != nil {
		log.Fatalf("Cannot plan: %v", err)
	}

	move, mover := chooseMove(state, path, ok, fallback, cfg.Bot.Seed)
	status := fmt.Sprintf("turn %d  %v -> %v  steps %d  move %v (%s)",
		state.Game.Turn, start, target, len(path), move, mover)
	if !ok {
		status = fmt.Sprintf("turn %d  %v -> %v  unreachable  move %v (%s)",
			state.Game.Turn, start, target, move, mover)
	}

	if text {
		fmt.Print(render.Text(grid, path))
		fmt.Println(status)
		return
	}
	if err := view(grid, path, status); err != nil {
		log.Fatalf("Terminal view failed: %v", err)
	}
}

func view(grid *pathing.Grid, path pathing.Path, status string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	pal := render.DefaultPalette()
	draw := func() {
		s.Clear()
		render.Draw(s, grid, path, pal)
		render.DrawStatus(s, grid, status+"  [q]uit")
		s.Show()
	}
	draw()

	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
			draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		case nil:
			return nil
		}
	}
}
