package models

// GamePos is a position as reported by the game API, where x is the board row
// and y is the column
type GamePos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position converts an API position to a board Position
func (p GamePos) Position() Position {
	return Position{X: p.Y, Y: p.X}
}

// Hero is one of the players on the board
type Hero struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	UserID    string  `json:"userId,omitempty"`
	Elo       int     `json:"elo,omitempty"`
	Pos       GamePos `json:"pos"`
	SpawnPos  GamePos `json:"spawnPos"`
	Life      int     `json:"life"`
	Gold      int     `json:"gold"`
	MineCount int     `json:"mineCount"`
	Crashed   bool    `json:"crashed"`
}

// Game is the shared part of a turn snapshot
type Game struct {
	ID       string `json:"id"`
	Turn     int    `json:"turn"`
	MaxTurns int    `json:"maxTurns"`
	Heroes   []Hero `json:"heroes"`
	Board    Board  `json:"board"`
	Finished bool   `json:"finished"`
}

// State is the full snapshot the server sends every turn
type State struct {
	Game    Game   `json:"game"`
	Hero    Hero   `json:"hero"`
	Token   string `json:"token,omitempty"`
	ViewURL string `json:"viewUrl,omitempty"`
	PlayURL string `json:"playUrl,omitempty"`
}

// HeroPosition returns the board position of the hero this snapshot was sent to
func (s *State) HeroPosition() Position {
	return s.Hero.Pos.Position()
}

// HeroByID finds a hero in the game by id
func (s *State) HeroByID(id int) (*Hero, bool) {
	for i := range s.Game.Heroes {
		if s.Game.Heroes[i].ID == id {
			return &s.Game.Heroes[i], true
		}
	}
	return nil, false
}
