package models

import (
	"encoding/json"
	"fmt"
)

// TileKind identifies the terrain occupying one board cell
type TileKind int

// Tile kinds as they appear on a Vindinium board
const (
	TileFree TileKind = iota
	TileWall
	TileTavern
	TileMine
	TileHero
)

// String returns a readable name for the tile kind
func (k TileKind) String() string {
	switch k {
	case TileFree:
		return "free"
	case TileWall:
		return "wall"
	case TileTavern:
		return "tavern"
	case TileMine:
		return "mine"
	case TileHero:
		return "hero"
	default:
		return fmt.Sprintf("TileKind(%d)", int(k))
	}
}

// Tile is one board cell. Owner holds the hero id for hero tiles and for
// mines claimed by a hero; it is 0 for an unowned mine and for every other kind.
type Tile struct {
	Kind  TileKind `json:"kind"`
	Owner int      `json:"owner,omitempty"`
}

// Convenience constructors
var (
	Free   = Tile{Kind: TileFree}
	Wall   = Tile{Kind: TileWall}
	Tavern = Tile{Kind: TileTavern}
)

// Mine returns a mine tile claimed by owner, or unowned when owner is 0
func Mine(owner int) Tile {
	return Tile{Kind: TileMine, Owner: owner}
}

// HeroAt returns the tile occupied by hero id
func HeroAt(id int) Tile {
	return Tile{Kind: TileHero, Owner: id}
}

// OwnedBy reports the owning hero of a mine or hero tile
func (t Tile) OwnedBy() (int, bool) {
	if (t.Kind == TileMine || t.Kind == TileHero) && t.Owner > 0 {
		return t.Owner, true
	}
	return 0, false
}

// String encodes the tile in the two-character board notation
func (t Tile) String() string {
	switch t.Kind {
	case TileFree:
		return "  "
	case TileWall:
		return "##"
	case TileTavern:
		return "[]"
	case TileMine:
		if t.Owner == 0 {
			return "$-"
		}
		return fmt.Sprintf("$%d", t.Owner)
	case TileHero:
		return fmt.Sprintf("@%d", t.Owner)
	default:
		return "??"
	}
}

// ParseTile decodes a two-character tile encoding
func ParseTile(s string) (Tile, error) {
	if len(s) != 2 {
		return Tile{}, fmt.Errorf("invalid tile %q: want 2 characters", s)
	}
	switch s {
	case "  ":
		return Free, nil
	case "##":
		return Wall, nil
	case "[]":
		return Tavern, nil
	case "$-":
		return Mine(0), nil
	}

	id := s[1]
	if id < '1' || id > '9' {
		return Tile{}, fmt.Errorf("invalid tile %q", s)
	}
	switch s[0] {
	case '$':
		return Mine(int(id - '0')), nil
	case '@':
		return HeroAt(int(id - '0')), nil
	}
	return Tile{}, fmt.Errorf("invalid tile %q", s)
}

// MaxBoardSize bounds decoded boards; Vindinium maps are at most 28 tiles wide
const MaxBoardSize = 256

// Board is a square matrix of tiles indexed Tiles[y][x]
type Board struct {
	Size  int
	Tiles [][]Tile
}

// NewBoard creates a size x size board filled with free tiles
func NewBoard(size int) *Board {
	tiles := make([][]Tile, size)
	for y := range tiles {
		tiles[y] = make([]Tile, size)
	}
	return &Board{Size: size, Tiles: tiles}
}

// ParseBoard decodes the row-major tile string of a board with the given size
func ParseBoard(size int, encoded string) (*Board, error) {
	if size <= 0 || size > MaxBoardSize {
		return nil, fmt.Errorf("invalid board size %d, want 1..%d", size, MaxBoardSize)
	}
	if len(encoded) != 2*size*size {
		return nil, fmt.Errorf("board of size %d needs %d tile characters, got %d", size, 2*size*size, len(encoded))
	}

	board := NewBoard(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			offset := 2 * (y*size + x)
			tile, err := ParseTile(encoded[offset : offset+2])
			if err != nil {
				return nil, fmt.Errorf("tile at %v: %v", Position{X: x, Y: y}, err)
			}
			board.Tiles[y][x] = tile
		}
	}
	return board, nil
}

// InBounds checks if a position lies on the board
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Size && p.Y >= 0 && p.Y < b.Size
}

// At returns the tile at a position; callers check InBounds first
func (b *Board) At(p Position) Tile {
	return b.Tiles[p.Y][p.X]
}

// Set replaces the tile at a position
func (b *Board) Set(p Position, t Tile) {
	b.Tiles[p.Y][p.X] = t
}

// Encode returns the row-major tile string of the board
func (b *Board) Encode() string {
	buf := make([]byte, 0, 2*b.Size*b.Size)
	for _, row := range b.Tiles {
		for _, tile := range row {
			buf = append(buf, tile.String()...)
		}
	}
	return string(buf)
}

type boardJSON struct {
	Size  int    `json:"size"`
	Tiles string `json:"tiles"`
}

// MarshalJSON writes the board in the game's wire format
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: b.Size, Tiles: b.Encode()})
}

// UnmarshalJSON reads the board from the game's wire format
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseBoard(raw.Size, raw.Tiles)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
