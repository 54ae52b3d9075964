package game

// GridSize is the width and height of the board in cells.
const GridSize = 20

// Origin is where a fresh snake spawns and where a revive resets a short snake.
var Origin = Cell{X: 10, Y: 10}

type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func InBounds(c Cell) bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

type Fill uint8

const (
	Empty Fill = iota
	Body
	Head
	Food
)

type Square struct {
	IsOcupied bool
	Fill      Fill
}

// Board is an occupancy view of a session, indexed [x][y]. It is derived
// for renderers only and never consulted by the rules.
type Board [GridSize][GridSize]Square

func NewBoard(s Session) Board {
	var b Board
	for i, unit := range s.Snake {
		if !InBounds(unit) {
			continue
		}
		fill := Body
		if i == 0 {
			fill = Head
		}
		b[unit.X][unit.Y] = Square{IsOcupied: true, Fill: fill}
	}
	if InBounds(s.Food) {
		b[s.Food.X][s.Food.Y] = Square{IsOcupied: true, Fill: Food}
	}
	return b
}
