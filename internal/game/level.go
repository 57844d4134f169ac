package game

import "unicode/utf8"

// TileSize is the edge length of one grid cell in pixels.
const TileSize = 40

const (
	pickupInset = 8
	pickupSize  = 24
)

// PowerupKind identifies what a powerup grants.
type PowerupKind int

const (
	PowerupSpeed PowerupKind = iota
	PowerupInvisibility
)

func (k PowerupKind) String() string {
	switch k {
	case PowerupSpeed:
		return "speed"
	case PowerupInvisibility:
		return "invisibility"
	default:
		return "unknown"
	}
}

// Powerup is a collectable region that grants a timed buff.
type Powerup struct {
	Kind PowerupKind
	Rect Rect
}

// Level is the static layout parsed from a grid. It is never mutated after
// parsing; a Run copies the mutable parts (doors, pickups) on load.
type Level struct {
	Name        string
	Cols, Rows  int
	Walls       []Rect
	Doors       []Rect
	Treasures   []Rect
	Keys        []Rect
	Powerups    []Powerup
	Exit        Rect
	HasExit     bool
	PlayerSpawn Vec2
	GuardSpawns []Vec2

	// GuardPatrols optionally overrides the pattern for the spawn at the
	// same index. Spawns past its end use PatrolFor.
	GuardPatrols []PatrolKind
}

// patrolFor returns the pattern for the i-th guard spawn.
func (l *Level) patrolFor(i int) PatrolKind {
	if i < len(l.GuardPatrols) {
		return l.GuardPatrols[i]
	}
	return PatrolFor(i)
}

// Width returns the level width in pixels.
func (l *Level) Width() float64 { return float64(l.Cols * TileSize) }

// Height returns the level height in pixels.
func (l *Level) Height() float64 { return float64(l.Rows * TileSize) }

// ParseLevel builds a Level from rows of tile symbols, one tile per rune.
// Unknown symbols are open floor. When several spawn markers appear the last one wins.
func ParseLevel(name string, rows []string) *Level {
	l := &Level{Name: name, Rows: len(rows)}
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n > l.Cols {
			l.Cols = n
		}
		x := -1
		for _, ch := range row {
			x++
			wx, wy := float64(x*TileSize), float64(y*TileSize)
			tile := Rect{X: wx, Y: wy, W: TileSize, H: TileSize}
			pickup := Rect{X: wx + pickupInset, Y: wy + pickupInset, W: pickupSize, H: pickupSize}

			switch ch {
			case '#':
				l.Walls = append(l.Walls, tile)
			case 'P':
				l.PlayerSpawn = tile.Center()
			case 'T':
				l.Treasures = append(l.Treasures, pickup)
			case 'E':
				l.Exit = pickup
				l.HasExit = true
			case 'G':
				l.GuardSpawns = append(l.GuardSpawns, tile.Center())
			case 'K':
				l.Keys = append(l.Keys, pickup)
			case 'D':
				l.Doors = append(l.Doors, tile)
			case 'S':
				l.Powerups = append(l.Powerups, Powerup{Kind: PowerupSpeed, Rect: pickup})
			}
		}
	}
	return l
}
