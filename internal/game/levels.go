package game

// builtinLevel is a named grid shipped with the game.
type builtinLevel struct {
	name string
	grid []string
}

var builtinLevels = [...]builtinLevel{
	{"Simple", []string{
		"########################",
		"#P.....T..............E#",
		"#.#####....######......#",
		"#.....#....#....G......#",
		"#.###.#....#######.###.#",
		"#.....#............###.#",
		"#.####.#######..G......#",
		"#......................#",
		"########################",
	}},
	{"Walls and Guards", []string{
		"########################",
		"#P....T.....#.........E#",
		"#.#####.....#..####..G.#",
		"#.....#.....#..#....####",
		"#.###.#.########.###...#",
		"#...#.#........#...#...#",
		"#.###.#....G..#.#.##...#",
		"#......................#",
		"########################",
	}},
	{"Doors and Keys", []string{
		"########################",
		"#P....K.....#.........E#",
		"#.#####.....D..####..G.#",
		"#.....#.....#..#....####",
		"#.###.#.########.###...#",
		"#...#.#........#...#...#",
		"#.###.#....G..#.#.##...#",
		"#......................#",
		"########################",
	}},
	{"Multiple Treasures", []string{
		"########################",
		"#P....T.....T.........E#",
		"#.#####.....#..####..G.#",
		"#.....#.....#..#....####",
		"#.###.#.########.###...#",
		"#...#.#........#...#...#",
		"#.###.#....G..#.#.##...#",
		"#......................#",
		"########################",
	}},
	{"Complex Maze", []string{
		"########################",
		"#P..T.#.....#.........E#",
		"#.####.#.....#..####..G#",
		"#.....#.#....#..#....###",
		"#.###.#.#.########.###.#",
		"#...#.#.#........#...#.#",
		"#.###.#.#....G..#.#.##.#",
		"#.....#................#",
		"########################",
	}},
	{"Power-ups", []string{
		"########################",
		"#P....S.....#.........E#",
		"#.#####.....#..####..G.#",
		"#.....#.....#..#....####",
		"#.###.#.########.###...#",
		"#...#.#........#...#...#",
		"#.###.#....G..#.#.##...#",
		"#......................#",
		"########################",
	}},
	{"High Security", []string{
		"########################",
		"#P....T.....#.........E#",
		"#.#####.....#..####..G.#",
		"#.....#.....#..#....####",
		"#.###.#.########.###...#",
		"#...#.#........#...#...#",
		"#.###.#....G..#.#.##...#",
		"#.....G................#",
		"########################",
	}},
	{"Final Heist", []string{
		"########################",
		"#P..T.K.....D.........E#",
		"#.####.#.....#..####..G#",
		"#.....#.#....#..#....###",
		"#.###.#.#.########.###.#",
		"#...#.#.#........#...#.#",
		"#.###.#.#....G..#.#.##.#",
		"#.....#.....S..........#",
		"########################",
	}},
}

// BuiltinLevels parses the shipped campaign, in play order.
func BuiltinLevels() []*Level {
	out := make([]*Level, len(builtinLevels))
	for i, bl := range builtinLevels {
		out[i] = ParseLevel(bl.name, bl.grid)
	}
	return out
}
