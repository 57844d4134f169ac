package game

// GuardView is a read-only copy of one guard for renderers.
type GuardView struct {
	ID           int
	Pos          Vec2
	Facing       Vec2
	VisionRadius float64
	State        GuardState
	Trigger      AlertTrigger
	AlertTimer   float64
	ChaseTarget  Vec2
	Seeing       bool
	Patrol       Patrol
}

// Snapshot is everything a frontend needs to draw one frame. It shares no
// memory with the run.
type Snapshot struct {
	State      RunState
	Difficulty Difficulty
	LevelName  string
	LevelIndex int
	LevelCount int
	Width      float64
	Height     float64
	Tick       int

	Elapsed   float64
	Remaining float64

	Player      Vec2
	PlayerBox   Rect
	Crouched    bool
	Boosted     bool
	Invisible   bool
	Guards      []GuardView
	Walls       []Rect
	LockedDoors []Rect
	Treasures   []Rect
	Keys        []Rect
	Powerups    []Powerup
	Exit        Rect
	HasExit     bool

	Meter     float64
	Threshold float64
	EMPReady  bool
	EMPActive bool

	Total     int
	LastScore int
}

// Snapshot captures the current world. Before the first level is loaded
// only the run-level fields are filled.
func (r *Run) Snapshot() Snapshot {
	lvl := r.level()
	s := Snapshot{
		State:      r.state,
		Difficulty: r.difficulty,
		LevelName:  lvl.Name,
		LevelIndex: r.levelIndex,
		LevelCount: len(r.levels),
		Width:      lvl.Width(),
		Height:     lvl.Height(),
		Tick:       r.tick,
		Elapsed:    r.Elapsed(),
		Remaining:  r.Remaining(),
		Total:      r.total,
		LastScore:  r.lastScore,
		EMPReady:   r.EMPReady(),
		EMPActive:  r.empActive,
		Exit:       lvl.Exit,
		HasExit:    lvl.HasExit,
	}
	if r.player == nil {
		return s
	}

	s.Player = r.player.Pos
	s.PlayerBox = r.player.Bounds()
	s.Crouched = r.player.Crouch
	s.Boosted = r.player.Boosted()
	s.Invisible = r.player.Invisible(r.Elapsed())
	s.Meter = r.meter.Value
	s.Threshold = r.meter.Threshold

	s.Walls = append([]Rect(nil), r.walls...)
	s.LockedDoors = append([]Rect(nil), r.doors...)
	s.Treasures = append([]Rect(nil), r.treasures...)
	s.Keys = append([]Rect(nil), r.keys...)
	s.Powerups = append([]Powerup(nil), r.powerups...)

	s.Guards = make([]GuardView, len(r.guards))
	for i, g := range r.guards {
		s.Guards[i] = GuardView{
			ID:           g.ID,
			Pos:          g.Pos,
			Facing:       g.Facing,
			VisionRadius: g.VisionRadius,
			State:        g.State(),
			Trigger:      g.Trigger,
			AlertTimer:   g.AlertTimer,
			ChaseTarget:  g.ChaseTarget,
			Seeing:       g.Seeing,
			Patrol:       g.Patrol,
		}
	}
	return s
}
