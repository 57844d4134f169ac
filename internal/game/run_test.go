package game

import (
	"errors"
	"testing"
)

func eventsOf(evs []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range evs {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestRun_StateMachineRejectsOutOfOrderCommands(t *testing.T) {
	r, err := NewRun(BuiltinLevels(), DefaultTuning())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if r.State() != StateDifficultySelect {
		t.Fatalf("new run should wait for a difficulty, got %s", r.State())
	}
	if err := r.Acknowledge(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("acknowledge before selecting: expected ErrInvalidTransition, got %v", err)
	}
	if err := r.SelectDifficulty("Impossible"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
	if err := r.SelectDifficulty("Hard"); err != nil {
		t.Fatalf("SelectDifficulty: %v", err)
	}
	if r.State() != StateBriefing || r.Difficulty().Name != "Hard" {
		t.Fatalf("expected briefing on Hard, got %s %s", r.State(), r.Difficulty().Name)
	}
	if evs := r.Step(Input{}); evs != nil {
		t.Fatal("Step outside Playing should be a no-op")
	}
	if err := r.Acknowledge(); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if r.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", r.State())
	}
	if err := r.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance while playing: expected ErrInvalidTransition, got %v", err)
	}
	if err := r.Retry(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("retry while playing: expected ErrInvalidTransition, got %v", err)
	}
	if err := r.ReturnToMenu(); err != nil {
		t.Fatalf("ReturnToMenu: %v", err)
	}
	if r.State() != StateDifficultySelect {
		t.Fatalf("expected difficulty select, got %s", r.State())
	}
}

func TestRun_NoLevels(t *testing.T) {
	if _, err := NewRun(nil, DefaultTuning()); !errors.Is(err, ErrNoLevels) {
		t.Fatalf("expected ErrNoLevels, got %v", err)
	}
}

func TestRun_KeyUnlocksAllDoorsOnce(t *testing.T) {
	ts := NewTestSim(WithGrid(
		"#########",
		"#PKKD.D.#",
		"#########",
	))
	if len(ts.Snapshot().LockedDoors) != 2 {
		t.Fatalf("expected 2 locked doors, got %d", len(ts.Snapshot().LockedDoors))
	}

	ts.Input.Move = MoveIntent{DX: 1}
	ts.RunTicks(60)

	if n := ts.CountEvents(EventKeyCollected); n != 2 {
		t.Fatalf("expected both keys collected, got %d", n)
	}
	unlocks := eventsOf(ts.Events, EventDoorsUnlocked)
	if len(unlocks) != 1 {
		t.Fatalf("doors must unlock exactly once, got %d", len(unlocks))
	}
	if unlocks[0].Count != 2 {
		t.Fatalf("first key should unlock both doors, got %d", unlocks[0].Count)
	}
	snap := ts.Snapshot()
	if len(snap.LockedDoors) != 0 || len(snap.Keys) != 0 {
		t.Fatalf("expected no doors or keys left, got %d doors %d keys", len(snap.LockedDoors), len(snap.Keys))
	}
	for _, d := range ts.Level.Doors {
		if containsRect(ts.Run.Walls(), d) {
			t.Fatalf("door %+v still blocks movement", d)
		}
	}
	if len(ts.Run.Walls()) != len(ts.Level.Walls) {
		t.Fatalf("only doors should have been removed: %d walls, level has %d", len(ts.Run.Walls()), len(ts.Level.Walls))
	}
	if ts.Snapshot().Player.X < 200 {
		t.Fatalf("player should have walked through the doorways, x=%.1f", ts.Snapshot().Player.X)
	}
}

func TestRun_LevelCompleteNeedsTreasureAndExit(t *testing.T) {
	ts := NewTestSim(WithGrid(
		"#######",
		"#PE.T.#",
		"#######",
	))

	ts.Input.Move = MoveIntent{DX: 1}
	onExit := ts.RunUntil(func(s *TestSim) bool {
		return s.Run.Player().Bounds().Overlaps(s.Level.Exit)
	}, 60)
	if onExit < 0 {
		t.Fatal("player never reached the exit")
	}
	if ts.Run.State() != StatePlaying {
		t.Fatalf("exit with treasure left must not complete, got %s", ts.Run.State())
	}

	got := ts.RunUntil(func(s *TestSim) bool {
		return s.CountEvents(EventTreasureCollected) == 1
	}, 120)
	if got < 0 {
		t.Fatal("player never collected the treasure")
	}
	if ts.Run.State() != StatePlaying {
		t.Fatalf("treasure away from the exit must not complete, got %s", ts.Run.State())
	}

	ts.Input.Move = MoveIntent{DX: -1}
	ts.RunUntil(func(s *TestSim) bool { return s.Run.State() != StatePlaying }, 300)
	if ts.Run.State() != StateRunComplete {
		t.Fatalf("single-level run should finish with RunComplete, got %s", ts.Run.State())
	}
	done := eventsOf(ts.Events, EventLevelComplete)
	run := eventsOf(ts.Events, EventRunComplete)
	if len(done) != 1 || len(run) != 1 {
		t.Fatalf("expected one LevelComplete and one RunComplete, got %d/%d", len(done), len(run))
	}
	if done[0].Score <= 1000 || run[0].Score != done[0].Score || ts.Run.Total() != done[0].Score {
		t.Fatalf("unexpected scores: level=%d run=%d total=%d", done[0].Score, run[0].Score, ts.Run.Total())
	}
}

func TestRun_ScoreAccumulatesAcrossLevels(t *testing.T) {
	onExit := func(name string) *Level {
		return &Level{
			Name:        name,
			Cols:        5,
			Rows:        3,
			PlayerSpawn: Vec2{100, 60},
			Exit:        Rect{X: 88, Y: 48, W: 24, H: 24},
			HasExit:     true,
		}
	}
	r, err := NewRun([]*Level{onExit("a"), onExit("b")}, DefaultTuning())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if err := r.SelectDifficulty("Medium"); err != nil {
		t.Fatal(err)
	}
	if err := r.Acknowledge(); err != nil {
		t.Fatal(err)
	}

	evs := r.Step(Input{})
	lc := eventsOf(evs, EventLevelComplete)
	if len(lc) != 1 || r.State() != StateLevelComplete {
		t.Fatalf("expected LevelComplete on the first tick, got %s", r.State())
	}
	// 120s limit, one tick spent, meter empty.
	if lc[0].Score != 1599 {
		t.Fatalf("expected score 1599, got %d", lc[0].Score)
	}
	if err := r.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if r.LevelIndex() != 1 || r.State() != StatePlaying || r.Tick() != 0 {
		t.Fatalf("expected fresh second level, got idx=%d %s tick=%d", r.LevelIndex(), r.State(), r.Tick())
	}

	evs = r.Step(Input{})
	rc := eventsOf(evs, EventRunComplete)
	if len(rc) != 1 || rc[0].Score != 3198 || r.State() != StateRunComplete {
		t.Fatalf("expected RunComplete with 3198, got %v in %s", rc, r.State())
	}
	if err := r.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("no level after the last: expected ErrInvalidTransition, got %v", err)
	}
	if err := r.ReturnToMenu(); err != nil {
		t.Fatal(err)
	}
	if r.Total() != 0 || r.LevelIndex() != 0 {
		t.Fatalf("menu should reset the run, total=%d idx=%d", r.Total(), r.LevelIndex())
	}
}

func TestLevelScore_NeverNegative(t *testing.T) {
	if s := LevelScore(0, 100); s != 0 {
		t.Fatalf("expected 0, got %d", s)
	}
	if s := LevelScore(10, 1); s != 1000 {
		t.Fatalf("expected 1000, got %d", s)
	}
	if s := LevelScore(-5, 0); s != 1000 {
		t.Fatalf("negative remaining should count as 0, got %d", s)
	}
}

func TestRun_CaughtBySight(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithPlayerAt(600, 300),
	)
	tick := ts.RunUntil(func(s *TestSim) bool { return s.Run.State() != StatePlaying }, 120)
	if ts.Run.State() != StateCaught {
		t.Fatalf("expected caught, got %s", ts.Run.State())
	}
	// 1.1 threshold at 1.8/s upright.
	if tick < 34 || tick > 40 {
		t.Fatalf("expected capture around tick 37, got %d", tick)
	}
	if ts.CountEvents(EventPlayerCaught) != 1 {
		t.Fatalf("expected one PlayerCaught, got %d", ts.CountEvents(EventPlayerCaught))
	}
	spotted := eventsOf(ts.Events, EventGuardSpotted)
	if len(spotted) != 1 || spotted[0].Tick != 1 {
		t.Fatalf("expected a single GuardSpotted on tick 1, got %v", spotted)
	}
	alerts := eventsOf(ts.Events, EventGuardAlerted)
	if len(alerts) == 0 || alerts[0].Trigger != TriggerSight {
		t.Fatalf("expected a sight alert, got %v", alerts)
	}

	if err := ts.Run.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if ts.Run.State() != StatePlaying || ts.Run.Meter().Value != 0 || ts.Run.Tick() != 0 {
		t.Fatal("retry should reload the level with an empty meter")
	}
	if g := ts.Guard(0); g.Alert || g.Pos != (Vec2{400, 300}) {
		t.Fatalf("retry should respawn guards, got %+v", g.Pos)
	}
}

func TestRun_SightBroadcastsToNeighbour(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithGuard(400, 380, PatrolVertical),
		WithPlayerAt(600, 300),
	)
	ts.RunTicks(1)

	b := ts.Guard(1)
	if !b.Alert || b.Trigger != TriggerBroadcast {
		t.Fatalf("B should be alerted by broadcast, got alert=%v %s", b.Alert, b.Trigger)
	}
	if !approx(b.ChaseTarget.X, 402.2) || b.ChaseTarget.Y != 300 {
		t.Fatalf("B should chase A's position at broadcast time, got %+v", b.ChaseTarget)
	}
	if !approx(b.AlertTimer, BroadcastAlertTime-testDt) {
		t.Fatalf("B's countdown should be 3.0s minus one tick, got %.4f", b.AlertTimer)
	}

	ts.RunTicks(5)
	if !approx(b.ChaseTarget.X, 402.2) {
		t.Fatal("A's later movement must not drag B's target")
	}
}

func TestRun_FootstepsAlertGuardBehind(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithPlayerAt(300, 300),
	)
	ts.Input.Move = MoveIntent{DY: 1}
	ts.RunTicks(1)

	alerts := eventsOf(ts.Events, EventGuardAlerted)
	if len(alerts) == 0 || alerts[0].Trigger != TriggerSound {
		t.Fatalf("upright steps within 130px should alert by sound, got %v", alerts)
	}
	snd := eventsOf(ts.Events, EventSoundEmitted)
	if len(snd) != 1 || snd[0].Radius != FootstepRadius {
		t.Fatalf("expected one footstep sound, got %v", snd)
	}
}

func TestRun_CrouchedStepsAreSilent(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithPlayerAt(300, 300),
	)
	ts.Input = Input{Move: MoveIntent{DY: 1}, ToggleCrouch: true}
	ts.RunTicks(30)

	if n := ts.CountEvents(EventSoundEmitted); n != 0 {
		t.Fatalf("crouched movement should make no noise, got %d sounds", n)
	}
	if ts.Guard(0).Trigger == TriggerSound {
		t.Fatal("guard should not have heard a crouched player")
	}
}

func TestRun_WallMutesFootsteps(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithWall(340, 200, 20, 200),
		WithPlayerAt(300, 300),
	)
	ts.Input.Move = MoveIntent{DY: 1}
	ts.RunTicks(1)
	if ts.CountEvents(EventGuardAlerted) != 0 {
		t.Fatal("the wall should block the footstep")
	}
}

func TestRun_EMPOncePerLevel(t *testing.T) {
	ts := NewTestSim(
		WithGuard(400, 300, PatrolHorizontal),
		WithPlayerAt(600, 300),
		WithTuning(DefaultTuning()),
	)
	ts.Input.EMP = true
	ts.RunTicks(1)

	if ts.CountEvents(EventEMPActivated) != 1 || !ts.Run.EMPActive() {
		t.Fatal("EMP should fire on the first request")
	}
	if ts.Run.ActivateEMP() {
		t.Fatal("a second EMP on the same level must be rejected")
	}

	ts.RunTicks(120)
	if ts.CountEvents(EventGuardSpotted) != 0 || ts.Run.Meter().Value != 0 {
		t.Fatal("guards must be blind while the EMP is active")
	}

	ts.RunUntil(func(s *TestSim) bool { return s.CountEvents(EventEMPExpired) == 1 }, 120)
	if ts.Run.EMPActive() {
		t.Fatal("EMP should expire after its duration")
	}
	if ts.Run.EMPReady() {
		t.Fatal("EMP stays spent for the rest of the level")
	}
}

func TestRun_EMPNoiseAlertsNearbyGuard(t *testing.T) {
	ts := NewTestSim(
		WithGuard(450, 300, PatrolHorizontal),
		WithPlayerAt(400, 300),
	)
	ts.Input.EMP = true
	ts.RunTicks(1)
	alerts := eventsOf(ts.Events, EventGuardAlerted)
	if len(alerts) != 1 || alerts[0].Trigger != TriggerSound {
		t.Fatalf("EMP noise should alert the guard by sound, got %v", alerts)
	}
	if g := ts.Guard(0); g.ChaseTarget != (Vec2{400, 300}) {
		t.Fatalf("guard should chase the EMP origin, got %+v", g.ChaseTarget)
	}
}

func TestRun_EMPUnavailableOnExtreme(t *testing.T) {
	ts := NewTestSim(WithDifficulty("Extreme"))
	if ts.Run.EMPReady() || ts.Run.ActivateEMP() {
		t.Fatal("Extreme has no EMP")
	}
}

func TestRun_TimeoutAndRetryKeepsTotal(t *testing.T) {
	tun := DefaultTuning()
	tun.BaseTimeLimit = 1
	ts := NewTestSim(WithTuning(tun))
	ts.RunTicks(200)
	if ts.Run.State() != StateTimedOut {
		t.Fatalf("expected timeout, got %s", ts.Run.State())
	}
	if ts.CountEvents(EventTimeExpired) != 1 {
		t.Fatal("expected exactly one TimeExpired")
	}
	if tick := ts.Run.Tick(); tick < 59 || tick > 61 {
		t.Fatalf("1s limit at 60Hz should end near tick 60, got %d", tick)
	}
	ts.Run.total = 1234
	if err := ts.Run.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if ts.Run.Total() != 1234 {
		t.Fatal("retry keeps the run total")
	}
}

func TestRun_SpeedPowerup(t *testing.T) {
	ts := NewTestSim(WithGrid(
		"#######",
		"#PS...#",
		"#######",
	))
	ts.Input.Move = MoveIntent{DX: 1}
	ts.RunUntil(func(s *TestSim) bool { return s.CountEvents(EventPowerupCollected) == 1 }, 60)
	pu := eventsOf(ts.Events, EventPowerupCollected)
	if len(pu) != 1 || pu[0].Powerup != PowerupSpeed {
		t.Fatalf("expected a speed powerup, got %v", pu)
	}
	if !ts.Run.Player().Boosted() || !ts.Snapshot().Boosted {
		t.Fatal("player should be boosted")
	}
	if len(ts.Snapshot().Powerups) != 0 {
		t.Fatal("collected powerup should be removed")
	}
}
