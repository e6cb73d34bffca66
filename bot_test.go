package main

import (
	"testing"
	"time"
)

// fakeKeys records key events instead of sending them to the OS.
type fakeKeys struct {
	events []string
}

func (f *fakeKeys) Press(key string)   { f.events = append(f.events, "press:"+key) }
func (f *fakeKeys) Hold(key string)    { f.events = append(f.events, "hold:"+key) }
func (f *fakeKeys) Release(key string) { f.events = append(f.events, "release:"+key) }

// newPolicyBot builds a bot with just enough wiring to run applyActions.
func newPolicyBot(keys *fakeKeys, sleeps *[]time.Duration) *Bot {
	return &Bot{
		params: NewDinoParams(),
		keys:   keys,
		stats:  NewStatistics(),
		sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	}
}

func trackedState(now time.Time, elapsed time.Duration) TrackState {
	return TrackState{
		Located:    true,
		TemplateW:  86,
		TemplateH:  94,
		StartTime:  now.Add(-elapsed),
		LastAction: now.Add(-time.Second),
	}
}

func TestScaleWAtRampsLinearly(t *testing.T) {
	p := NewDinoParams()

	cases := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 1.5},
		{-5 * time.Second, 1.5},
		{15 * time.Second, 2.75},
		{30 * time.Second, 4.0},
		{60 * time.Second, 4.0},
	}
	for _, c := range cases {
		got := p.ScaleWAt(c.elapsed)
		if got != c.want {
			t.Errorf("ScaleWAt(%v) = %v, want %v", c.elapsed, got, c.want)
		}
	}
}

func TestIsObstacleBoundsAreStrict(t *testing.T) {
	p := NewDinoParams()

	cases := []struct {
		ratio float64
		want  bool
	}{
		{0.0, false},
		{0.05, false},
		{0.1, false},
		{0.11, true},
		{0.5, true},
		{0.89, true},
		{0.9, false},
		{0.95, false},
		{1.0, false},
	}
	for _, c := range cases {
		if got := p.IsObstacle(c.ratio); got != c.want {
			t.Errorf("IsObstacle(%v) = %v, want %v", c.ratio, got, c.want)
		}
	}
}

func TestBottomObstacleEarlyGameJumps(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = trackedState(now, 10*time.Second)

	b.applyActions(0.0, 0.5, now)

	want := []string{"press:space"}
	assertEvents(t, keys.events, want)
	if len(sleeps) != 0 {
		t.Errorf("expected no sleeps, got %v", sleeps)
	}
	if !b.state.LastAction.Equal(now) {
		t.Errorf("LastAction not refreshed by jump")
	}
}

func TestBottomObstacleLateGameCombos(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = trackedState(now, 40*time.Second)

	b.applyActions(0.0, 0.5, now)

	want := []string{"hold:space", "release:space", "hold:down", "release:down"}
	assertEvents(t, keys.events, want)
	if len(sleeps) != 1 || sleeps[0] != 20*time.Millisecond {
		t.Errorf("expected one 20ms sleep between jump and duck, got %v", sleeps)
	}
}

func TestMiddleObstacleHoldsDuck(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = trackedState(now, 10*time.Second)

	b.applyActions(0.5, 0.0, now)

	want := []string{"hold:down", "release:down"}
	assertEvents(t, keys.events, want)
	if len(sleeps) != 1 || sleeps[0] != 400*time.Millisecond {
		t.Errorf("expected one 400ms duck hold, got %v", sleeps)
	}
}

func TestBottomTakesPriorityOverMiddle(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = trackedState(now, 10*time.Second)

	b.applyActions(0.5, 0.5, now)

	// Only the jump fires; the middle detection is ignored this tick.
	assertEvents(t, keys.events, []string{"press:space"})
}

func TestNoObstacleNoAction(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = trackedState(now, 10*time.Second)
	before := b.state.LastAction

	b.applyActions(0.0, 0.0, now)

	if len(keys.events) != 0 {
		t.Errorf("expected no key events, got %v", keys.events)
	}
	if !b.state.LastAction.Equal(before) {
		t.Errorf("LastAction changed without an action")
	}
}

func TestIdleResetRestartsRun(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	now := time.Now()
	b.state = TrackState{
		Located:    true,
		TemplateW:  86,
		TemplateH:  94,
		StartTime:  now.Add(-40 * time.Second),
		LastAction: now.Add(-8 * time.Second),
	}

	b.applyActions(0.0, 0.0, now)

	// Exactly one jump, both clocks reset, position lock kept.
	assertEvents(t, keys.events, []string{"press:space"})
	if !b.state.StartTime.Equal(now) {
		t.Errorf("StartTime not reset by idle restart")
	}
	if !b.state.LastAction.Equal(now) {
		t.Errorf("LastAction not reset by idle restart")
	}
	if !b.state.Located {
		t.Errorf("idle restart must not drop the position lock")
	}
	if b.params.ScaleWAt(b.state.Elapsed(now)) != b.params.InitScaleW {
		t.Errorf("scan scale did not return to initial after restart")
	}
}

func TestActionDefersIdleReset(t *testing.T) {
	keys := &fakeKeys{}
	var sleeps []time.Duration
	b := newPolicyBot(keys, &sleeps)

	// Last action just shy of the idle limit, and an obstacle this tick:
	// the jump must refresh the idle clock so no reset fires on top of it.
	now := time.Now()
	b.state = TrackState{
		Located:    true,
		TemplateW:  86,
		TemplateH:  94,
		StartTime:  now.Add(-10 * time.Second),
		LastAction: now.Add(-secondsToDuration(6.9)),
	}

	b.applyActions(0.0, 0.5, now)

	assertEvents(t, keys.events, []string{"press:space"})
	if b.state.Idle(now) != 0 {
		t.Errorf("idle clock not refreshed by the action")
	}
}

func TestSecondsToDuration(t *testing.T) {
	if got := secondsToDuration(0.4); got != 400*time.Millisecond {
		t.Errorf("secondsToDuration(0.4) = %v", got)
	}
	if got := secondsToDuration(7.0); got != 7*time.Second {
		t.Errorf("secondsToDuration(7.0) = %v", got)
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("key events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key events = %v, want %v", got, want)
		}
	}
}
