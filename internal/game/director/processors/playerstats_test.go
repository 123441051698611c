package processors

import (
	"strings"
	"testing"
)

func TestResolveStatAmount(t *testing.T) {
	tests := []struct {
		raw       string
		reference int
		want      int
		ok        bool
	}{
		{"25", 100, 25, true},
		{"+25", 100, 25, true},
		{"-10", 100, -10, true},
		{"10%", 500, 50, true},
		{"-20%", 500, -100, true},
		{"low", 100, 10, true},
		{"medium", 100, 25, true},
		{"high", 100, 50, true},
		{"-high", 100, -50, true},
		{"HIGH", 100, 50, true},
		{"banana", 100, 0, false},
		{"", 100, 0, false},
	}
	for _, tt := range tests {
		got, ok := resolveStatAmount(tt.raw, tt.reference)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("resolveStatAmount(%q, %d) = %d, %v; want %d, %v",
				tt.raw, tt.reference, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStatChangeClampsCurrents(t *testing.T) {
	env := testEnv()
	st := testState()

	proc := &StatChangeProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "health", "value": "-9999"})
	if st.Player.Stats.Health != 0 {
		t.Fatalf("expected health clamped at 0, got %d", st.Player.Stats.Health)
	}

	st, _ = proc.Apply(env, st, map[string]string{"stat": "health", "value": "+9999"})
	if st.Player.Stats.Health != st.Player.Stats.MaxHealth {
		t.Fatalf("expected health clamped at max, got %d", st.Player.Stats.Health)
	}

	st, _ = proc.Apply(env, st, map[string]string{"stat": "qi", "value": "-high"})
	if st.Player.Stats.Qi != 200 {
		t.Fatalf("expected high loss of 400-qi pool to land at 200, got %d", st.Player.Stats.Qi)
	}
}

func TestStatChangeSpiritStonesFloor(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.SpiritStones = 5

	proc := &StatChangeProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "spirit_stones", "value": "-100"})
	if st.Player.SpiritStones != 0 {
		t.Fatalf("spirit stones floor at zero, got %d", st.Player.SpiritStones)
	}
}

func TestStatChangeUnknownStatIsNoOp(t *testing.T) {
	env := testEnv()
	st := testState()
	before := st.Player.Stats

	proc := &StatChangeProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "charisma", "value": "50"})
	if st.Player.Stats != before {
		t.Fatalf("unknown stat must change nothing")
	}
}

func TestStatChangeExperienceRoutesThroughLeveling(t *testing.T) {
	env := testEnv()
	st := testState()

	proc := &StatChangeProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "experience", "value": "500"})
	if st.Player.Stats.Experience != 500 || st.Player.Realm != "Core Formation - Early" {
		t.Fatalf("sub-threshold grant must only accumulate: exp=%d realm=%q",
			st.Player.Stats.Experience, st.Player.Realm)
	}

	st, _ = proc.Apply(env, st, map[string]string{"stat": "experience", "value": "700"})
	if st.Player.Realm != "Core Formation - Middle" {
		t.Fatalf("crossing the requirement must advance a stage, got %q", st.Player.Realm)
	}
}

func TestStatChangeBottleneckClampsExperience(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.AtBottleneck = true
	st.Player.Realm = "Core Formation - Peak"

	proc := &StatChangeProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "experience", "value": "999999"})
	if st.Player.Stats.Experience != st.Player.Stats.ExpToNext {
		t.Fatalf("bottlenecked experience must clamp at the requirement, got %d", st.Player.Stats.Experience)
	}
	if st.Player.Realm != "Core Formation - Peak" {
		t.Fatalf("no advancement past a bottleneck, got %q", st.Player.Realm)
	}
}

func TestStatMaxRefillsCurrents(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.Stats.Health = 300

	proc := &StatMaxProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"stat": "health", "value": "100"})
	if st.Player.Stats.MaxHealth != 600 {
		t.Fatalf("expected max 600, got %d", st.Player.Stats.MaxHealth)
	}
	if st.Player.Stats.Health != 400 {
		t.Fatalf("current must refill by the gain, got %d", st.Player.Stats.Health)
	}
}

func TestBreakthroughSuccessAdvancesRealm(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.Realm = "Core Formation - Peak"
	st.Player.AtBottleneck = true
	st.Player.InTribulation = true

	proc := &BreakthroughProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"outcome": "success"})

	if !strings.HasPrefix(st.Player.Realm, "Nascent Soul") {
		t.Fatalf("expected next major realm, got %q", st.Player.Realm)
	}
	if st.Player.AtBottleneck || st.Player.InTribulation {
		t.Fatalf("flags must clear on success")
	}
	if st.Player.Stats.Health != st.Player.Stats.MaxHealth {
		t.Fatalf("success fully heals, got %d/%d", st.Player.Stats.Health, st.Player.Stats.MaxHealth)
	}
}

func TestBreakthroughBegunMarksTribulation(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.Realm = "Core Formation - Peak"
	st.Player.AtBottleneck = true
	before := st.Player.Realm

	proc := &BreakthroughProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"outcome": "begun"})

	if !st.Player.InTribulation {
		t.Fatalf("begun must mark the player mid-tribulation")
	}
	if st.Player.Realm != before || !st.Player.AtBottleneck {
		t.Fatalf("begun must not resolve anything: %q bottleneck=%v", st.Player.Realm, st.Player.AtBottleneck)
	}

	// Not at a bottleneck there is nothing to break through.
	calm := testState()
	calm, _ = proc.Apply(env, calm, map[string]string{"outcome": "begun"})
	if calm.Player.InTribulation {
		t.Fatalf("begun without a bottleneck must be ignored")
	}
}

func TestBreakthroughFailureDemotesOneStage(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Player.Realm = "Core Formation - Peak"
	st.Player.AtBottleneck = true

	proc := &BreakthroughProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"outcome": "failure"})

	if st.Player.Realm != "Core Formation - Late" {
		t.Fatalf("failure drops exactly one stage, got %q", st.Player.Realm)
	}
	if st.Player.AtBottleneck {
		t.Fatalf("the flag clears either way")
	}
	if st.Player.Stats.Experience != 0 {
		t.Fatalf("experience resets on failure, got %d", st.Player.Stats.Experience)
	}
}
