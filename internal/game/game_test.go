package game

import "testing"

func TestAwardXPStreakGate(t *testing.T) {
	cases := []struct {
		name            string
		baseXP, streak  int
		multiplier      float64
		rushBonus       int
		answeredQuickly bool
		want            int
	}{
		{"below gate", 10, 2, 1.5, 0, false, 10},
		{"at gate", 10, 3, 1.5, 0, false, 15},
		{"past gate no escalation", 10, 9, 1.5, 0, false, 15},
		{"time rush after multiplier", 10, 5, 1.5, 5, true, 20},
		{"time rush not quick", 10, 5, 1.5, 5, false, 15},
		{"fractional multiplier floors", 10, 3, 1.25, 0, false, 12},
		{"zero streak", 10, 0, 1.5, 0, false, 10},
	}
	for _, tc := range cases {
		got := AwardXP(tc.baseXP, tc.streak, tc.multiplier, tc.rushBonus, tc.answeredQuickly)
		if got != tc.want {
			t.Fatalf("%s: AwardXP = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func testRanks() []Rank {
	return []Rank{
		{XP: 0, Label: "Beginner"},
		{XP: 100, Label: "Student"},
		{XP: 300, Label: "Kenner"},
		{XP: 600, Label: "Expert"},
		{XP: 1000, Label: "Meester"},
	}
}

func TestRankForInclusiveThresholds(t *testing.T) {
	ranks := testRanks()
	cases := []struct {
		xp   int
		want string
	}{
		{0, "Beginner"},
		{99, "Beginner"},
		{100, "Student"},
		{299, "Student"},
		{300, "Kenner"},
		{1000, "Meester"},
		{5000, "Meester"},
	}
	for _, tc := range cases {
		if got := RankFor(tc.xp, ranks); got != tc.want {
			t.Fatalf("RankFor(%d) = %s, want %s", tc.xp, got, tc.want)
		}
	}
}

func TestNextRankXP(t *testing.T) {
	ranks := testRanks()

	next, ok := NextRankXP(250, ranks)
	if !ok || next != 300 {
		t.Fatalf("NextRankXP(250) = %d/%v, want 300", next, ok)
	}
	if _, ok := NextRankXP(1500, ranks); ok {
		t.Fatalf("expected no next rank past the top threshold")
	}
	next, ok = NextRankXP(0, ranks)
	if !ok || next != 100 {
		t.Fatalf("NextRankXP(0) = %d/%v, want 100", next, ok)
	}
}

func TestSubjectConfigValidate(t *testing.T) {
	valid := DefaultSubjectConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	noRanks := valid
	noRanks.Ranks = nil
	if err := noRanks.Validate(); err == nil {
		t.Fatalf("expected error for empty rank ladder")
	}

	badBase := valid
	badBase.Ranks = []Rank{{XP: 50, Label: "x"}}
	if err := badBase.Validate(); err == nil {
		t.Fatalf("expected error when first threshold is not zero")
	}

	notAscending := valid
	notAscending.Ranks = []Rank{{XP: 0, Label: "a"}, {XP: 100, Label: "b"}, {XP: 100, Label: "c"}}
	if err := notAscending.Validate(); err == nil {
		t.Fatalf("expected error for non-ascending thresholds")
	}
}

func TestStateApply(t *testing.T) {
	cfg := DefaultSubjectConfig()
	state := NewState(cfg)
	if state.Lives != cfg.LivesPerLevel {
		t.Fatalf("expected full lives at start, got %d", state.Lives)
	}

	// Three correct answers build the streak at base XP; the fourth hits the
	// multiplier.
	for i := 0; i < 3; i++ {
		if awarded := state.Apply(cfg, true, false); awarded != 10 {
			t.Fatalf("answer %d: expected base XP 10, got %d", i+1, awarded)
		}
	}
	if awarded := state.Apply(cfg, true, false); awarded != 15 {
		t.Fatalf("expected multiplied XP 15 at streak 3, got %d", awarded)
	}
	if state.XP != 45 {
		t.Fatalf("expected cumulative XP 45, got %d", state.XP)
	}

	if awarded := state.Apply(cfg, false, false); awarded != 0 {
		t.Fatalf("incorrect answer must award nothing, got %d", awarded)
	}
	if state.Streak != 0 || state.Lives != cfg.LivesPerLevel-1 {
		t.Fatalf("expected streak reset and one life lost, got %+v", state)
	}

	state.AdvanceLevel(cfg)
	if state.Level != 1 || state.Lives != cfg.LivesPerLevel {
		t.Fatalf("expected next level with restored lives, got %+v", state)
	}

	state.Reset(cfg)
	if state.XP != 0 || state.Level != 0 || state.Streak != 0 {
		t.Fatalf("expected clean state after reset, got %+v", state)
	}
}
