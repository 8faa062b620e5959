// Package game holds the gamified-quiz arithmetic: XP awards gated by answer
// streaks, rank lookup over configured thresholds, and the client-side play
// state. Everything here is pure computation over externally supplied
// configuration; nothing is persisted.
package game

import (
	"fmt"
	"math"
)

// streakThreshold is the consecutive-correct count at which the XP
// multiplier kicks in. It is a hard gate: streaks of 0-2 earn base XP and
// the bonus does not escalate past the gate.
const streakThreshold = 3

// Rank pairs a cumulative-XP threshold with its label. Thresholds are
// inclusive lower bounds.
type Rank struct {
	XP    int    `yaml:"xp" json:"xp"`
	Label string `yaml:"label" json:"label"`
}

// SubjectConfig is the per-subject tuning for quiz play. Read-only to the
// rest of the service.
type SubjectConfig struct {
	BaseXP           int     `yaml:"baseXp" json:"baseXp"`
	StreakMultiplier float64 `yaml:"streakMultiplier" json:"streakMultiplier"`
	TimeRushBonus    int     `yaml:"timeRushBonus" json:"timeRushBonus"`
	LivesPerLevel    int     `yaml:"livesPerLevel" json:"livesPerLevel"`
	Ranks            []Rank  `yaml:"ranks" json:"ranks"`
}

// DefaultSubjectConfig is the tuning used when a subject has no explicit
// configuration.
func DefaultSubjectConfig() SubjectConfig {
	return SubjectConfig{
		BaseXP:           10,
		StreakMultiplier: 1.5,
		TimeRushBonus:    5,
		LivesPerLevel:    3,
		Ranks: []Rank{
			{XP: 0, Label: "Beginner"},
			{XP: 100, Label: "Student"},
			{XP: 300, Label: "Kenner"},
			{XP: 600, Label: "Expert"},
			{XP: 1000, Label: "Meester"},
		},
	}
}

// Validate checks the rank ladder: at least one rank, first threshold zero
// (the base rank is always reachable), thresholds strictly ascending.
func (c SubjectConfig) Validate() error {
	if c.BaseXP < 0 {
		return fmt.Errorf("baseXp must be non-negative, got %d", c.BaseXP)
	}
	if len(c.Ranks) == 0 {
		return fmt.Errorf("at least one rank is required")
	}
	if c.Ranks[0].XP != 0 {
		return fmt.Errorf("first rank threshold must be 0, got %d", c.Ranks[0].XP)
	}
	for i := 1; i < len(c.Ranks); i++ {
		if c.Ranks[i].XP <= c.Ranks[i-1].XP {
			return fmt.Errorf("rank thresholds must ascend: %d after %d", c.Ranks[i].XP, c.Ranks[i-1].XP)
		}
	}
	return nil
}

// AwardXP computes the XP for one correct answer. The streak is the
// consecutive-correct count before this answer; at the gate the base reward
// is multiplied and floored (never rounded, to avoid over-awarding on
// fractional multipliers). The flat Time Rush bonus is added afterwards when
// the answer came in quickly.
func AwardXP(baseXP, streak int, streakMultiplier float64, timeRushBonus int, answeredQuickly bool) int {
	awarded := baseXP
	if streak >= streakThreshold {
		awarded = int(math.Floor(float64(baseXP) * streakMultiplier))
	}
	if answeredQuickly {
		awarded += timeRushBonus
	}
	if awarded < 0 {
		return 0
	}
	return awarded
}

// RankFor returns the label of the highest rank whose threshold the XP has
// reached. Ties at an exact threshold belong to the higher rank.
func RankFor(xp int, ranks []Rank) string {
	if len(ranks) == 0 {
		return ""
	}
	label := ranks[0].Label
	for _, r := range ranks {
		if xp >= r.XP {
			label = r.Label
		}
	}
	return label
}

// NextRankXP returns the smallest threshold strictly above the XP, and false
// when the player already holds the top rank.
func NextRankXP(xp int, ranks []Rank) (int, bool) {
	for _, r := range ranks {
		if r.XP > xp {
			return r.XP, true
		}
	}
	return 0, false
}

// AwardXP applies the subject's tuning to one correct answer.
func (c SubjectConfig) AwardXP(streak int, answeredQuickly bool) int {
	return AwardXP(c.BaseXP, streak, c.StreakMultiplier, c.TimeRushBonus, answeredQuickly)
}

// RankFor resolves the rank label for a cumulative XP total.
func (c SubjectConfig) RankFor(xp int) string {
	return RankFor(xp, c.Ranks)
}

// NextRankXP reports the XP needed for the next rank, if any.
func (c SubjectConfig) NextRankXP(xp int) (int, bool) {
	return NextRankXP(xp, c.Ranks)
}
