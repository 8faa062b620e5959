package game

// State tracks one attempt's lives, streak and XP on the client side. It is
// never persisted by the service; a new attempt starts from a fresh state.
type State struct {
	Level  int `json:"level"`
	Lives  int `json:"lives"`
	Streak int `json:"streak"`
	XP     int `json:"xp"`
}

// NewState returns the starting state for a subject: level zero, full lives.
func NewState(cfg SubjectConfig) State {
	return State{Lives: cfg.LivesPerLevel}
}

// Apply folds one graded answer into the state and returns the XP awarded.
// The streak in effect is the one built up before this answer, so the gate
// opens on the answer after the third consecutive correct. An incorrect
// answer resets the streak and costs a life (never below zero).
func (s *State) Apply(cfg SubjectConfig, correct, answeredQuickly bool) int {
	if !correct {
		s.Streak = 0
		if s.Lives > 0 {
			s.Lives--
		}
		return 0
	}
	awarded := cfg.AwardXP(s.Streak, answeredQuickly)
	s.Streak++
	s.XP += awarded
	return awarded
}

// AdvanceLevel moves to the next level and restores the lives budget.
func (s *State) AdvanceLevel(cfg SubjectConfig) {
	s.Level++
	s.Lives = cfg.LivesPerLevel
}

// Rank resolves the label for the accumulated XP.
func (s State) Rank(cfg SubjectConfig) string {
	return cfg.RankFor(s.XP)
}

// Reset clears the state for a new attempt.
func (s *State) Reset(cfg SubjectConfig) {
	*s = NewState(cfg)
}
