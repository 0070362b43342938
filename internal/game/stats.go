package game

// Stats tracks the progress of the current run.
type Stats struct {
	Score int
	Level int
	Lives int
}

// Reset starts a new run with the given number of lives.
func (s *Stats) Reset(lives int) {
	s.Score = 0
	s.Level = 1
	s.Lives = lives
}

// loseLife removes one life, never going below zero.
// Returns the lives left.
func (s *Stats) loseLife() int {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}
