package state

// AdjustDifficulty raises the difficulty by one when the latest block
// followed its parent in less than the target block time and lowers it by
// one otherwise. Difficulty never drops below 1 and has no ceiling.
func (s *State) AdjustDifficulty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.blocks) < 2 {
		return
	}

	lastBlock := s.blocks[len(s.blocks)-1]
	prevBlock := s.blocks[len(s.blocks)-2]

	// Signed so a clock that went backwards reads as a fast block.
	timeTaken := int64(lastBlock.Header.TimeStamp) - int64(prevBlock.Header.TimeStamp)

	from := s.difficulty
	switch {
	case timeTaken < int64(s.genesis.TargetBlockTime):
		s.difficulty++
	case s.difficulty > 1:
		s.difficulty--
	}

	s.evHandler("state: AdjustDifficulty: timeTaken[%dms]: difficulty[%d->%d]", timeTaken, from, s.difficulty)
}
