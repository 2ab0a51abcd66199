package state

// TamperTxValue changes the amount of a transaction inside a block that has
// already been added to the chain without resealing the block.
func (s *State) TamperTxValue(blockNum uint64, txIndex int, value uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks[blockNum].Trans[txIndex].Value = value
}

// TamperPrevHash rewrites the parent hash of a block and reseals it, which
// breaks the link to the parent while keeping the block's own hash intact.
func (s *State) TamperPrevHash(blockNum uint64, prevHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := &s.blocks[blockNum]
	block.Header.PrevBlockHash = prevHash
	block.Hash = block.CalculateHash()
}
