package tuner

import "sync"

// best is the lowest fitness reported so far in a generation. Siblings read it once
// per ply and write it when they finish.
type best struct {
	mu      sync.RWMutex
	fitness int
}

func newBest() *best {
	return &best{fitness: MaxFitness}
}

func (b *best) get() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fitness
}

// offer records fitness if it is strictly lower than the best so far
func (b *best) offer(fitness int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fitness < b.fitness {
		b.fitness = fitness
		return true
	}
	return false
}
