package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// NameGenerator produces display names for new planning records.
type NameGenerator interface {
	PlanningName() string
}

// RandomNameGenerator yields "PL-" followed by a number in 1000..9999.
type RandomNameGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomNameGenerator() *RandomNameGenerator {
	return &RandomNameGenerator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *RandomNameGenerator) PlanningName() string {
	g.mu.Lock()
	n := 1000 + g.rnd.Intn(9000)
	g.mu.Unlock()
	return fmt.Sprintf("PL-%04d", n)
}

// SequenceNameGenerator hands out PL-1001, PL-1002, ... in order.
type SequenceNameGenerator struct {
	mu   sync.Mutex
	next int
}

func NewSequenceNameGenerator(start int) *SequenceNameGenerator {
	return &SequenceNameGenerator{next: start}
}

func (g *SequenceNameGenerator) PlanningName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := fmt.Sprintf("PL-%04d", g.next)
	g.next++
	return name
}
