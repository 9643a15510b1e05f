package mino

import (
	"math/rand"
	"time"
)

// Randomizer selects the shape of the next piece.
type Randomizer interface {
	Shape() Shape
}

// Random draws every shape independently with equal probability. There is no
// bag, so the same shape may repeat any number of times.
type Random struct {
	Seed int64

	shapes     []Shape
	randomizer *rand.Rand
}

// NewRandomizer returns a Random seeded with seed, or with the current time
// when seed is zero.
func NewRandomizer(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &Random{Seed: seed, shapes: Shapes, randomizer: rand.New(rand.NewSource(seed))}
}

func (r *Random) Shape() Shape {
	return r.shapes[r.randomizer.Intn(len(r.shapes))]
}

// Sequence replays a fixed list of shapes, starting over when exhausted.
type Sequence struct {
	Shapes []Shape

	i int
}

func (s *Sequence) Shape() Shape {
	shape := s.Shapes[s.i]

	s.i++
	if s.i == len(s.Shapes) {
		s.i = 0
	}

	return shape
}
