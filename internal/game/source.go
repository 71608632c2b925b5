package game

import (
	"math/rand"
	"time"
)

// ShapeSource supplies the shape of every new piece.
type ShapeSource interface {
	NextShape() Shape
}

// RandomSource picks each shape uniformly and independently of history.
// Two sources created with the same seed produce identical sequences.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a seeded uniform shape source.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewTimeSource seeds a RandomSource from the wall clock.
func NewTimeSource() *RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (rs *RandomSource) NextShape() Shape {
	return Shapes[rs.rng.Intn(len(Shapes))]
}

// SequenceSource replays a fixed list of shapes, wrapping around at the end.
type SequenceSource struct {
	shapes []Shape
	pos    int
}

// NewSequenceSource panics if shapes is empty.
func NewSequenceSource(shapes ...Shape) *SequenceSource {
	if len(shapes) == 0 {
		panic("game: empty shape sequence")
	}
	return &SequenceSource{shapes: shapes}
}

func (ss *SequenceSource) NextShape() Shape {
	s := ss.shapes[ss.pos%len(ss.shapes)]
	ss.pos++
	return s
}
