package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeRotations(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{ShapeI, 2},
		{ShapeO, 1},
		{ShapeT, 4},
		{ShapeS, 2},
		{ShapeZ, 2},
		{ShapeJ, 4},
		{ShapeL, 4},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.Rotations())
		})
	}
}

func TestEveryTemplateHasFourCells(t *testing.T) {
	for _, s := range Shapes {
		p := NewPiece(s)
		for r := 0; r < s.Rotations(); r++ {
			p.Rotation = r
			assert.Len(t, p.Cells(), 4, "%s rotation %d", s, r)
		}
	}
}

func TestFullRotationCycle(t *testing.T) {
	for _, s := range Shapes {
		t.Run(s.String(), func(t *testing.T) {
			p := NewPiece(s)
			p.X, p.Y = 2, 7
			start := p.Cells()

			for i := 0; i < s.Rotations(); i++ {
				p.Rotation = p.Rotated(1)
			}

			assert.Equal(t, 0, p.Rotation)
			assert.Equal(t, start, p.Cells())
		})
	}
}

func TestRotatedBackwards(t *testing.T) {
	p := NewPiece(ShapeT)
	assert.Equal(t, 3, p.Rotated(-1))
	assert.Equal(t, 1, p.Rotated(1))

	o := NewPiece(ShapeO)
	assert.Equal(t, 0, o.Rotated(1))
	assert.Equal(t, 0, o.Rotated(-1))
}

func TestPieceCells(t *testing.T) {
	// .	0 1 2 3 4 5 6 7 8 9
	// 0	. . . . . . . . . .
	// 1	. . . . . O . . . .
	// 2	. . . . . O . . . .
	// 3	. . . . . O . . . .
	// 4	. . . . . O . . . .
	p := NewPiece(ShapeI)
	assert.Equal(t, []Point{{5, 1}, {5, 2}, {5, 3}, {5, 4}}, p.Cells())

	p.Rotation = 1
	assert.Equal(t, []Point{{3, 2}, {4, 2}, {5, 2}, {6, 2}}, p.Cells())

	p.Y = -2
	assert.Equal(t, []Point{{3, 0}, {4, 0}, {5, 0}, {6, 0}}, p.Cells())
}

func TestPieceMask(t *testing.T) {
	p := NewPiece(ShapeO)
	assert.True(t, p.Mask(1, 2))
	assert.True(t, p.Mask(2, 3))
	assert.False(t, p.Mask(0, 0))
	assert.False(t, p.Mask(-1, 2))
	assert.False(t, p.Mask(1, FrameSize))
}

func TestNewPieceRejectsUnknownShape(t *testing.T) {
	assert.Panics(t, func() { NewPiece(Shape(7)) })
	assert.Panics(t, func() { NewPiece(Shape(-1)) })
	assert.NotPanics(t, func() { NewPiece(ShapeL) })
}

func TestShapeColorsAreDistinct(t *testing.T) {
	seen := make(map[Color]Shape)
	for _, s := range Shapes {
		c := s.Color()
		require.NotEqual(t, ColorNone, c, "%s has no color", s)
		if other, ok := seen[c]; ok {
			t.Fatalf("%s and %s share color %d", s, other, c)
		}
		seen[c] = s
	}
}

func TestRandomSourceIsDeterministic(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for i := 0; i < 100; i++ {
		s := a.NextShape()
		require.True(t, s.Valid())
		assert.Equal(t, s, b.NextShape())
	}
}

func TestSequenceSourceWraps(t *testing.T) {
	src := NewSequenceSource(ShapeS, ShapeZ)
	assert.Equal(t, ShapeS, src.NextShape())
	assert.Equal(t, ShapeZ, src.NextShape())
	assert.Equal(t, ShapeS, src.NextShape())
	assert.Panics(t, func() { NewSequenceSource() })
}
