package game

import "fmt"

const (
	BoardWidth  = 10
	BoardHeight = 20

	// FrameSize is the side of the square frame every rotation template is drawn in.
	FrameSize = 5
)

// Shape identifies one of the seven tetrominoes.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL

	shapeCount
)

// Shapes lists every shape in declaration order.
var Shapes = [shapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}

// Color is an opaque render tag. ColorNone marks an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
)

// template holds one rotation state. Each row is a 5-bit mask, bit 4 is column 0.
type template [FrameSize]uint8

var shapeTemplates = [shapeCount][]template{
	ShapeI: {
		{0b00000, 0b00100, 0b00100, 0b00100, 0b00100},
		{0b00000, 0b00000, 0b11110, 0b00000, 0b00000},
	},
	ShapeO: {
		{0b00000, 0b00000, 0b01100, 0b01100, 0b00000},
	},
	ShapeT: {
		{0b00000, 0b00000, 0b01000, 0b11100, 0b00000},
		{0b00000, 0b00000, 0b01000, 0b01100, 0b01000},
		{0b00000, 0b00000, 0b00000, 0b11100, 0b01000},
		{0b00000, 0b00000, 0b01000, 0b11000, 0b01000},
	},
	ShapeS: {
		{0b00000, 0b00000, 0b01100, 0b11000, 0b00000},
		{0b00000, 0b01000, 0b01100, 0b00100, 0b00000},
	},
	ShapeZ: {
		{0b00000, 0b00000, 0b11000, 0b01100, 0b00000},
		{0b00000, 0b00100, 0b01100, 0b01000, 0b00000},
	},
	ShapeJ: {
		{0b00000, 0b01000, 0b01000, 0b11000, 0b00000},
		{0b00000, 0b00000, 0b10000, 0b11100, 0b00000},
		{0b00000, 0b01100, 0b01000, 0b01000, 0b00000},
		{0b00000, 0b00000, 0b11100, 0b00100, 0b00000},
	},
	ShapeL: {
		{0b00000, 0b00100, 0b00100, 0b01100, 0b00000},
		{0b00000, 0b00000, 0b11100, 0b10000, 0b00000},
		{0b00000, 0b11000, 0b01000, 0b01000, 0b00000},
		{0b00000, 0b00000, 0b00100, 0b11100, 0b00000},
	},
}

var shapeColors = [shapeCount]Color{
	ShapeI: ColorCyan,
	ShapeO: ColorYellow,
	ShapeT: ColorPurple,
	ShapeS: ColorGreen,
	ShapeZ: ColorRed,
	ShapeJ: ColorBlue,
	ShapeL: ColorOrange,
}

var shapeNames = [shapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) Valid() bool {
	return s >= 0 && s < shapeCount
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Color returns the display color of the shape.
func (s Shape) Color() Color {
	return shapeColors[s]
}

// Rotations returns how many distinct rotation states the shape has.
func (s Shape) Rotations() int {
	return len(shapeTemplates[s])
}

// Point is a cell coordinate on the board. Y grows downwards.
type Point struct {
	X, Y int
}

// Piece is a shape placed on the board. X and Y locate the top-left
// corner of its 5x5 frame, and may be negative while spawning.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// NewPiece returns a piece at the spawn column with rotation 0.
// It panics if s is not one of the seven shapes.
func NewPiece(s Shape) Piece {
	if !s.Valid() {
		panic(fmt.Sprintf("game: invalid shape %d", int(s)))
	}
	return Piece{
		Shape: s,
		X:     SpawnX,
		Y:     0,
	}
}

// SpawnX is the frame column that horizontally centers a new piece.
const SpawnX = BoardWidth/2 - 2

func (p Piece) Color() Color {
	return p.Shape.Color()
}

// Cells returns the absolute board coordinates occupied by the piece.
func (p Piece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for row, mask := range p.template() {
		for col := 0; col < FrameSize; col++ {
			if mask&(1<<(FrameSize-1-col)) != 0 {
				cells = append(cells, Point{X: p.X + col, Y: p.Y + row})
			}
		}
	}
	return cells
}

// Rotated returns the rotation index one step in dir (+1 forward, -1 back).
func (p Piece) Rotated(dir int) int {
	n := p.Shape.Rotations()
	return ((p.Rotation+dir)%n + n) % n
}

// Mask reports whether frame cell (col,row) is occupied in the current rotation.
func (p Piece) Mask(col, row int) bool {
	if col < 0 || col >= FrameSize || row < 0 || row >= FrameSize {
		return false
	}
	return p.template()[row]&(1<<(FrameSize-1-col)) != 0
}

func (p Piece) template() template {
	return shapeTemplates[p.Shape][p.Rotated(0)]
}

// ParseShape maps a shape letter back to its Shape.
func ParseShape(name string) (Shape, bool) {
	for _, s := range Shapes {
		if shapeNames[s] == name {
			return s, true
		}
	}
	return 0, false
}
