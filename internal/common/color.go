package common

import "fmt"

// Color is the persisted record: one 8-bit value per channel.
type Color struct {
	R uint8 `json:"r" db:"r"`
	G uint8 `json:"g" db:"g"`
	B uint8 `json:"b" db:"b"`
}

func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
