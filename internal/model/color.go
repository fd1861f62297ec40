package model

import (
	"encoding/json"
	"fmt"
)

// Color identifies one of the two teams.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// forward is the row delta of a pawn step for this color.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRow is the row holding this color's back-rank pieces at the start.
func (c Color) HomeRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// FarRow is the promotion row for this color's pawns.
func (c Color) FarRow() int {
	return c.Opposite().HomeRow()
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
