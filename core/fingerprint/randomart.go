// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package fingerprint

import (
	"fmt"
	"strings"
)

// Field dimensions used by OpenSSH.
const (
	fieldBase = 8
	Height    = fieldBase + 1
	Width     = fieldBase*2 + 1
)

// augmentation maps visit counts to glyphs; the last two mark the start
// and end of the walk.
const augmentation = " .o+=*BOX@%&#/^SE"

const (
	markEnd   = len(augmentation) - 1
	markStart = markEnd - 1
	maxVisits = markEnd - 2
)

// RandomArt is the field walked by the drunken bishop.
type RandomArt struct {
	field          [Width][Height]int
	endX, endY     int
	startX, startY int
}

// NewRandomArt walks the field over sum. Every byte yields four moves, least
// significant bit pair first; bit 0 picks left/right and bit 1 up/down. The
// bishop slides along a wall instead of leaving the field.
func NewRandomArt(sum []byte) *RandomArt {
	a := &RandomArt{startX: Width / 2, startY: Height / 2}
	x, y := a.startX, a.startY
	for _, input := range sum {
		for b := 0; b < 4; b++ {
			if input&0x1 != 0 {
				x++
			} else {
				x--
			}
			if input&0x2 != 0 {
				y++
			} else {
				y--
			}
			x = min(max(x, 0), Width-1)
			y = min(max(y, 0), Height-1)
			if a.field[x][y] < maxVisits {
				a.field[x][y]++
			}
			input >>= 2
		}
	}
	a.endX, a.endY = x, y
	return a
}

// Count returns the visit count of a cell, with the start and end cells
// reported as their marker values.
func (a *RandomArt) Count(x, y int) int {
	switch {
	case x == a.endX && y == a.endY:
		return markEnd
	case x == a.startX && y == a.startY:
		return markStart
	}
	return a.field[x][y]
}

// End returns the final bishop position.
func (a *RandomArt) End() (x, y int) { return a.endX, a.endY }

// Title formats "[TYPE BITS]", falling back to "[TYPE]" when that does not
// fit the border.
func Title(keyType string, bits int) string {
	t := fmt.Sprintf("[%s %d]", keyType, bits)
	if len(t) > Width {
		t = "[" + keyType + "]"
	}
	return t
}

// border centres label in a +---+ line. Labels longer than the field are cut.
func border(label string) string {
	if len(label) > Width-1 {
		label = label[:Width-1]
	}
	var b strings.Builder
	b.WriteByte('+')
	pad := (Width - len(label)) / 2
	b.WriteString(strings.Repeat("-", pad))
	b.WriteString(label)
	b.WriteString(strings.Repeat("-", Width-pad-len(label)))
	b.WriteByte('+')
	return b.String()
}

// Render draws the field with title on the top border and "[footer]" on the
// bottom border. The result has no trailing newline.
func (a *RandomArt) Render(title, footer string) string {
	var b strings.Builder
	b.WriteString(border(title))
	b.WriteByte('\n')
	for y := 0; y < Height; y++ {
		b.WriteByte('|')
		for x := 0; x < Width; x++ {
			b.WriteByte(augmentation[a.Count(x, y)])
		}
		b.WriteString("|\n")
	}
	if footer != "" {
		footer = "[" + footer + "]"
	}
	b.WriteString(border(footer))
	return b.String()
}
