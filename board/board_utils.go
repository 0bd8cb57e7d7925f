package board

import (
	"fmt"
	"strings"
)

// ToDisplayText draws the board the way it sits between the two players:
// player 1's row on top running right to left, their store on the left,
// player 0's row below and their store on the right. Pit indices label
// each row.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	indent := strings.Repeat(" ", 6)

	sb.WriteString(indent)
	for i := Store1 - 1; i >= Store0+1; i-- {
		sb.WriteString(fmt.Sprintf("%3d ", i))
	}
	sb.WriteString("\n" + indent)
	for i := Store1 - 1; i >= Store0+1; i-- {
		sb.WriteString(fmt.Sprintf("[%2d]", b[i]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  [%2d]%s[%2d]\n", b[Store1],
		strings.Repeat(" ", 4*PitsPerSide), b[Store0]))
	sb.WriteString(indent)
	for i := 0; i < Store0; i++ {
		sb.WriteString(fmt.Sprintf("[%2d]", b[i]))
	}
	sb.WriteString("\n" + indent)
	for i := 0; i < Store0; i++ {
		sb.WriteString(fmt.Sprintf("%3d ", i))
	}
	sb.WriteString("\n")
	return "\n" + sb.String()
}

// String is a compact single-line rendering, handy in logs.
func (b Board) String() string {
	parts := make([]string, NumSlots)
	for i, ct := range b {
		parts[i] = fmt.Sprint(ct)
	}
	return "[" + strings.Join(parts[:Store0], " ") + " | " + parts[Store0] +
		" || " + strings.Join(parts[Store0+1:Store1], " ") + " | " + parts[Store1] + "]"
}
