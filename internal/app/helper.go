// internal/app/helper.go
package app

import (
	"strings"

	"github.com/ThanhChinhBK/kubebucket/internal/game"
)

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// compute the right pane width from the terminal width and the rendered
// board width, leaving room for the box borders
func (m *Model) sidePanelWidth(boardW int) int {
	remain := m.width - boardW - 6
	return clamp(remain, 28, 64)
}

// shortTag keeps the first segment of a node tag so the gauge rows stay
// narrow ("compute-optimized" -> "compute")
func shortTag(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

func joinRoles(roles []game.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
