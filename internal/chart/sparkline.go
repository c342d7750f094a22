package chart

import (
	"math"
	"strings"
)

// Braille blocks, 4 sub-blocks high: empty, 1/4, 1/2, 3/4, full
var brailleBlocks = []rune{'⠀', '⣀', '⣤', '⣶', '⣿'}

const subBlocksPerLine = 4.0

// Sparkline renders intensities on a fixed 0..1 scale as height lines of
// braille characters, one column per value. Values outside the scale are
// clamped. Returns "" for fewer than two values.
func Sparkline(values []float64, height int) string {
	if len(values) < 2 || height < 1 {
		return ""
	}

	full := brailleBlocks[len(brailleBlocks)-1]
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(string(brailleBlocks[0]), len(values)))
	}

	for x, val := range values {
		normalized := math.Max(0, math.Min(1, val))
		totalSubBlocks := normalized * float64(height) * subBlocksPerLine

		// Fill lines from bottom up
		for y := 0; y < height; y++ {
			lineIdx := height - 1 - y
			lineStart := float64(y) * subBlocksPerLine
			lineEnd := float64(y+1) * subBlocksPerLine

			if totalSubBlocks >= lineEnd {
				rows[lineIdx][x] = full
			} else if totalSubBlocks > lineStart {
				remainder := int(math.Round(totalSubBlocks - lineStart))
				if remainder >= len(brailleBlocks) {
					remainder = len(brailleBlocks) - 1
				}
				rows[lineIdx][x] = brailleBlocks[remainder]
			}
		}
	}

	lines := make([]string, height)
	for i, row := range rows {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
