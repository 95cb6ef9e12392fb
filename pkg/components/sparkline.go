package components

import "strings"

// sparkBlocks are the 8 vertical block levels used per sparkline cell.
var sparkBlocks = [8]rune{
	'▁', '▂', '▃', '▄',
	'▅', '▆', '▇', '█',
}

// Sparkline renders the last `width` points of data as a one-line unicode
// block chart, scaled between minY and maxY. Pass minY == maxY to auto-range
// from the visible points. Empty data renders an empty string.
func Sparkline(data []float64, width int, minY, maxY float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	if minY == maxY {
		minY, maxY = points[0], points[0]
		for _, v := range points[1:] {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}

	var b strings.Builder
	for _, v := range points {
		b.WriteRune(sparkBlock(v, minY, maxY))
	}
	return b.String()
}

// sparkBlock maps a value within [minY, maxY] to one of the 8 block levels.
func sparkBlock(v, minY, maxY float64) rune {
	if maxY <= minY {
		return sparkBlocks[0]
	}
	ratio := (v - minY) / (maxY - minY)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	idx := int(ratio * 7.999)
	if idx > 7 {
		idx = 7
	}
	return sparkBlocks[idx]
}
