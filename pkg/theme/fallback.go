package theme

import (
	"math"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// DetectColorDepth reports the terminal's color depth in bits: 24 for
// truecolor, 8 for 256-color palettes, and 4 for basic ANSI.
func DetectColorDepth() int {
	switch termenv.ColorProfile() {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	default:
		return 4
	}
}

// Adapt converts all hex colors in a theme to 256-color ANSI codes if the
// terminal color depth is less than 24-bit. Returns the theme unchanged if
// the terminal supports 24-bit color (colorDepth >= 24).
func Adapt(t Theme, colorDepth int) Theme {
	if colorDepth >= 24 {
		return t
	}

	t.Background = thTo256Color(t.Background)
	t.Foreground = thTo256Color(t.Foreground)
	t.Dim = thTo256Color(t.Dim)
	t.Accent = thTo256Color(t.Accent)

	t.SegmentBG = thTo256Color(t.SegmentBG)
	t.SegmentBorder = thTo256Color(t.SegmentBorder)
	t.Title = thTo256Color(t.Title)

	t.StatusOK = thTo256Color(t.StatusOK)
	t.StatusWarn = thTo256Color(t.StatusWarn)
	t.StatusError = thTo256Color(t.StatusError)
	t.StatusUnknown = thTo256Color(t.StatusUnknown)

	t.WorkspaceActive = thTo256Color(t.WorkspaceActive)
	t.WorkspaceInactive = thTo256Color(t.WorkspaceInactive)
	t.WorkspaceUrgent = thTo256Color(t.WorkspaceUrgent)

	t.BatteryCharging = thTo256Color(t.BatteryCharging)
	t.BatteryLow = thTo256Color(t.BatteryLow)
	t.BatteryCritical = thTo256Color(t.BatteryCritical)

	t.CPUHot = thTo256Color(t.CPUHot)

	t.ChartLine = thTo256Color(t.ChartLine)
	t.ChartFill = thTo256Color(t.ChartFill)
	t.ChartGrid = thTo256Color(t.ChartGrid)

	t.ButtonPressed = thTo256Color(t.ButtonPressed)
	t.HelpKey = thTo256Color(t.HelpKey)
	t.HelpDesc = thTo256Color(t.HelpDesc)

	return t
}

// thTo256Color converts a hex color string (e.g. "#ff5500") to the nearest
// 256-color ANSI index, returned as a string like "196". Returns the original
// string unchanged if parsing fails.
func thTo256Color(hex string) string {
	r, g, b, ok := thParseHex(hex)
	if !ok {
		return hex
	}

	cubeIdx := thNearestCubeIndex(r, g, b)
	grayIdx := thNearestGray(r, g, b)

	cr, cg, cb := thCubeRGB(cubeIdx)
	gv := thGrayValue(grayIdx)

	cubeDist := thColorDist(r, g, b, cr, cg, cb)
	grayDist := thColorDist(r, g, b, gv, gv, gv)

	if grayDist < cubeDist {
		return strconv.Itoa(grayIdx)
	}
	return strconv.Itoa(cubeIdx)
}

// thParseHex parses "#RRGGBB" into its components.
func thParseHex(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(s[0:2], 16, 32)
	gv, err2 := strconv.ParseInt(s[2:4], 16, 32)
	bv, err3 := strconv.ParseInt(s[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}

// cubeLevels are the 6 per-channel intensity levels of the 6x6x6 color cube.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// thNearestCubeIndex returns the ANSI index (16-231) of the closest color
// in the 6x6x6 cube.
func thNearestCubeIndex(r, g, b int) int {
	ri := thNearestLevel(r)
	gi := thNearestLevel(g)
	bi := thNearestLevel(b)
	return 16 + 36*ri + 6*gi + bi
}

// thNearestLevel returns the cube level index (0-5) closest to v.
func thNearestLevel(v int) int {
	best, bestDist := 0, math.MaxInt
	for i, lv := range cubeLevels {
		d := v - lv
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// thCubeRGB returns the RGB components for a cube index (16-231).
func thCubeRGB(idx int) (r, g, b int) {
	idx -= 16
	return cubeLevels[idx/36], cubeLevels[(idx/6)%6], cubeLevels[idx%6]
}

// thNearestGray returns the ANSI index (232-255) of the closest grayscale
// ramp entry. The ramp runs 8, 18, 28, ... 238.
func thNearestGray(r, g, b int) int {
	gray := (r + g + b) / 3
	step := (gray - 8) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	return 232 + step
}

// thGrayValue returns the gray intensity for a grayscale ramp index (232-255).
func thGrayValue(idx int) int {
	return 8 + (idx-232)*10
}

// thColorDist returns the squared Euclidean distance between two RGB colors.
func thColorDist(r1, g1, b1, r2, g2, b2 int) int {
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return dr*dr + dg*dg + db*db
}
