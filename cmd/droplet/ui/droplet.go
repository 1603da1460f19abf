package ui

import (
	"math"
	"strings"
	"time"

	"droplet/internal/breath"

	"github.com/charmbracelet/lipgloss"
)

const (
	dropletRadius = 4.0  // rows at Scale 1
	pulseAmount   = 0.08 // fraction the droplet swells per breath
	maxShake      = 3    // columns of shake at the largest Jitter
	dropletGlyph  = "█"
)

// canvas dimensions fit the largest droplet at full swell plus shake, so the
// layout never jumps between states.
var canvasWidth, canvasHeight = canvasSize()

func canvasSize() (int, int) {
	largest := 0.0
	for _, s := range breath.States() {
		largest = math.Max(largest, breath.ConfigFor(s).Scale)
	}
	r := dropletRadius * largest * (1 + pulseAmount)
	rows := dropletShape(r)
	widest := 0
	for _, half := range rows {
		widest = max(widest, half)
	}
	return 2*(widest+maxShake) + 3, len(rows) + 1
}

// RenderDroplet draws the droplet for cfg at the given point of the
// animation. Speed is the breath period in seconds, Scale the size, Jitter
// the shake, Color the fill.
func RenderDroplet(cfg breath.StateConfig, elapsed time.Duration, frame int) string {
	phase := 0.0
	if cfg.Speed > 0 {
		phase = 2 * math.Pi * elapsed.Seconds() / cfg.Speed
	}
	r := dropletRadius * cfg.Scale * (1 + pulseAmount*math.Sin(phase))
	rows := dropletShape(r)
	shake := jitterOffset(cfg.Jitter, frame)
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Color))
	blank := strings.Repeat(" ", canvasWidth)

	lines := make([]string, 0, canvasHeight)
	for i := 0; i < (canvasHeight-len(rows))/2; i++ {
		lines = append(lines, blank)
	}
	center := canvasWidth/2 + shake
	for _, half := range rows {
		w := 2*half + 1
		left := max(center-half, 0)
		right := max(canvasWidth-left-w, 0)
		lines = append(lines, strings.Repeat(" ", left)+fill.Render(strings.Repeat(dropletGlyph, w))+strings.Repeat(" ", right))
	}
	for len(lines) < canvasHeight {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// dropletShape returns the half width, in columns, of each row of a teardrop
// of radius r: a tapered tip two radii tall over a round body. Columns are
// doubled because terminal cells are about twice as tall as wide.
func dropletShape(r float64) []int {
	var halves []int
	tip := 2 * r
	for y := -tip; y <= r; y++ {
		var h float64
		if y < 0 {
			h = r * math.Pow(1+y/tip, 1.5)
		} else {
			h = math.Sqrt(math.Max(r*r-y*y, 0))
		}
		halves = append(halves, int(math.Round(h*2)))
	}
	return halves
}

// jitterOffset is a deterministic shake in [-maxShake, maxShake] scaled by
// jitter relative to the largest jitter in the table.
func jitterOffset(jitter float64, frame int) int {
	top := breath.MaxJitter()
	if top <= 0 || jitter <= 0 {
		return 0
	}
	amp := jitter / top * maxShake
	f := float64(frame)
	return int(math.Round(amp * math.Sin(f*2.3) * math.Cos(f*0.7)))
}
