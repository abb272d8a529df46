package globe

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Globe.debug is true.
type debugStats struct {
	animateTime time.Duration
	renderTime  time.Duration
	render      RenderStats
}

// statsReporter is implemented by pipelines that can report renderer counters.
type statsReporter interface {
	renderStats() RenderStats
}

func (p *glowPipeline) renderStats() RenderStats {
	return p.renderer.Stats()
}

// collectRenderStats copies the renderer counters from the pipeline, if it
// reports them.
func (g *Globe) collectRenderStats() {
	if sr, ok := g.pipeline.(statsReporter); ok {
		g.stats.render = sr.renderStats()
	}
}

// debugLog prints timing and draw stats to stderr.
func (g *Globe) debugLog(stats debugStats) {
	if !g.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[globe] frame %d | animate: %v | render: %v | total: %v\n",
		g.frame, stats.animateTime, stats.renderTime, stats.animateTime+stats.renderTime)
	r := stats.render
	_, _ = fmt.Fprintf(os.Stderr,
		"[globe] triangles: %d | culled: %d | sprites: %d | commands: %d | draw calls: %d\n",
		r.Triangles, r.Culled, r.Sprites, r.Commands, r.DrawCalls)
}
