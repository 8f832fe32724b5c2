package render

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/parameter"
	"github.com/lixenwraith/asteroid-forge/status"
)

// TerminalRenderer draws one asteroid instance and the status bar
// Caller must hold the world update lock while calling RenderFrame
type TerminalRenderer struct {
	screen  tcell.Screen
	world   *engine.World
	sampler noise.Sampler

	statCells *atomic.Int64
	statRegen *atomic.Int64
	statFail  *atomic.Int64
	statLive  *atomic.Int64
	statTotal *atomic.Int64
	statMs    *status.AtomicFloat
	statAvgMs *status.AtomicFloat
	statErr   *status.AtomicString
}

// NewTerminalRenderer creates a renderer over the world's sampler and status registry
func NewTerminalRenderer(screen tcell.Screen, world *engine.World) *TerminalRenderer {
	res := engine.GetResourceStore(world)
	reg := res.Status.Registry
	return &TerminalRenderer{
		screen:    screen,
		world:     world,
		sampler:   res.Sampler.Sampler,
		statCells: reg.Ints.Get(status.KeyCells),
		statRegen: reg.Ints.Get(status.KeyRegenerations),
		statFail:  reg.Ints.Get(status.KeyFailures),
		statLive:  reg.Ints.Get(status.KeySurfacesLive),
		statTotal: reg.Ints.Get(status.KeySurfacesTotal),
		statMs:    reg.Floats.Get(status.KeyGenerateMs),
		statAvgMs: reg.Floats.Get(status.KeyGenerateAvgMs),
		statErr:   reg.Strings.Get(status.KeyLastError),
	}
}

// Frame describes what the host wants drawn
type Frame struct {
	Selected core.Entity
	Index    int // Position of Selected among instances
	Count    int
	Muted    bool
	Audio    bool
	Message  string
}

// viewport maps lattice space onto the screen, y up
type viewport struct {
	cx, cy        int
	width, height int
}

func (v viewport) toScreen(x, y float32) (int, int) {
	return v.cx + int(x*parameter.CellColumns), v.cy - int(y)
}

func (v viewport) toLattice(sx, sy int) (float32, float32) {
	return float32(sx-v.cx) / parameter.CellColumns, float32(v.cy - sy)
}

// RenderFrame draws the selected instance: surface, then sprites, then status bar
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	vp := viewport{cx: w / 2, cy: (h - parameter.BottomMargin) / 2, width: w, height: h - parameter.BottomMargin}

	if f.Selected != 0 {
		r.drawSurface(vp, f.Selected)
		r.drawSprites(vp, f.Selected)
	}
	r.drawStatusBar(w, h, f)
	r.screen.Show()
}

func (r *TerminalRenderer) drawSurface(vp viewport, anchor core.Entity) {
	surf, ok := engine.ChildSurface(r.world, anchor)
	if !ok {
		return
	}
	halfW := surf.Geometry.Width / 2
	halfH := surf.Geometry.Height / 2
	ox, oy := surf.Geometry.Position.X, surf.Geometry.Position.Y

	for sy := 0; sy < vp.height; sy++ {
		for sx := 0; sx < vp.width; sx++ {
			x, y := vp.toLattice(sx, sy)
			if x < ox-halfW || x > ox+halfW || y < oy-halfH || y > oy+halfH {
				continue
			}
			c := Shade(surf.Shading, r.sampler, x, y)
			r.screen.SetContent(sx, sy, ' ', nil, tcell.StyleDefault.Background(TcellColor(c)))
		}
	}
}

func (r *TerminalRenderer) drawSprites(vp viewport, anchor core.Entity) {
	for _, s := range engine.ChildSprites(r.world, anchor) {
		sx, sy := vp.toScreen(s.Position.X, s.Position.Y)
		style := tcell.StyleDefault.Background(TcellColor(s.Color)).Foreground(TcellColor(s.Color))
		cols := int(s.Size * parameter.CellColumns)
		for i := 0; i < cols; i++ {
			if sx+i < 0 || sx+i >= vp.width || sy < 0 || sy >= vp.height {
				continue
			}
			r.screen.SetContent(sx+i, sy, parameter.CellRune, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawStatusBar(w, h int, f Frame) {
	y := h - 1
	bar := tcell.StyleDefault.Background(TcellColor(RgbStatusBg)).Foreground(TcellColor(RgbStatusFg))
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, bar)
	}

	var b strings.Builder
	if ast, ok := r.world.Components.Asteroid.GetComponent(f.Selected); ok {
		p := ast.Params
		fmt.Fprintf(&b, "%s %d/%d %s v%d | f=%.3f a=%.2f r=%.1f seed=%d",
			parameter.SelectedStr, f.Index+1, f.Count, ast.Name, ast.Version,
			p.FrequencyScale, p.AmplitudeScale, p.Radius, p.Seed)
	} else {
		b.WriteString("no asteroid")
	}
	fmt.Fprintf(&b, " | cells=%d regen=%d fail=%d surf=%d/%d gen=%.2f/%.2fms",
		r.statCells.Load(), r.statRegen.Load(), r.statFail.Load(),
		r.statLive.Load(), r.statTotal.Load(), r.statMs.Get(), r.statAvgMs.Get())
	if f.Audio && !f.Muted {
		b.WriteString(" " + parameter.AudioStr)
	}

	x := drawText(r.screen, 0, y, b.String(), bar)

	msg := f.Message
	if msg == "" {
		msg = r.statErr.Load()
		if msg != "" {
			msg = "error: " + msg
		}
	}
	if msg != "" {
		drawText(r.screen, x+1, y, msg, bar.Foreground(TcellColor(RgbStatusErr)))
	}
}

// drawText writes s starting at (x, y) and returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
