// Package viewer implements the host application: it owns the window, the
// frame loop, and the wiring between SDL input, the viewport state, and the
// drawing backend.
package viewer

import (
	"fmt"
	"sort"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Munormae/cryxtal-castor/internal/config"
	"github.com/Munormae/cryxtal-castor/internal/engine/gizmo"
	"github.com/Munormae/cryxtal-castor/internal/engine/input"
	"github.com/Munormae/cryxtal-castor/internal/engine/mesh"
	"github.com/Munormae/cryxtal-castor/internal/engine/overlay"
	"github.com/Munormae/cryxtal-castor/internal/engine/scene"
	"github.com/Munormae/cryxtal-castor/internal/engine/viewport"
	"github.com/Munormae/cryxtal-castor/internal/engine/window"
	"github.com/Munormae/cryxtal-castor/internal/logger"
	"github.com/Munormae/cryxtal-castor/internal/render/sdlpaint"
	gmath "github.com/Munormae/cryxtal-castor/pkg/math"
)

var background = overlay.RGB(28, 30, 34)

// App is the running viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window  *window.Window
	input   *input.Handler
	painter *sdlpaint.Painter

	state *viewport.State
	scene *scene.Scene

	// displayEdges mirrors the scene mesh list; cylinders carry a coarser
	// feature angle than the default so their silhouette stays clean.
	displayEdges  [][][2]int
	sceneRevision uint64
	selected      int
	mode          viewport.ViewMode
}

// New creates the viewer, its window, and the demo scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{
		cfg:      cfg,
		selected: -1,
		mode:     viewport.ModeSkeleton,
		state:    viewport.New(),
		scene:    scene.New(),
	}
	if cfg.Viewer.GizmoMode == "axis" {
		a.state.SetGizmoMode(gizmo.ModeAxis)
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Cryxtal Castor",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.painter = sdlpaint.New(a.window.Renderer())
	a.input = input.New()

	meshes, coarseEdges := demoScene(cfg.Viewer.FeatureAngleDeg)
	a.scene.SetMeshes(meshes)
	a.refreshSceneCaches()
	for i, edges := range coarseEdges {
		if edges != nil {
			a.SetDisplayEdges(i, edges)
		}
	}
	if bounds, ok := a.scene.Bounds(); ok {
		a.state.FitBounds(bounds)
	}

	logger.Info("viewer initialized", zap.Int("meshes", len(a.scene.Meshes())))
	return a, nil
}

// Run starts the frame loop and blocks until the window closes.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting frame loop")
	for a.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if a.input.Update() {
			a.running = false
			break
		}
		if w, h, ok := a.input.Resized(); ok {
			logger.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		}

		a.frame(dt)

		if frameBudget > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}
	return nil
}

// Close releases the window and SDL.
func (a *App) Close() {
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) frame(dt float64) {
	width, height := a.window.GetSize()
	rect := overlay.RectFromMinSize(gmath.Vec2{}, gmath.Vec2{X: float32(width), Y: float32(height)})
	snapshot := a.input.Snapshot(rect)
	meshes := a.scene.Meshes()

	a.handleKeys(snapshot)

	consumed := a.state.HandleInput(snapshot, meshes)
	if !consumed && snapshot.PrimaryClicked && snapshot.Hovered {
		if idx, _, ok := a.state.PickElement(snapshot.PointerPos, rect, meshes); ok {
			a.selected = idx
			logger.Debug("element selected", zap.Int("index", idx))
		} else {
			a.selected = -1
		}
	}

	a.state.Update(dt)
	a.refreshSceneCaches()
	a.render(rect, snapshot, meshes)
}

func (a *App) handleKeys(snapshot viewport.Input) {
	if a.input.KeyPressed(sdl.SCANCODE_ESCAPE) {
		a.state.CancelInteraction()
		a.selected = -1
	}
	if a.input.KeyPressed(sdl.SCANCODE_F) {
		if bounds, ok := a.scene.Bounds(); ok {
			a.state.FitBounds(bounds)
		}
	}
	if a.input.KeyPressed(sdl.SCANCODE_R) {
		a.state.ResetView()
	}
	if a.input.KeyPressed(sdl.SCANCODE_G) {
		if a.state.GizmoMode() == gizmo.ModeCube {
			a.state.SetGizmoMode(gizmo.ModeAxis)
		} else {
			a.state.SetGizmoMode(gizmo.ModeCube)
		}
	}
	if snapshot.Modifiers.Ctrl {
		switch {
		case a.input.KeyPressed(sdl.SCANCODE_1):
			a.mode = viewport.ModeSkeleton
		case a.input.KeyPressed(sdl.SCANCODE_2):
			a.mode = viewport.ModeLayerOpaque
		case a.input.KeyPressed(sdl.SCANCODE_3):
			a.mode = viewport.ModeLayerTransparent
		case a.input.KeyPressed(sdl.SCANCODE_4):
			a.mode = viewport.ModeMaterial
		}
	}
}

// refreshSceneCaches rebuilds the per-mesh display edges and drops the snap
// cache when the scene revision moved.
func (a *App) refreshSceneCaches() {
	if a.scene.Revision() == a.sceneRevision && a.displayEdges != nil {
		return
	}
	a.sceneRevision = a.scene.Revision()
	a.state.InvalidateSnapCache()

	meshes := a.scene.Meshes()
	a.displayEdges = make([][][2]int, len(meshes))
	for i, m := range meshes {
		if m == nil {
			continue
		}
		a.displayEdges[i] = m.Edges
	}
}

// SetDisplayEdges overrides the edge set drawn for one mesh, for geometry
// that wants a coarser feature angle than the default.
func (a *App) SetDisplayEdges(index int, edges [][2]int) {
	if index >= 0 && index < len(a.displayEdges) {
		a.displayEdges[index] = edges
	}
}

func (a *App) render(rect overlay.Rect, snapshot viewport.Input, meshes []*mesh.Mesh) {
	a.painter.Clear(background)

	if a.mode == viewport.ModeLayerOpaque || a.mode == viewport.ModeLayerTransparent {
		a.drawFilled(rect, meshes)
	}
	a.drawWireframe(rect, meshes)

	a.state.PaintOverlay(a.painter, viewport.OverlayParams{
		Rect:       rect,
		Meshes:     meshes,
		Selected:   a.selected,
		Mode:       a.mode,
		SnapActive: a.cfg.Viewer.SnapEnabled,
		PointerPos: snapshot.PointerPos,
		HasPointer: snapshot.HasPointer,
		DrawGizmo:  true,
		ShowHint:   a.cfg.Viewer.ShowHints,
	})

	a.window.Present()
}

func (a *App) drawWireframe(rect overlay.Rect, meshes []*mesh.Mesh) {
	normal := overlay.NewStroke(1, overlay.Gray(150))
	highlight := overlay.NewStroke(1.4, overlay.RGB(255, 210, 90))

	for idx, m := range meshes {
		if m == nil {
			continue
		}
		stroke := normal
		if idx == a.selected {
			stroke = highlight
		}
		edges := m.Edges
		if idx < len(a.displayEdges) && a.displayEdges[idx] != nil {
			edges = a.displayEdges[idx]
		}
		for _, edge := range edges {
			start, okA := a.state.ProjectPoint(m.Positions[edge[0]], rect)
			end, okB := a.state.ProjectPoint(m.Positions[edge[1]], rect)
			if okA && okB {
				a.painter.LineSegment(start, end, stroke)
			}
		}
	}
}

// drawFilled paints every triangle back to front with a flat shade keyed to
// how much the face turns toward the camera.
func (a *App) drawFilled(rect overlay.Rect, meshes []*mesh.Mesh) {
	type shadedTri struct {
		points [3]gmath.Vec2
		depth  float64
		color  overlay.Color
	}

	cameraPos := a.state.CameraPosition()
	forward := a.state.CameraTarget().Sub(cameraPos).Normalize()
	alpha := uint8(255)
	if a.mode == viewport.ModeLayerTransparent {
		alpha = 120
	}

	var tris []shadedTri
	for _, m := range meshes {
		if m == nil {
			continue
		}
		for _, tri := range m.Triangles {
			p0 := m.Positions[tri[0]]
			p1 := m.Positions[tri[1]]
			p2 := m.Positions[tri[2]]

			normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
			facing := -normal.Dot(forward)
			if facing <= 0 {
				continue
			}

			s0, ok0 := a.state.ProjectPoint(p0, rect)
			s1, ok1 := a.state.ProjectPoint(p1, rect)
			s2, ok2 := a.state.ProjectPoint(p2, rect)
			if !ok0 || !ok1 || !ok2 {
				continue
			}

			center := p0.Add(p1).Add(p2).Scale(1.0 / 3.0)
			shade := 0.35 + 0.65*facing
			base := overlay.Gray(uint8(60 + 120*shade))
			base.A = alpha
			tris = append(tris, shadedTri{
				points: [3]gmath.Vec2{s0, s1, s2},
				depth:  center.Sub(cameraPos).Dot(forward),
				color:  base,
			})
		}
	}

	sort.Slice(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })
	for _, t := range tris {
		a.painter.Polygon(t.points[:], t.color, overlay.Stroke{})
	}
}
