// Package render draws a session's scene graph with ebiten through a
// perspective camera.
package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/coinrunner/geom"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
	"golang.org/x/image/colornames"
)

var (
	skyColor  = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x26, A: 0xff}
	roadColor = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x40, A: 0xff}
)

type Renderer struct {
	Camera *Camera
	Light  Light

	road  prefabs.RoadSpec
	lanes []float64
	hud   *HUD

	white *ebiten.Image
}

func NewRenderer(t *prefabs.RunnerSpec, width, height float64) *Renderer {
	r := &Renderer{hud: NewHUD()}
	r.SetTuning(t, width, height)
	return r
}

// SetTuning rebuilds the camera, light and road from new tuning.
func (r *Renderer) SetTuning(t *prefabs.RunnerSpec, width, height float64) {
	r.Camera = NewCamera(t.Camera, width, height)
	r.Light = NewLight(t.Light)
	r.road = t.Road
	r.lanes = append(r.lanes[:0], t.Lanes.Offsets...)
}

func (r *Renderer) HUD() *HUD {
	return r.hud
}

// Draw paints the road and every visible node, far to near.
func (r *Renderer) Draw(screen *ebiten.Image, g *scene.Graph) {
	screen.Fill(skyColor)
	r.drawRoad(screen)

	for _, n := range DrawOrder(r.Camera, g.Nodes()) {
		switch n.Model.Shape {
		case scene.ShapeSphere:
			r.drawSphere(screen, n)
		default:
			r.drawBox(screen, n)
		}
	}
}

// DrawOrder returns the visible nodes sorted back to front.
func DrawOrder(cam *Camera, nodes []scene.Node) []scene.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n.Visible && n.Model != nil {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i].Bounds(), out[j].Bounds()
		return cam.Depth(bi.Center()) > cam.Depth(bj.Center())
	})
	return out
}

func (r *Renderer) drawRoad(screen *ebiten.Image) {
	w, l := r.road.Width, r.road.Length
	if w <= 0 || l <= 0 {
		return
	}
	hw, hl := w/2, l/2
	corners := []mgl64.Vec3{{-hw, 0, -hl}, {hw, 0, -hl}, {hw, 0, hl}, {-hw, 0, hl}}
	r.fillWorldPolygon(screen, corners, r.Light.Shade(r.road.Color.RGBA8(roadColor), mgl64.Vec3{0, 1, 0}))

	// Markers run between lanes.
	for i := 0; i+1 < len(r.lanes); i++ {
		x := (r.lanes[i] + r.lanes[i+1]) / 2
		r.strokeWorldLine(screen, mgl64.Vec3{x, 0.01, -hl}, mgl64.Vec3{x, 0.01, hl}, 2, colornames.Lightgrey)
	}
	r.strokeWorldLine(screen, mgl64.Vec3{-hw, 0.01, -hl}, mgl64.Vec3{-hw, 0.01, hl}, 3, colornames.White)
	r.strokeWorldLine(screen, mgl64.Vec3{hw, 0.01, -hl}, mgl64.Vec3{hw, 0.01, hl}, 3, colornames.White)
}

func (r *Renderer) drawSphere(screen *ebiten.Image, n scene.Node) {
	b := n.Bounds()
	center := b.Center()
	x, y, ok := r.Camera.Project(center)
	if !ok {
		return
	}
	radius := r.Camera.PixelRadius(center, b.Size().X()/2)
	if radius < 0.5 {
		return
	}
	// Lit from the side facing the camera.
	c := r.Light.Shade(n.Model.Color, r.Camera.ToEye(center))
	vector.FillCircle(screen, float32(x), float32(y), float32(radius), c, true)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(radius), 1, n.Model.Color, true)
}

func (r *Renderer) drawBox(screen *ebiten.Image, n scene.Node) {
	b := n.Bounds()
	for _, f := range VisibleFaces(b, r.Camera.Eye) {
		r.fillWorldPolygon(screen, f.Corners[:], r.Light.Shade(n.Model.Color, f.Normal))
	}
}

// Face is one side of a box.
type Face struct {
	Normal  mgl64.Vec3
	Corners [4]mgl64.Vec3
}

// VisibleFaces returns the faces of b that point toward eye.
func VisibleFaces(b geom.Box3, eye mgl64.Vec3) []Face {
	lo, hi := b.Min, b.Max
	faces := []Face{
		{Normal: mgl64.Vec3{0, 1, 0}, Corners: [4]mgl64.Vec3{{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]}}},
		{Normal: mgl64.Vec3{0, -1, 0}, Corners: [4]mgl64.Vec3{{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]}}},
		{Normal: mgl64.Vec3{0, 0, -1}, Corners: [4]mgl64.Vec3{{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], hi[1], lo[2]}, {lo[0], hi[1], lo[2]}}},
		{Normal: mgl64.Vec3{0, 0, 1}, Corners: [4]mgl64.Vec3{{lo[0], lo[1], hi[2]}, {hi[0], lo[1], hi[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]}}},
		{Normal: mgl64.Vec3{-1, 0, 0}, Corners: [4]mgl64.Vec3{{lo[0], lo[1], lo[2]}, {lo[0], lo[1], hi[2]}, {lo[0], hi[1], hi[2]}, {lo[0], hi[1], lo[2]}}},
		{Normal: mgl64.Vec3{1, 0, 0}, Corners: [4]mgl64.Vec3{{hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {hi[0], hi[1], hi[2]}, {hi[0], hi[1], lo[2]}}},
	}

	out := faces[:0]
	for _, f := range faces {
		if f.Normal.Dot(eye.Sub(f.Corners[0])) > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (r *Renderer) strokeWorldLine(screen *ebiten.Image, a, b mgl64.Vec3, width float32, c color.Color) {
	ax, ay, okA := r.Camera.Project(a)
	bx, by, okB := r.Camera.Project(b)
	if !okA || !okB {
		return
	}
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, c, true)
}

func (r *Renderer) fillWorldPolygon(screen *ebiten.Image, pts []mgl64.Vec3, c color.NRGBA) {
	var path vector.Path
	for i, p := range pts {
		x, y, ok := r.Camera.Project(p)
		if !ok {
			return
		}
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	screen.DrawTriangles(vs, is, r.whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}
