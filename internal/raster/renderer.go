package raster

import (
	"image"
	"image/color"
	"math"

	"smplx-poser/internal/bodymodel"
	"smplx-poser/internal/camera"
	"smplx-poser/internal/mathutil"
	"smplx-poser/internal/postprocess"
)

// Options controls how a posed body is turned into an image.
type Options struct {
	Size        int     // output edge in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Extent      float64 // world units spanned by the frame at zoom 1
	AutoFit     bool    // fit the bounding box of each frame instead of Extent
	Perspective bool
	MeshColor   color.NRGBA
	JointColor  color.NRGBA
	ShowJoints  bool
	Label       string // drawn in the top-left corner when non-empty
}

// Fixed framing keeps the body still across an animation: the frame is
// centered between the feet and the top of the head of the rest pose.
var frameCenter = mathutil.Vec3{0, -0.29, 0}

const (
	defaultExtent = 2.6
	marginPx      = 16
	markerRadius  = 3.5
	markerBias    = 0.12
)

func DefaultOptions() Options {
	return Options{
		Size:        600,
		Supersample: 2,
		Extent:      defaultExtent,
		MeshColor:   color.NRGBA{168, 172, 186, 255},
		JointColor:  color.NRGBA{214, 64, 58, 255},
		ShowJoints:  true,
	}
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = 600
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	if o.Extent <= 0 {
		o.Extent = defaultExtent
	}
	if o.MeshColor.A == 0 {
		o.MeshColor = DefaultOptions().MeshColor
	}
	if o.JointColor.A == 0 {
		o.JointColor = DefaultOptions().JointColor
	}
	return o
}

// Render draws the posed mesh and its joints as seen from view. The result
// is Size×Size with a transparent background.
func Render(out *bodymodel.Output, view camera.View, opt Options) *image.NRGBA {
	opt = opt.withDefaults()
	ss := opt.Supersample
	renderSize := opt.Size * ss

	fb := NewFrameBuffer(renderSize, renderSize)

	if out != nil && len(out.Vertices) > 0 {
		drawBody(fb, out, view, opt)
	}

	img := postprocess.Downsample(fb.Image(), opt.Size)
	if opt.Label != "" {
		DrawLabel(img, opt.Label, 8, 8, color.NRGBA{255, 255, 255, 255})
	}
	return img
}

func drawBody(fb *FrameBuffer, out *bodymodel.Output, view camera.View, opt Options) {
	ss := float64(opt.Supersample)
	R := view.Matrix()

	center, span := framing(out.Vertices, R, opt)
	scale := (float64(fb.Width) - 2*marginPx*ss) / span * view.Zoom()

	// Joints share one projection with the mesh so perspective stays consistent.
	nv := len(out.Vertices)
	pts := make([]mathutil.Vec3, 0, nv+len(out.Joints))
	pts = append(pts, out.Vertices...)
	pts = append(pts, out.Joints...)
	px, py, pz := camera.Project(pts, R, center, scale, fb.Width, opt.Perspective)

	light := DefaultLight()
	mc := opt.MeshColor
	for _, f := range out.Faces {
		a := R.MulVec3(out.Vertices[f[0]])
		n := R.MulVec3(out.Vertices[f[1]]).Sub(a).Cross(R.MulVec3(out.Vertices[f[2]]).Sub(a))
		if n.Len() < 1e-12 {
			continue
		}
		r, g, b := light.Apply(mc.R, mc.G, mc.B, light.Shade(n.Normalize()))
		FillTriangle(fb, px[:nv], py[:nv], pz[:nv], f, r, g, b)
	}

	if !opt.ShowJoints {
		return
	}
	jc := opt.JointColor
	for i := nv; i < len(pts); i++ {
		FillDisc(fb, px[i], py[i], pz[i], markerRadius*ss, markerBias, jc.R, jc.G, jc.B)
	}
}

// framing returns the model-space point mapped to the image center and the
// world span that fills the frame.
func framing(verts []mathutil.Vec3, R mathutil.Mat3, opt Options) (mathutil.Vec3, float64) {
	if !opt.AutoFit {
		return frameCenter, opt.Extent
	}

	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		tv := R.MulVec3(v)
		for k := 0; k < 3; k++ {
			allMin[k] = math.Min(allMin[k], tv[k])
			allMax[k] = math.Max(allMax[k], tv[k])
		}
	}

	mid := allMin.Add(allMax).Scale(0.5)
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}
	// R is orthonormal, so its transpose maps the view-space midpoint back.
	return R.Transpose().MulVec3(mid), span
}
