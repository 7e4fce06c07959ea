package joystick

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	minDiscSegments = 24
	maxDiscSegments = 128
	segmentLength   = 4.0 // target rim length per fan segment, in pixels
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel lazily creates the 1x1 white source used for untextured fans.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// discSegments picks a fan resolution proportional to the circumference.
func discSegments(radius float64) int {
	n := int(math.Ceil(2 * math.Pi * radius / segmentLength))
	return min(max(n, minDiscSegments), maxDiscSegments)
}

// GradientDisc builds a triangle fan approximating a disc. The hub vertex
// carries inner and the rim vertices carry outer, so interpolation across
// each triangle yields a radial gradient. Returns segments+1 vertices and
// 3*segments indices; segments below 3 are raised to 3. A non-positive
// radius yields nil slices.
func GradientDisc(center Vec2, radius float64, inner, outer Color, segments int) ([]ebiten.Vertex, []uint16) {
	if radius <= 0 {
		return nil, nil
	}
	if segments < 3 {
		segments = 3
	}

	verts := make([]ebiten.Vertex, segments+1)
	inds := make([]uint16, segments*3)

	setVertex(&verts[0], center.X, center.Y, inner)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a := float64(i) * step
		setVertex(&verts[i+1], center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a), outer)
	}

	// Closed fan: the last triangle wraps back to the first rim vertex.
	for i := 0; i < segments; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16((i+1)%segments + 1)
	}
	return verts, inds
}

func setVertex(v *ebiten.Vertex, x, y float64, c Color) {
	v.DstX = float32(x)
	v.DstY = float32(y)
	// Untextured: sample the center of the white pixel.
	v.SrcX = 0.5
	v.SrcY = 0.5
	v.ColorR = float32(c.R)
	v.ColorG = float32(c.G)
	v.ColorB = float32(c.B)
	v.ColorA = float32(c.A)
}

// toRGBA converts to a premultiplied color.RGBA for ebiten APIs that take color.Color.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Draw renders the base disc, its border and the thumb onto dst at the
// joystick's bounds, then clears the redraw flag.
func (j *Joystick) Draw(dst *ebiten.Image) {
	j.ensureGeometry()
	j.dirty = false
	if j.radius <= 0 {
		return
	}

	origin := Vec2{j.bounds.X, j.bounds.Y}
	center := origin.Add(j.center)
	white := ensureWhitePixel()

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true

	verts, inds := GradientDisc(center, j.radius, j.theme.MainStart, j.theme.MainEnd, discSegments(j.radius))
	dst.DrawTriangles(verts, inds, white, &op)

	if j.theme.BorderThickness > 0 {
		vector.StrokeCircle(dst, float32(center.X), float32(center.Y), float32(j.radius),
			float32(j.theme.BorderThickness), j.theme.Border.toRGBA(), true)
	}

	if j.thumbRadius > 0 {
		thumb := origin.Add(j.display)
		verts, inds = GradientDisc(thumb, j.thumbRadius, j.theme.ThumbStart, j.theme.ThumbEnd, discSegments(j.thumbRadius))
		dst.DrawTriangles(verts, inds, white, &op)
	}
}
