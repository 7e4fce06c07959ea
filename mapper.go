package joystick

// ClampToDisc rescales v so its length does not exceed limit, preserving its
// direction. Vectors already inside the disc are returned unchanged.
// A non-positive limit collapses every vector to zero.
func ClampToDisc(v Vec2, limit float64) Vec2 {
	if limit <= 0 {
		return Vec2{}
	}
	if v.Len() > limit {
		return v.Normalize().Scale(limit)
	}
	return v
}

// MapTouch converts a touch location into a thumb position and a direction
// vector for a base disc of the given radius centered at center.
//
// The thumb may travel radius-thumbRadius from the center. The direction is
// the thumb offset divided by that travel, so each component lies in [-1, 1]
// and the vector's length never exceeds 1. When the travel is zero or
// negative the thumb stays at center and the direction is (0, 0).
func MapTouch(center Vec2, radius, thumbRadius float64, touch Vec2) (thumb, dir Vec2) {
	travel := radius - thumbRadius
	if travel <= 0 {
		return center, Vec2{}
	}
	offset := ClampToDisc(touch.Sub(center), travel)
	return center.Add(offset), Vec2{offset.X / travel, offset.Y / travel}
}
