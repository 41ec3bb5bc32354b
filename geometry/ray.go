package geometry

import (
	"math"

	"github.com/lixenwraith/laser-lock/parameter"
)

// RaySegmentIntersection returns the ray parameter t where the ray
// origin+t*dir crosses segment a-b. ok is false when the ray misses,
// runs parallel, or the crossing lies behind the origin.
func RaySegmentIntersection(origin, dir, a, b Vec2) (t float64, ok bool) {
	seg := b.Sub(a)
	denom := dir.Cross(seg)
	if math.Abs(denom) < parameter.RayEpsilon {
		return 0, false
	}

	diff := a.Sub(origin)
	t = diff.Cross(seg) / denom
	u := diff.Cross(dir) / denom

	if t < parameter.RayEpsilon || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// RayCircleIntersection returns the smallest positive ray parameter t
// where the ray enters a circle. ok is false when the ray misses or the
// circle lies entirely behind the origin.
func RayCircleIntersection(origin, dir, center Vec2, radius float64) (t float64, ok bool) {
	oc := origin.Sub(center)

	// Quadratic in t: |oc + t*dir|^2 = r^2, with dir assumed unit length
	b := 2 * oc.Dot(dir)
	c := oc.LengthSq() - radius*radius
	disc := b*b - 4*c

	if disc < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(disc)
	t1 := (-b - sqrtD) / 2
	t2 := (-b + sqrtD) / 2

	if t1 > parameter.RayEpsilon {
		return t1, true
	}
	if t2 > parameter.RayEpsilon {
		return t2, true
	}
	return 0, false
}
