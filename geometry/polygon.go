package geometry

// PolygonVertices returns the vertices of a regular polygon in order.
// Vertex i sits at rotationOffset + i*(360/sides) degrees; edge i is the
// segment from vertex i to vertex (i+1) mod sides.
func PolygonVertices(sides int, radius float64, center Vec2, rotationOffset float64) []Vec2 {
	verts := make([]Vec2, sides)
	step := 360.0 / float64(sides)
	for i := 0; i < sides; i++ {
		verts[i] = PointOnCircle(center, radius, rotationOffset+float64(i)*step)
	}
	return verts
}

// EdgeMidpointAngle returns the angular position of edge i's midpoint
// for a polygon built with the given rotationOffset.
func EdgeMidpointAngle(sides, edge int, rotationOffset float64) float64 {
	step := 360.0 / float64(sides)
	return NormalizeAngle(rotationOffset + float64(edge)*step + step/2)
}
