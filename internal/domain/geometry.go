package domain

import "math"

// Vec3 is a point or direction in world space
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Point3 is a position in world space
type Point3 = Vec3

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// DistanceTo returns the Euclidean distance between v and o
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Component returns the coordinate of v along axis
func (v Vec3) Component(axis Axis) float64 {
	switch axis {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

// WithComponent returns a copy of v with the coordinate along axis replaced
func (v Vec3) WithComponent(axis Axis, value float64) Vec3 {
	switch axis {
	case AxisY:
		v.Y = value
	case AxisZ:
		v.Z = value
	default:
		v.X = value
	}
	return v
}

// Axis names a world axis. Conveyors transit items along one of them.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Valid reports whether a is one of the three world axes
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}
