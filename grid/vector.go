package grid

// Small value types used throughout the solver packages. These are
// deliberately plain structs rather than gonum vectors - every hot loop
// indexes raw float64 slices and only needs component arithmetic here.

type Vector2 struct {
	X, Y float64
}

type Vector3 struct {
	X, Y, Z float64
}

type Size2 struct {
	X, Y int
}

type Size3 struct {
	X, Y, Z int
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{s * v.X, s * v.Y}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{s * v.X, s * v.Y, s * v.Z}
}

func (s Size2) Count() int {
	return s.X * s.Y
}

func (s Size3) Count() int {
	return s.X * s.Y * s.Z
}
