package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Div", func(t *testing.T) {
		want := Vector2D{0.5, 1}
		if got := v1.Div(2); !got.Eq(want) {
			t.Errorf("%v.Div(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("DivByZero", func(t *testing.T) {
		got := v1.Div(0)
		if !got.Eq(Vector2D{}) {
			t.Errorf("Div(0) should be the zero vector, got %v", got)
		}
	})
}

func TestVector_Set(t *testing.T) {
	v := Vector2D{1, 2}
	v.Set(-3, 7)
	if v.X != -3 || v.Y != 7 {
		t.Errorf("Set(-3, 7) left %v", v)
	}
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4} // 3-4-5 triangle

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		if !got.Eq(Vector2D{0.6, 0.8}) {
			t.Errorf("Normalize = %v; want (0.6, 0.8)", got)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		if got := (Vector2D{}).Normalize(); !got.Eq(Vector2D{}) {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
		}
	})

	t.Run("WithLen", func(t *testing.T) {
		got := v.WithLen(10)
		if !got.Eq(Vector2D{6, 8}) {
			t.Errorf("WithLen(10) = %v; want (6, 8)", got)
		}
		back := v.WithLen(-5)
		if !back.Eq(Vector2D{-3, -4}) {
			t.Errorf("WithLen(-5) = %v; want (-3, -4)", back)
		}
		if z := (Vector2D{}).WithLen(3); !z.IsZero() {
			t.Errorf("WithLen on zero vector = %v; want zero", z)
		}
	})
}

func TestVector_Limit(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		max  float64
		want Vector2D
	}{
		{"under the cap", Vector2D{1, 0}, 2, Vector2D{1, 0}},
		{"exactly at the cap", Vector2D{0, 2}, 2, Vector2D{0, 2}},
		{"over the cap", Vector2D{3, 4}, 1, Vector2D{0.6, 0.8}},
		{"zero vector", Vector2D{}, 1, Vector2D{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Limit(tt.max); !got.Eq(tt.want) {
				t.Errorf("%v.Limit(%v) = %v; want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector2D{1, 1}
	v2 := Vector2D{4, 5} // dx=3, dy=4, dist=5

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}

	if got := v1.DistanceSquaredTo(v2); got != 25 {
		t.Errorf("DistanceSquaredTo = %v; want 25", got)
	}
}

func TestVector_Angles(t *testing.T) {
	tests := []struct {
		v    Vector2D
		want float64
	}{
		{Vector2D{1, 0}, 0},
		{Vector2D{0, 1}, math.Pi / 2},
		{Vector2D{-1, 0}, math.Pi},
		{Vector2D{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.Angle(); !floatEquals(got, tt.want) {
			t.Errorf("%v.Angle() = %v; want %v", tt.v, got, tt.want)
		}
	}

	if got := (Vector2D{1, 1}).AngleTo(Vector2D{1, 2}); !floatEquals(got, math.Pi/2) {
		t.Errorf("AngleTo = %v; want %v", got, math.Pi/2)
	}
}

func TestVector_Utilities(t *testing.T) {
	t.Run("Rotate", func(t *testing.T) {
		got := Vector2D{1, 0}.Rotate(math.Pi / 2)
		if !got.Eq(Vector2D{0, 1}) {
			t.Errorf("Rotate(90) = %v; want (0, 1)", got)
		}
	})

	t.Run("Lerp", func(t *testing.T) {
		got := Vector2D{0, 0}.Lerp(Vector2D{10, 10}, 0.5)
		if !got.Eq(Vector2D{5, 5}) {
			t.Errorf("Lerp(0.5) = %v; want (5, 5)", got)
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		got := Vector2D{-5, 500}.Clamp(50, 50, 750, 550)
		if !got.Eq(Vector2D{50, 500}) {
			t.Errorf("Clamp = %v; want (50, 500)", got)
		}
	})

	t.Run("Centroid", func(t *testing.T) {
		got := Centroid([]Vector2D{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
		if !got.Eq(Vector2D{2, 2}) {
			t.Errorf("Centroid = %v; want (2, 2)", got)
		}
		if empty := Centroid(nil); !empty.IsZero() {
			t.Errorf("Centroid(nil) = %v; want zero", empty)
		}
	})
}

func TestVector_Eq(t *testing.T) {
	v := Vector2D{1, 2}

	if !v.Eq(Vector2D{1, 2}) {
		t.Error("Eq exact match failed")
	}

	vClose := Vector2D{1 + Epsilon/2, 2 - Epsilon/2}
	if !v.Eq(vClose) {
		t.Error("Eq epsilon match failed")
	}

	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
}
