package geom

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a, b := Vec{3, 4}, Vec{1, -2}
	if got := a.Add(b); got != (Vec{4, 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec{2, 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec{6, 8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestVecClamp(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
		max  float64
		want Vec
	}{
		{"shorter than max", Vec{3, 4}, 10, Vec{3, 4}},
		{"scaled down", Vec{30, 40}, 10, Vec{6, 8}},
		{"zero vector", Vec{}, 10, Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Clamp(tt.max); math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Clamp(%v) = %v, want %v", tt.max, got, tt.want)
			}
		})
	}
}

func TestVecIsFinite(t *testing.T) {
	if !(Vec{1, 2}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec{math.NaN(), 0}).IsFinite() || (Vec{0, math.Inf(-1)}).IsFinite() {
		t.Error("NaN or Inf reported as finite")
	}
}

func TestBoxInset(t *testing.T) {
	b := NewBox(0, 0, 1000, 800).Inset(50)
	if b.Min != (Vec{50, 50}) || b.Max != (Vec{950, 750}) {
		t.Errorf("Inset = %+v", b)
	}

	small := NewBox(0, 0, 60, 400).Inset(50)
	if small.Min.X != 30 || small.Max.X != 30 {
		t.Errorf("collapsed x = [%v, %v], want [30, 30]", small.Min.X, small.Max.X)
	}
	if small.Height() != 300 {
		t.Errorf("height = %v, want 300", small.Height())
	}
}

func TestBoxClampPoint(t *testing.T) {
	b := NewBox(50, 50, 900, 700)
	tests := []struct {
		in, want Vec
	}{
		{Vec{500, 400}, Vec{500, 400}},
		{Vec{-10, 400}, Vec{50, 400}},
		{Vec{2000, 2000}, Vec{950, 750}},
	}
	for _, tt := range tests {
		got := b.ClampPoint(tt.in)
		if got != tt.want {
			t.Errorf("ClampPoint(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !b.Contains(got) {
			t.Errorf("ClampPoint(%v) = %v outside box", tt.in, got)
		}
	}
}

func TestBoxUnion(t *testing.T) {
	u := NewBox(0, 0, 10, 10).Union(NewBox(20, -5, 5, 5))
	if u.Min != (Vec{0, -5}) || u.Max != (Vec{25, 10}) {
		t.Errorf("Union = %+v", u)
	}
	if c := u.Center(); c != (Vec{12.5, 2.5}) {
		t.Errorf("Center = %v", c)
	}
	if u.Width() != 25 {
		t.Errorf("Width = %v", u.Width())
	}
}
