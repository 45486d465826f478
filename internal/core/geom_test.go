package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"apart vertically", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"touching right edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"touching bottom edge", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"one unit overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},
		{14, 14, true},
		{15, 10, false},
		{10, 15, false},
		{9, 12, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 64, 64)

	inner := r.Inset(17, 17)
	if inner != NewRect(17, 17, 30, 30) {
		t.Errorf("Inset(17, 17) = %+v, expected {17 17 30 30}", inner)
	}

	band := r.Inset(0, 8)
	if band != NewRect(0, 8, 64, 48) {
		t.Errorf("Inset(0, 8) = %+v, expected {0 8 64 48}", band)
	}

	tiny := NewRect(0, 0, 4, 4).Inset(5, 5)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("Inset() past zero gave size %dx%d, expected 1x1", tiny.W, tiny.H)
	}
}

func TestRectCenter(t *testing.T) {
	x, y := NewRect(64, 128, 64, 64).Center()
	if x != 96 || y != 160 {
		t.Errorf("Center() = (%d, %d), expected (96, 160)", x, y)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-3, 0, 10, 0},
		{1.5, 0, 1, 1},
		{4, 4, 4, 4},
	}
	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
