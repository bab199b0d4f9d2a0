package geom

import "testing"

func TestMapToBacking(t *testing.T) {
	tests := []struct {
		name    string
		device  Point
		display Rect
		bw, bh  int
		want    Point
		wantOK  bool
	}{
		{"double density", Point{50, 25}, Rect{0, 0, 100, 50}, 200, 100, Point{100, 50}, true},
		{"offset origin", Point{60, 35}, Rect{10, 10, 100, 50}, 200, 100, Point{100, 50}, true},
		{"identity", Point{7, 3}, Rect{0, 0, 40, 20}, 40, 20, Point{7, 3}, true},
		{"anisotropic", Point{2.5, 1.5}, Rect{0, 0, 10, 5}, 40, 40, Point{10, 12}, true},
		{"zero display width", Point{1, 1}, Rect{0, 0, 0, 50}, 200, 100, Point{}, false},
		{"zero display height", Point{1, 1}, Rect{0, 0, 100, 0}, 200, 100, Point{}, false},
		{"zero backing", Point{1, 1}, Rect{0, 0, 100, 50}, 0, 0, Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapToBacking(tt.device, tt.display, tt.bw, tt.bh)
			if ok != tt.wantOK {
				t.Fatalf("MapToBacking() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("MapToBacking() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 5}
	if !r.Contains(Point{0, 0}) {
		t.Error("origin should be inside")
	}
	if r.Contains(Point{10, 2}) {
		t.Error("right edge should be outside")
	}
	if r.Contains(Point{3, 5}) {
		t.Error("bottom edge should be outside")
	}
}
