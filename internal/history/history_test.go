package history

import (
	"image"
	"image/color"
	"testing"

	xdraw "golang.org/x/image/draw"
)

// solid returns a w x h snapshot filled with a colour derived from n.
func solid(n, w, h int) *Snapshot {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{uint8(n), uint8(n * 3), uint8(n * 7), 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return Capture(img)
}

func checkFlags(t *testing.T, s *Store) {
	t.Helper()
	if got, want := s.CanUndo(), s.Cursor() > 0; got != want {
		t.Errorf("CanUndo() = %v with cursor %d", got, s.Cursor())
	}
	if got, want := s.CanRedo(), s.Cursor() < s.Len()-1; got != want {
		t.Errorf("CanRedo() = %v with cursor %d len %d", got, s.Cursor(), s.Len())
	}
	if s.Len() > 0 && (s.Cursor() < 0 || s.Cursor() >= s.Len()) {
		t.Errorf("cursor %d out of range [0,%d)", s.Cursor(), s.Len())
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	if s.Cursor() != -1 || s.Current() != nil || !s.Empty() {
		t.Fatalf("new store: cursor=%d current=%v", s.Cursor(), s.Current())
	}
	if _, ok := s.Undo(); ok {
		t.Error("Undo() on empty store should be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Error("Redo() on empty store should be a no-op")
	}
	checkFlags(t, s)
}

func TestCommitMovesCursor(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		s.Commit(solid(i, 2, 2))
		checkFlags(t, s)
	}
	if s.Len() != 3 || s.Cursor() != 2 {
		t.Fatalf("len=%d cursor=%d, want 3 and 2", s.Len(), s.Cursor())
	}
	if s.CanRedo() {
		t.Error("CanRedo() after commit should be false")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for k := 0; k <= n-1; k++ {
			s := New()
			var snaps []*Snapshot
			for i := 0; i < n; i++ {
				snap := solid(i+1, 3, 2)
				snaps = append(snaps, snap)
				s.Commit(snap)
			}
			for i := 0; i < k; i++ {
				if _, ok := s.Undo(); !ok {
					t.Fatalf("n=%d k=%d: undo %d failed", n, k, i)
				}
				checkFlags(t, s)
			}
			for i := 0; i < k; i++ {
				if _, ok := s.Redo(); !ok {
					t.Fatalf("n=%d k=%d: redo %d failed", n, k, i)
				}
				checkFlags(t, s)
			}
			if !s.Current().Equal(snaps[n-1]) {
				t.Errorf("n=%d k=%d: round trip did not restore final snapshot", n, k)
			}
		}
	}
}

func TestUndoStopsAtFirstSnapshot(t *testing.T) {
	s := New()
	s.Commit(solid(1, 1, 1))
	s.Commit(solid(2, 1, 1))

	if _, ok := s.Undo(); !ok {
		t.Fatal("first undo should succeed")
	}
	if _, ok := s.Undo(); ok {
		t.Error("undo at cursor 0 should be a no-op")
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor())
	}
}

func TestCommitDiscardsRedoBranch(t *testing.T) {
	s := New()
	a, b, c, d := solid(1, 1, 1), solid(2, 1, 1), solid(3, 1, 1), solid(4, 1, 1)
	s.Commit(a)
	s.Commit(b)
	s.Commit(c)
	s.Undo()
	s.Undo()

	s.Commit(d)
	checkFlags(t, s)

	if s.Len() != 2 || s.Cursor() != 1 {
		t.Fatalf("len=%d cursor=%d, want 2 and 1", s.Len(), s.Cursor())
	}
	if s.Current() != d {
		t.Error("current should be the new commit")
	}
	if _, ok := s.Redo(); ok {
		t.Error("redo after truncating commit should be a no-op")
	}

	got, ok := s.Undo()
	if !ok || got != a {
		t.Fatalf("undo should reach the first snapshot")
	}
	got, ok = s.Redo()
	if !ok || got != d {
		t.Error("redo should reopen the new branch, not the discarded one")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	s := New(WithLimit(3))
	snaps := make([]*Snapshot, 5)
	for i := range snaps {
		snaps[i] = solid(i, 1, 1)
		s.Commit(snaps[i])
		checkFlags(t, s)
	}
	if s.Len() != 3 || s.Cursor() != 2 {
		t.Fatalf("len=%d cursor=%d, want 3 and 2", s.Len(), s.Cursor())
	}
	s.Undo()
	s.Undo()
	if s.Current() != snaps[2] {
		t.Error("oldest retained snapshot should be the third commit")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Commit(solid(1, 1, 1))
	s.Reset()
	if !s.Empty() || s.Cursor() != -1 {
		t.Errorf("after Reset: len=%d cursor=%d", s.Len(), s.Cursor())
	}
}

func TestCaptureIsACopy(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
	snap := Capture(img)

	img.SetRGBA(0, 0, color.RGBA{9, 9, 9, 255})

	if got := snap.At(0, 0); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("snapshot changed with its source: %v", got)
	}
}

func TestDrawToSameSizeIsExact(t *testing.T) {
	snap := solid(5, 4, 3)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 3))
	snap.DrawTo(dst, dst.Bounds(), xdraw.CatmullRom)
	if !Capture(dst).Equal(snap) {
		t.Error("same-size DrawTo should copy pixels exactly")
	}
}

func TestDrawToStretches(t *testing.T) {
	snap := solid(5, 2, 2)
	dst := image.NewRGBA(image.Rect(0, 0, 8, 4))
	snap.DrawTo(dst, dst.Bounds(), xdraw.NearestNeighbor)
	want := snap.At(0, 0)
	for _, p := range []image.Point{{0, 0}, {7, 3}, {4, 2}} {
		if got := dst.At(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestBytes(t *testing.T) {
	s := New()
	s.Commit(solid(1, 4, 4))
	s.Commit(solid(2, 4, 4))
	if got := s.Bytes(); got != 2*4*4*4 {
		t.Errorf("Bytes() = %d, want %d", got, 2*4*4*4)
	}
}
