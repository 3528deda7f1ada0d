package viz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Size(); w != 8 || h != 8 {
		t.Fatalf("size = %dx%d, want 8x8", w, h)
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("pixel (3,5) not set")
	}
	if c.IsSet(2, 5) || c.IsSet(3, 4) {
		t.Error("neighbouring pixel set")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)

	c.Clear()
	if c.IsSet(3, 5) {
		t.Error("pixel survived Clear")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0)
	c.Set(1, 3)

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != 3 {
			t.Errorf("line %d has %d cells, want 3", i, n)
		}
	}
	first, _ := utf8.DecodeRuneInString(lines[0])
	if first != brailleBase|0x01|0x80 {
		t.Errorf("first cell = %U", first)
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Fatalf("diagonal pixel (%d,%d) not set", i, i)
		}
	}

	c.Clear()
	c.Line(5, 2, 5, 2)
	if !c.IsSet(5, 2) {
		t.Error("single point line not drawn")
	}
}

func TestCanvasLineClipsHugeCoordinates(t *testing.T) {
	c := NewCanvas(10, 5)
	const far = 1 << 40
	c.Line(-far, 10, far, 10)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 10) {
			t.Fatalf("pixel (%d,10) not set", x)
		}
	}

	c.Clear()
	c.Line(-far, -far, -far+5, -far)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBase && r != '\n' }) {
		t.Error("line entirely off canvas left marks")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(0, -3)
	if c.Cols() != 1 || c.Rows() != 1 {
		t.Errorf("got %dx%d cells, want 1x1", c.Cols(), c.Rows())
	}
	c.Resize(6, 3)
	if w, h := c.Size(); w != 12 || h != 12 {
		t.Errorf("size = %dx%d, want 12x12", w, h)
	}
}
