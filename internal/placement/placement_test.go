package placement

import "testing"

func TestPlace_FlipsLeftNearRightEdge(t *testing.T) {
	d := Place(900, 50, 1000, 800)

	// space right = 100 < 320, space below = 750 > 170
	if d.Horizontal != AnchorLeft {
		t.Fatalf("expected left anchor, got %q", d.Horizontal)
	}
	if d.Vertical != AnchorBottom {
		t.Fatalf("expected bottom anchor, got %q", d.Vertical)
	}
	// x=900 >= 320, so no clamp
	if d.X != 900 || d.Y != 50 {
		t.Fatalf("expected coordinates unchanged, got (%v, %v)", d.X, d.Y)
	}
}

func TestPlace_DefaultsRightBottom(t *testing.T) {
	d := Place(10, 10, 1000, 800)

	if d.Horizontal != AnchorRight {
		t.Fatalf("expected right anchor, got %q", d.Horizontal)
	}
	if d.Vertical != AnchorBottom {
		t.Fatalf("expected bottom anchor, got %q", d.Vertical)
	}
	if d.X != 10 || d.Y != 10 {
		t.Fatalf("expected coordinates unchanged, got (%v, %v)", d.X, d.Y)
	}
}

func TestPlace_FlipsTopNearBottomEdge(t *testing.T) {
	d := Place(10, 770, 1000, 800)

	// space below = 30 < 170, space above = 770 > 170
	if d.Vertical != AnchorTop {
		t.Fatalf("expected top anchor, got %q", d.Vertical)
	}
	if d.Y != 770 {
		t.Fatalf("expected y unchanged, got %v", d.Y)
	}
}

func TestPlace_ClampsXWhenBothSidesTight(t *testing.T) {
	// Narrow container: neither side has room, the anchor stays left and
	// the coordinate is pushed right so the editor still fits.
	d := Place(100, 400, 400, 800)

	if d.Horizontal != AnchorLeft {
		t.Fatalf("expected left anchor, got %q", d.Horizontal)
	}
	if d.X != EditorWidth+Margin {
		t.Fatalf("expected x clamped to %d, got %v", EditorWidth+Margin, d.X)
	}
}

func TestPlace_ClampsYWhenBothSidesTight(t *testing.T) {
	// Short container: the vertical anchor flips to top and y is pushed
	// down to keep the editor inside.
	d := Place(10, 100, 1000, 250)

	if d.Vertical != AnchorTop {
		t.Fatalf("expected top anchor, got %q", d.Vertical)
	}
	if d.Y != EditorHeight+Margin {
		t.Fatalf("expected y clamped to %d, got %v", EditorHeight+Margin, d.Y)
	}
}

func TestPlace_ExactBoundaryFlips(t *testing.T) {
	// Remaining space equal to editor+margin is not enough: the comparison
	// is strict.
	d := Place(680, 630, 1000, 800)

	if d.Horizontal != AnchorLeft {
		t.Fatalf("expected left anchor at exact boundary, got %q", d.Horizontal)
	}
	if d.Vertical != AnchorTop {
		t.Fatalf("expected top anchor at exact boundary, got %q", d.Vertical)
	}
}
