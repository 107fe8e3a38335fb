// Package placement decides which side the new-comment editor opens toward
// for a click inside the preview container, flipping away from the edges so
// the editor stays visible.
package placement

// Editor box policy constants. Assumed dimensions, not measured from the
// rendered editor.
const (
	EditorWidth  = 300
	EditorHeight = 150
	Margin       = 20
)

type HorizontalAnchor string

type VerticalAnchor string

const (
	AnchorLeft  HorizontalAnchor = "left"
	AnchorRight HorizontalAnchor = "right"

	AnchorTop    VerticalAnchor = "top"
	AnchorBottom VerticalAnchor = "bottom"
)

// Draft is the comment being composed. It is never persisted; a draft is
// promoted to a stored comment only once its text validates.
type Draft struct {
	X          float64          `json:"x"`
	Y          float64          `json:"y"`
	Text       string           `json:"text,omitempty"`
	Horizontal HorizontalAnchor `json:"horizontal"`
	Vertical   VerticalAnchor   `json:"vertical"`
}

// Place computes the draft anchors for a click at (x, y) inside a container
// of the given size. The anchors pick the sides with more room. The clamp
// only adjusts coordinates so the editor still fits when both sides are
// tight; it never changes the anchor label, which stays authoritative for
// the render side.
func Place(x, y, containerWidth, containerHeight float64) Draft {
	spaceRight := containerWidth - x
	spaceLeft := x
	spaceBottom := containerHeight - y
	spaceTop := y

	horizontal := AnchorLeft
	if spaceRight > EditorWidth+Margin {
		horizontal = AnchorRight
	}

	vertical := AnchorTop
	if spaceBottom > EditorHeight+Margin {
		vertical = AnchorBottom
	}

	if horizontal == AnchorLeft && spaceLeft < EditorWidth+Margin {
		x = EditorWidth + Margin
	}
	if vertical == AnchorTop && spaceTop < EditorHeight+Margin {
		y = EditorHeight + Margin
	}

	return Draft{X: x, Y: y, Horizontal: horizontal, Vertical: vertical}
}
