package grid

// Viewport is a scrollable window into a grid. It never modifies the grid.
type Viewport struct {
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// NewViewport creates a viewport of the given size at the origin
func NewViewport(width, height int) Viewport {
	return Viewport{Width: max(width, 0), Height: max(height, 0)}
}

// Scroll moves the window by dx columns and dy rows. Offsets stop at zero.
func (v *Viewport) Scroll(dx, dy int) {
	v.OffsetX = max(v.OffsetX+dx, 0)
	v.OffsetY = max(v.OffsetY+dy, 0)
}

// Resize changes the visible size
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 0)
	v.Height = max(height, 0)
}

// Clamp keeps the window from scrolling past the end of g
func (v *Viewport) Clamp(g *Grid) {
	v.OffsetX = max(min(v.OffsetX, g.Width()-v.Width), 0)
	v.OffsetY = max(min(v.OffsetY, g.Height()-v.Height), 0)
}

// Text renders the visible part of g
func (v Viewport) Text(g *Grid) string {
	return ViewportText(g, v.OffsetX, v.OffsetY, v.Width, v.Height)
}
