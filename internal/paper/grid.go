package paper

type GridType string

const (
	GridNone       GridType = "none"
	GridHorizontal GridType = "horizontal"
	GridVertical   GridType = "vertical"
	GridSquare     GridType = "square"
)

// GridSettings configure the background guide lines of a paper. The grid is
// presentation state: it is saved with the paper but excluded from undo
// history.
type GridSettings struct {
	Type    GridType `json:"type"`
	Spacing float32  `json:"spacing"`
	Color   string   `json:"color"`
	Opacity float32  `json:"opacity"`
}

func DefaultGridSettings() GridSettings {
	return GridSettings{Type: GridNone, Spacing: 20, Color: "#c8c8c8", Opacity: 0.5}
}

// GridPatch is a partial update; nil fields keep their current value.
// Out-of-range values are dropped field by field, the rest still apply.
type GridPatch struct {
	Type    *GridType
	Spacing *float32
	Color   *string
	Opacity *float32
}

func (g *GridSettings) apply(p GridPatch) {
	if p.Type != nil {
		switch *p.Type {
		case GridNone, GridHorizontal, GridVertical, GridSquare:
			g.Type = *p.Type
		}
	}
	if p.Spacing != nil && *p.Spacing > 0 && *p.Spacing <= 200 {
		g.Spacing = *p.Spacing
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.Opacity != nil && *p.Opacity >= 0 && *p.Opacity <= 1 {
		g.Opacity = *p.Opacity
	}
}
