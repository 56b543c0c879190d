// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a standard panel border.
	BorderWidth = 2

	// MinPanelWidth is the narrowest panel with room for content.
	MinPanelWidth = BorderWidth + 1

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	// Used to calculate available list height: listHeight = panelHeight - PanelOverhead
	PanelOverhead = BorderHeight + HeaderHeight

	// MinExpandedWidth is the minimum width for expanded player bar mode.
	MinExpandedWidth = 40

	// MinPanelHeight is the smallest playlist panel worth drawing.
	MinPanelHeight = PanelOverhead + 2
)
