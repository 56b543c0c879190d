package playerbar

import (
	"fmt"

	"github.com/llehouerou/liveradio/internal/icons"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// RenderVolume renders the volume indicator.
// Format: "vol  70%" or "mute   0%" with the none icon style.
func RenderVolume(volume float64, muted bool) string {
	pct := int(volume*100 + 0.5)
	return styles.T().S().Time.Render(fmt.Sprintf("%s %3d%%", icons.Volume(muted), pct))
}
