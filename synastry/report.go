package synastry

import (
	"fmt"
	"strings"

	"synastry-service/models"
)

// Report renders r as plain text. first and second name the owners of the
// first and second chart.
func Report(first, second string, r models.SynastryResult) string {
	var b strings.Builder
	b.WriteString("SYNASTRY ANALYSIS\n")
	fmt.Fprintf(&b, "%s & %s\n\n", first, second)
	fmt.Fprintf(&b, "Overall Compatibility: %.1f%%\n", r.CompatibilityScore*100)
	fmt.Fprintf(&b, "Venus-Mars Synastry: %.1f%%\n", r.VenusMars*100)
	fmt.Fprintf(&b, "Full Chart Synastry: %.1f%%\n", r.FullChart*100)
	fmt.Fprintf(&b, "Synastry Aspects Score: %.1f%%\n", r.SynastryAspects.Score*100)
	fmt.Fprintf(&b, "House Overlay Score: %.1f%%\n", r.HouseOverlay.Score*100)

	if len(r.SynastryAspects.Aspects) > 0 {
		b.WriteString("\nSYNASTRY ASPECTS:\n")
		for _, a := range r.SynastryAspects.Aspects {
			fmt.Fprintf(&b, "%s's %s %s %s's %s (orb: %.2f°)\n",
				first, a.First.DisplayName(), a.Name, second, a.Second.DisplayName(), a.Orb)
		}
	}
	if len(r.HouseOverlay.Placements) > 0 {
		b.WriteString("\nHOUSE OVERLAYS:\n")
		for _, p := range r.HouseOverlay.Placements {
			fmt.Fprintf(&b, "%s's %s falls in %s's House %d\n", first, p.Body.DisplayName(), second, p.House)
		}
	}
	return b.String()
}
