package render

import (
	"encoding/json"
	"io"

	"github.com/gitpulse/gitpulse/internal/analytics"
)

// JSON renders the full summary and analytics for machine consumers.
type JSON struct{}

func (j *JSON) Render(w io.Writer, cws analytics.ComprehensiveWorkSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cws)
}
