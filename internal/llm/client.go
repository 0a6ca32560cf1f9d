// Package llm generates optional narrative summaries of a work period
// through an external language model. It is a pure enrichment step: every
// failure here degrades to a report without narrative.
package llm

import "context"

// Client is the completion interface the narrator consumes.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
