package assistant

import (
	"strings"

	"github.com/trialbase-ai/go-trialqa/pkg/trial"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// NoCitationsPlaceholder renders when no trial identifiers were found.
const NoCitationsPlaceholder = "No trial IDs available"

// ExtractCitations pulls trial identifiers from document metadata in
// encounter order.
//
// Documents without an identifier are skipped. Returns the raw sequence
// for programmatic use and a comma-joined string for display; with no
// identifiers the display string is the "No trial IDs available"
// placeholder, never empty.
func ExtractCitations(docs []vectorstore.Document) ([]string, string) {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if id := doc.Metadata[trial.MetaNCTID]; id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ids, NoCitationsPlaceholder
	}
	return ids, strings.Join(ids, ", ")
}
