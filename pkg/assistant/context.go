package assistant

import (
	"strings"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

const (
	bodyTruncation = 100 // Body characters kept when a title separator exists
	docTruncation  = 150 // Characters kept when no separator exists

	contextSeparator = "\n---\n"
)

// BuildContext assembles the bounded context block from the selected
// documents.
//
// Per document: when the text contains a blank-line separator, the text
// splits into title and body on the first occurrence only, and the
// fragment is the title plus the first 100 body characters. Without a
// separator the fragment is the first 150 characters of the whole text.
// Fragments are joined with a "---" separator line.
//
// Truncation counts raw characters and may cut mid-word; that is an
// accepted limitation, matching the bound the model prompt was tuned
// for.
func BuildContext(docs []vectorstore.Document) string {
	fragments := make([]string, 0, len(docs))
	for _, doc := range docs {
		fragments = append(fragments, contextFragment(doc.Content))
	}
	return strings.Join(fragments, contextSeparator)
}

func contextFragment(text string) string {
	if title, body, found := strings.Cut(text, "\n\n"); found {
		return title + "\n" + truncate(body, bodyTruncation) + "..."
	}
	return truncate(text, docTruncation) + "..."
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
