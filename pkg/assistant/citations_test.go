package assistant

import (
	"testing"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

func TestExtractCitations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		docs     []vectorstore.Document
		wantIDs  int
		wantLine string
	}{
		{
			name: "two ids in encounter order",
			docs: []vectorstore.Document{
				{Metadata: map[string]string{"nct_id": "NCT1"}},
				{Metadata: map[string]string{"nct_id": "NCT2"}},
			},
			wantIDs:  2,
			wantLine: "NCT1, NCT2",
		},
		{
			name:     "empty input",
			docs:     nil,
			wantIDs:  0,
			wantLine: "No trial IDs available",
		},
		{
			name: "missing id skipped",
			docs: []vectorstore.Document{
				{Metadata: map[string]string{"nct_id": "NCT9"}},
				{Metadata: map[string]string{"phase": "Phase 2"}},
			},
			wantIDs:  1,
			wantLine: "NCT9",
		},
		{
			name: "no ids at all",
			docs: []vectorstore.Document{
				{Metadata: map[string]string{"phase": "Phase 2"}},
			},
			wantIDs:  0,
			wantLine: "No trial IDs available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids, line := ExtractCitations(tt.docs)
			if len(ids) != tt.wantIDs {
				t.Errorf("got %d ids, want %d", len(ids), tt.wantIDs)
			}
			if line != tt.wantLine {
				t.Errorf("line = %q, want %q", line, tt.wantLine)
			}
		})
	}
}
