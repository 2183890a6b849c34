package trial

import (
	"strings"
	"testing"
)

func TestDocumentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name: "all sections present",
			record: Record{
				BriefTitle:   "Brief",
				FullTitle:    "Full",
				Conditions:   "Melanoma",
				Intervention: "Drug X",
			},
			expected: "Brief Title: Brief\n\nFull Title: Full\n\nConditions: Melanoma\n\nIntervention: Drug X",
		},
		{
			name: "missing intervention omits section",
			record: Record{
				BriefTitle: "Brief",
				FullTitle:  "Full",
				Conditions: "Diabetes",
			},
			expected: "Brief Title: Brief\n\nFull Title: Full\n\nConditions: Diabetes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.record.DocumentText()
			if got != tt.expected {
				t.Errorf("DocumentText() = %q, want %q", got, tt.expected)
			}
			if strings.HasSuffix(got, "\n") {
				t.Errorf("DocumentText() has trailing newline: %q", got)
			}
		})
	}
}

func TestMetadataMissingValues(t *testing.T) {
	t.Parallel()

	rec := Record{NCTID: "NCT001", BriefTitle: "Brief"}
	meta := rec.Metadata()

	if meta[MetaNCTID] != "NCT001" {
		t.Errorf("nct_id = %q, want NCT001", meta[MetaNCTID])
	}
	if meta[MetaBriefTitle] != "Brief" {
		t.Errorf("brief_title = %q, want Brief", meta[MetaBriefTitle])
	}

	for _, key := range []string{MetaStatus, MetaPhase, MetaCondition, MetaPurpose, MetaStartDate} {
		if meta[key] != MissingValue {
			t.Errorf("metadata[%s] = %q, want %q placeholder", key, meta[key], MissingValue)
		}
	}
}

func TestMetadataHasAllKeys(t *testing.T) {
	t.Parallel()

	meta := Record{}.Metadata()
	keys := []string{MetaNCTID, MetaBriefTitle, MetaStatus, MetaPhase, MetaCondition, MetaPurpose, MetaStartDate}
	if len(meta) != len(keys) {
		t.Errorf("metadata has %d keys, want %d", len(meta), len(keys))
	}
	for _, key := range keys {
		if _, ok := meta[key]; !ok {
			t.Errorf("metadata missing key %s", key)
		}
	}
}
