// Package trial defines the clinical trial record model shared by the
// indexer, the sampler, and the assistant, together with the CSV codec
// used for ingestion.
package trial

import "strings"

// Metadata keys stored alongside each indexed document.
const (
	MetaNCTID      = "nct_id"
	MetaBriefTitle = "brief_title"
	MetaStatus     = "status"
	MetaPhase      = "phase"
	MetaCondition  = "condition"
	MetaPurpose    = "purpose"
	MetaStartDate  = "start_date"
)

// MissingValue is the placeholder serialized for absent record fields.
// Metadata values are always strings, never nil.
const MissingValue = "None"

// Record is a single clinical trial row from the source dataset.
//
// Records are immutable once ingested. Intervention is optional and an
// empty string means the field was absent in the source data.
//
// Example:
//
//	rec := trial.Record{
//	    NCTID:      "NCT12345678",
//	    BriefTitle: "Immunotherapy for Advanced Melanoma",
//	    Phase:      "Phase 3",
//	}
type Record struct {
	NCTID        string // Trial identifier, e.g. "NCT12345678"
	BriefTitle   string
	FullTitle    string
	Conditions   string // Free-text condition list
	Intervention string // Optional intervention description
	Status       string // Overall status: Recruiting, Active, Completed, ...
	Phase        string // Phase 1, Phase 2, Phase 3, ...
	Purpose      string // Primary purpose: Treatment, Prevention, ...
	StartDate    string // Kept as-is; source dates are not uniformly parseable
}

// DocumentText builds the text that gets embedded for this record.
//
// Sections are joined with blank lines in a fixed order: brief title,
// full title, conditions, and the intervention only when present. There
// is no trailing blank line after the last section.
func (r Record) DocumentText() string {
	var b strings.Builder
	b.WriteString("Brief Title: ")
	b.WriteString(r.BriefTitle)
	b.WriteString("\n\nFull Title: ")
	b.WriteString(r.FullTitle)
	b.WriteString("\n\nConditions: ")
	b.WriteString(r.Conditions)
	if r.Intervention != "" {
		b.WriteString("\n\nIntervention: ")
		b.WriteString(r.Intervention)
	}
	return b.String()
}

// Metadata returns the string metadata map stored with the indexed
// document. Missing values serialize to the MissingValue placeholder so
// downstream consumers never see an absent key.
func (r Record) Metadata() map[string]string {
	return map[string]string{
		MetaNCTID:      orMissing(r.NCTID),
		MetaBriefTitle: orMissing(r.BriefTitle),
		MetaStatus:     orMissing(r.Status),
		MetaPhase:      orMissing(r.Phase),
		MetaCondition:  orMissing(r.Conditions),
		MetaPurpose:    orMissing(r.Purpose),
		MetaStartDate:  orMissing(r.StartDate),
	}
}

// SearchText returns the concatenated searchable fields used by the
// keyword fallback assistant.
func (r Record) SearchText() string {
	return strings.Join([]string{r.BriefTitle, r.Conditions, r.Purpose}, " ")
}

func orMissing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

// SampleRecords returns a small built-in trial set used by the keyword
// fallback assistant when no dataset can be loaded.
func SampleRecords() []Record {
	return []Record{
		{
			NCTID:      "NCT12345678",
			BriefTitle: "Immunotherapy for Advanced Melanoma",
			Conditions: "Melanoma",
			Status:     "Recruiting",
			Phase:      "Phase 3",
			Purpose:    "Treatment",
			StartDate:  "2024-01-15",
		},
		{
			NCTID:      "NCT87654321",
			BriefTitle: "Novel Diabetes Drug Trial",
			Conditions: "Type 2 Diabetes",
			Status:     "Active",
			Phase:      "Phase 2",
			Purpose:    "Treatment",
			StartDate:  "2024-03-20",
		},
		{
			NCTID:      "NCT11111111",
			BriefTitle: "COVID-19 Vaccine Safety Study",
			Conditions: "COVID-19",
			Status:     "Completed",
			Phase:      "Phase 3",
			Purpose:    "Prevention",
			StartDate:  "2023-11-10",
		},
		{
			NCTID:      "NCT22222222",
			BriefTitle: "Alzheimer's Disease Treatment Trial",
			Conditions: "Alzheimer's Disease",
			Status:     "Recruiting",
			Phase:      "Phase 2",
			Purpose:    "Treatment",
			StartDate:  "2024-05-01",
		},
		{
			NCTID:      "NCT33333333",
			BriefTitle: "Breast Cancer Combination Therapy",
			Conditions: "Breast Cancer",
			Status:     "Active",
			Phase:      "Phase 3",
			Purpose:    "Treatment",
			StartDate:  "2024-02-28",
		},
	}
}
