package model

// SectionGroup is one rendered section: its registry entry plus the ordered
// features assigned to it.
type SectionGroup struct {
	Section  Section         `json:"section"`
	Features []FeatureRecord `json:"features"`
}

// Document is the assembled output of a merge run. Sections appear in
// registry order with empty sections omitted. Notable lists PM-highlighted
// features that absorbed no release-notes record ("Notable Features Not in
// Release Notes"). Records inside a Document are immutable.
type Document struct {
	Releases      []string        `json:"releases,omitempty"` // sorted distinct versions
	Sections      []SectionGroup  `json:"sections"`
	Notable       []FeatureRecord `json:"notable,omitempty"`
	TotalFeatures int             `json:"total_features"`
}
