package model

// RawRecord is the intermediate shape produced by the external parsers
// (PM markdown, release-notes extraction, the selection UI) and consumed by
// the normalizer. Fields mirror the interchange JSON those tools emit.
type RawRecord struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status,omitempty"` // free-form, normalized later
	ReleaseVersion string     `json:"release_version,omitempty"`
	SectionKey     string     `json:"section_key,omitempty"`
	FeatureTags    []string   `json:"feature_tags,omitempty"`
	Links          []string   `json:"links,omitempty"` // raw URLs
	Media          []RawMedia `json:"media,omitempty"`
	PMOrder        int        `json:"pm_order,omitempty"`
}

// RawMedia is a media reference as the parsers report it. MediaType may be
// empty, in which case the normalizer infers it from the filename.
type RawMedia struct {
	Filename  string `json:"filename"`
	MediaType string `json:"media_type,omitempty"`
}
