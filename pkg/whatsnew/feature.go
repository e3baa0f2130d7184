package whatsnew

// Feature is one input feature record as the upstream parsers report it.
// This is the stable public input type; internal representations may
// evolve independently without breaking consumers.
type Feature struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"` // free-form, e.g. "GA", "Tech Preview"
	Release     string   `json:"release,omitempty"`
	Section     string   `json:"section,omitempty"` // registry key
	Tags        []string `json:"tags,omitempty"`
	Links       []string `json:"links,omitempty"` // raw URLs
	Media       []Media  `json:"media,omitempty"`
	Order       int      `json:"order,omitempty"` // curation order, PM input only
}

// Media references one downloaded asset.
type Media struct {
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"` // "image" or "video", inferred when empty
}

// Link is a resolved external reference on an output feature.
type Link struct {
	Kind   string `json:"kind"` // "pull", "issue", or "docs"
	Repo   string `json:"repo,omitempty"`
	Number int    `json:"number,omitempty"`
	URL    string `json:"url"`
}

// Item is one feature in the assembled document.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Release     string   `json:"release,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Links       []Link   `json:"links,omitempty"`
	Media       []Media  `json:"media,omitempty"`
	Highlighted bool     `json:"highlighted"` // true when PM curated
	MergedFrom  []string `json:"merged_from,omitempty"`
}

// SectionGroup is one rendered section with its ordered features.
type SectionGroup struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Features []Item `json:"features"`
}

// Document is the assembled merge result.
type Document struct {
	Releases []string       `json:"releases,omitempty"`
	Sections []SectionGroup `json:"sections"`
	// Notable lists PM curated features that matched nothing in the
	// release notes.
	Notable  []Item   `json:"notable,omitempty"`
	Total    int      `json:"total"`
	Warnings []string `json:"warnings,omitempty"`
}
