package model

// Section is a display grouping bucket for features. The registry of
// sections is fixed configuration supplied outside the core; the merge
// engine treats it as a read-only ordered lookup.
type Section struct {
	Key         string `json:"key" yaml:"key"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	TagClass    string `json:"tag_class" yaml:"tag_class"`
}
