package whatsnew

// Section declares one grouping bucket for the assembled document.
type Section struct {
	Key  string
	Name string
}

type options struct {
	matchThreshold       float64
	consolidateThreshold float64
	incrementThreshold   float64
	sections             []Section
}

// Option configures a Merger.
type Option func(*options)

// WithMatchThreshold sets the minimum title similarity for treating a
// release-notes record as a duplicate of a PM record. Default: 0.60.
func WithMatchThreshold(t float64) Option {
	return func(o *options) { o.matchThreshold = t }
}

// WithConsolidateThreshold sets the minimum title similarity for grouping
// same-tag records into one composite. Default: 0.45.
func WithConsolidateThreshold(t float64) Option {
	return func(o *options) { o.consolidateThreshold = t }
}

// WithIncrementThreshold sets the similarity above which an unmatched
// record counts as a minor increment of an already covered capability and
// is dropped. Default: 0.35.
func WithIncrementThreshold(t float64) Option {
	return func(o *options) { o.incrementThreshold = t }
}

// WithSections replaces the built-in section list. Sections render in the
// given order; an empty list is rejected by New.
func WithSections(sections []Section) Option {
	return func(o *options) { o.sections = sections }
}

func defaultOptions() options {
	return options{
		matchThreshold:       0.60,
		consolidateThreshold: 0.45,
		incrementThreshold:   0.35,
	}
}
