// Package whatsnew merges curated PM feature highlights with extracted
// release-notes features into one deduplicated, sectioned document.
//
// Quick start:
//
//	m, err := whatsnew.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, _ := m.Merge(pmFeatures, releaseFeatures)
//	for _, s := range doc.Sections {
//	    fmt.Println(s.Name, len(s.Features))
//	}
//
// The merge is pure and deterministic: identical inputs produce identical
// documents. A Merger is safe for concurrent use.
package whatsnew
