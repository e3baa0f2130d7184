// Package linkid normalizes raw link strings into canonical Link values so
// the matcher can compare features by link identity.
package linkid

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/crimson-sun/whatsnew/internal/model"
)

var githubRef = regexp.MustCompile(`^https://github\.com/([\w.-]+/[\w.-]+)/(pull|issues)/(\d+)`)

// Resolve parses a raw URL into a Link. GitHub pull/issue URLs become
// number-identified links; everything else degrades to a docs-kind link
// wrapping the raw string. A non-empty input is never discarded and Resolve
// never fails. No network access.
func Resolve(raw string) model.Link {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimRight(trimmed, ".,;")

	if m := githubRef.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[3])
		if err == nil && n > 0 {
			kind := model.LinkIssue
			if m[2] == "pull" {
				kind = model.LinkPull
			}
			return model.Link{Kind: kind, Repo: m[1], Number: n, URL: trimmed}
		}
	}

	return model.Link{Kind: model.LinkDocs, URL: trimmed}
}

// ResolveAll resolves a list of raw URLs and drops duplicate identities,
// keeping first occurrence. Empty strings are skipped.
func ResolveAll(raws []string) []model.Link {
	if len(raws) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raws))
	links := make([]model.Link, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		l := Resolve(raw)
		if _, ok := seen[l.Identity()]; ok {
			continue
		}
		seen[l.Identity()] = struct{}{}
		links = append(links, l)
	}
	if len(links) == 0 {
		return nil
	}
	return links
}
