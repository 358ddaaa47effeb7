// Package category maps file extensions to the folder labels used when
// organizing a downloads directory.
package category

import (
	"fmt"
	"sort"
	"strings"
)

// CatchAll is the label assigned to files no rule claims.
const CatchAll = "Others"

// Rule maps a set of file extensions to a category label.
type Rule struct {
	Label      string
	Extensions []string
}

// Registry resolves file extensions to category labels. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	rules []Rule
	byExt map[string]string
}

// DefaultRules returns the built-in category rules.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
		{Label: "Music", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"}},
		{Label: "Videos", Extensions: []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm"}},
		{Label: "Documents", Extensions: []string{".pdf", ".docx", ".xlsx", ".pptx", ".txt"}},
	}
}

// NewRegistry builds a registry from the given rules. Extensions are
// normalized to lowercase with a leading dot; an extension claimed by
// two different labels is a configuration error.
func NewRegistry(rules []Rule) (*Registry, error) {
	r := &Registry{
		rules: make([]Rule, 0, len(rules)),
		byExt: make(map[string]string),
	}

	for _, rule := range rules {
		label := strings.TrimSpace(rule.Label)
		if label == "" {
			return nil, fmt.Errorf("category rule with empty label")
		}

		normalized := make([]string, 0, len(rule.Extensions))
		for _, ext := range rule.Extensions {
			n := NormalizeExt(ext)
			if n == "" || n == "." {
				return nil, fmt.Errorf("category %q: invalid extension %q", label, ext)
			}
			if owner, taken := r.byExt[n]; taken {
				if owner == label {
					continue
				}
				return nil, fmt.Errorf("extension %q claimed by both %q and %q", n, owner, label)
			}
			r.byExt[n] = label
			normalized = append(normalized, n)
		}

		r.rules = append(r.rules, Rule{Label: label, Extensions: normalized})
	}

	return r, nil
}

// Default returns a registry built from the built-in rules.
func Default() *Registry {
	r, err := NewRegistry(DefaultRules())
	if err != nil {
		// The built-in rules are static and known to be valid.
		panic(err)
	}
	return r
}

// Classify returns the label owning the given extension. Unknown and
// empty extensions resolve to the catch-all label. Matching is
// case-insensitive and tolerates a missing leading dot.
func (r *Registry) Classify(ext string) string {
	if label, ok := r.byExt[NormalizeExt(ext)]; ok {
		return label
	}
	return CatchAll
}

// Labels returns every label in rule order, the catch-all last.
func (r *Registry) Labels() []string {
	labels := make([]string, 0, len(r.rules)+1)
	for _, rule := range r.rules {
		labels = append(labels, rule.Label)
	}
	return append(labels, CatchAll)
}

// Rules returns a copy of the normalized rules.
func (r *Registry) Rules() []Rule {
	rules := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		rules[i] = Rule{
			Label:      rule.Label,
			Extensions: append([]string(nil), rule.Extensions...),
		}
	}
	return rules
}

// MergeRules extends the base rules with user-defined ones. Extensions
// for an existing label are appended to it; new labels are added in
// sorted order so the merge is deterministic.
func MergeRules(base []Rule, extra map[string][]string) []Rule {
	merged := make([]Rule, len(base))
	index := make(map[string]int, len(base))
	for i, rule := range base {
		merged[i] = Rule{
			Label:      rule.Label,
			Extensions: append([]string(nil), rule.Extensions...),
		}
		index[rule.Label] = i
	}

	labels := make([]string, 0, len(extra))
	for label := range extra {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		if i, ok := index[label]; ok {
			merged[i].Extensions = append(merged[i].Extensions, extra[label]...)
			continue
		}
		merged = append(merged, Rule{
			Label:      label,
			Extensions: append([]string(nil), extra[label]...),
		})
	}

	return merged
}

// NormalizeExt lowercases an extension and ensures a leading dot.
// Empty input stays empty so extensionless files hit the catch-all.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
