// Package script provides pluggable post-reflow text transforms, used to map
// extracted text into a target Chinese script variant. Transforms run after
// sentence reflow only: reflow's punctuation heuristics must see the original
// extracted text.
package script

// Transform rewrites a free-text field. Implementations must be total and
// safe for concurrent use.
type Transform func(string) string

// Noop returns the input unchanged.
func Noop(s string) string { return s }

// Chain composes transforms left to right.
func Chain(ts ...Transform) Transform {
	return func(s string) string {
		for _, t := range ts {
			s = t(s)
		}
		return s
	}
}
