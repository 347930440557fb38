package form

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// FeatureMaxLength bounds a single feature tag
const FeatureMaxLength = 100

// TagSet is an ordered set of free-text tags. Duplicates are rejected
// case-sensitively and insertion order is kept.
type TagSet struct {
	items []string
}

// NewTagSet builds a set from existing tags, dropping blanks and duplicates
func NewTagSet(tags []string) *TagSet {
	s := &TagSet{}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add trims text and appends it unless it is empty or already present
func (s *TagSet) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || s.Contains(text) {
		return false
	}
	s.items = append(s.items, text)
	return true
}

// Remove deletes a tag, reporting whether it was present
func (s *TagSet) Remove(text string) bool {
	for i, t := range s.items {
		if t == text {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Pop removes and returns the most recently added tag
func (s *TagSet) Pop() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Contains reports whether text is already a tag
func (s *TagSet) Contains(text string) bool {
	for _, t := range s.items {
		if t == text {
			return true
		}
	}
	return false
}

// Items returns a copy of the tags in insertion order
func (s *TagSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of tags
func (s *TagSet) Len() int {
	return len(s.items)
}

// Key identifies a key press the tag input reacts to
type Key int

const (
	KeyEnter Key = iota
	KeyBackspace
)

// TagInput is the features multi-select: a tag set, the text being typed and
// a suggestion list.
type TagInput struct {
	draft       *Draft
	name        string
	set         *TagSet
	typed       string
	suggestions []string
}

// NewTagInput binds a tag input to a draft slot holding []string
func NewTagInput(draft *Draft, name string, suggestions []string) *TagInput {
	var initial []string
	if v, ok := draft.Get(name); ok {
		initial, _ = v.([]string)
	}
	in := &TagInput{
		draft:       draft,
		name:        name,
		set:         NewTagSet(initial),
		suggestions: append([]string(nil), suggestions...),
	}
	in.sync()
	return in
}

// Type updates the text being typed, capped at the tag length limit
func (in *TagInput) Type(text string) {
	in.typed = valueobject.TruncateRunes(text, FeatureMaxLength)
}

// Typed returns the text being typed
func (in *TagInput) Typed() string {
	return in.typed
}

// Add adds text as a tag and clears the typed text
func (in *TagInput) Add(text string) bool {
	added := in.set.Add(text)
	in.typed = ""
	in.sync()
	return added
}

// Remove deletes a tag
func (in *TagInput) Remove(text string) bool {
	removed := in.set.Remove(text)
	in.sync()
	return removed
}

// Press handles a key. Enter adds the typed text when it is not blank;
// Backspace on empty text removes the last tag. It reports whether the key
// was consumed.
func (in *TagInput) Press(k Key) bool {
	switch k {
	case KeyEnter:
		if strings.TrimSpace(in.typed) == "" {
			return false
		}
		in.Add(in.typed)
		return true
	case KeyBackspace:
		if in.typed != "" {
			return false
		}
		if _, ok := in.set.Pop(); !ok {
			return false
		}
		in.sync()
		return true
	}
	return false
}

// Tags returns the selected tags
func (in *TagInput) Tags() []string {
	return in.set.Items()
}

// Suggestions lists suggestions not yet selected whose text contains the
// typed text, ignoring case.
func (in *TagInput) Suggestions() []string {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(in.typed))

	out := make([]string, 0, len(in.suggestions))
	for _, s := range in.suggestions {
		if in.set.Contains(s) {
			continue
		}
		if query != "" && !strings.Contains(fold.String(s), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CustomOption returns the typed text when it can be added as a tag that is
// not one of the suggestions.
func (in *TagInput) CustomOption() (string, bool) {
	text := strings.TrimSpace(in.typed)
	if text == "" || in.set.Contains(text) {
		return "", false
	}
	for _, s := range in.suggestions {
		if s == text {
			return "", false
		}
	}
	return text, true
}

func (in *TagInput) sync() {
	in.draft.Set(in.name, in.set.Items())
}

// ParseSuggestions splits a comma-separated list, trimming blanks
func ParseSuggestions(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
