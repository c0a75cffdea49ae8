package skill

import (
	"fmt"
	"sort"
	"strings"

	"role-match/internal/domain"
)

const DefaultBaseline = "Python"

// Vocabulary is the read-only arena of canonical skills. Ids index into it.
type Vocabulary struct {
	skills []Skill
	byID   map[ID]int
	byName map[string]ID
}

// Normalize builds a vocabulary from comma-separated skill blobs.
//
// Tokens are trimmed, blanks dropped, duplicates collapsed and the result
// sorted before ids 1..N are assigned, so the numbering depends only on the
// token set. A baseline missing from the tokens is appended as N+1.
// A nil blobs slice means the source was absent and yields ErrMissingInput.
func Normalize(blobs []string, baseline string) (*Vocabulary, error) {
	if blobs == nil {
		return nil, fmt.Errorf("%w: skill blobs", domain.ErrMissingInput)
	}

	seen := map[string]struct{}{}
	names := make([]string, 0)
	for _, b := range blobs {
		for _, tok := range SplitBlob(b) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			names = append(names, tok)
		}
	}
	sort.Strings(names)

	baseline = strings.TrimSpace(baseline)
	if baseline != "" {
		if _, ok := seen[baseline]; !ok {
			names = append(names, baseline)
		}
	}

	skills := make([]Skill, 0, len(names))
	for i, n := range names {
		skills = append(skills, Skill{ID: ID(i + 1), Name: n})
	}
	return NewVocabulary(skills)
}

// NewVocabulary wraps an existing skill table, e.g. one read back from storage.
func NewVocabulary(skills []Skill) (*Vocabulary, error) {
	v := &Vocabulary{
		skills: make([]Skill, 0, len(skills)),
		byID:   make(map[ID]int, len(skills)),
		byName: make(map[string]ID, len(skills)),
	}
	for _, s := range skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty skill name for id %d", domain.ErrSchema, s.ID)
		}
		if _, ok := v.byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate skill id %d", domain.ErrSchema, s.ID)
		}
		if _, ok := v.byName[name]; ok {
			return nil, fmt.Errorf("%w: duplicate skill name %q", domain.ErrSchema, name)
		}
		v.byID[s.ID] = len(v.skills)
		v.byName[name] = s.ID
		v.skills = append(v.skills, Skill{ID: s.ID, Name: name})
	}
	return v, nil
}

// SplitBlob splits a free-text skill list into trimmed, non-blank tokens.
func SplitBlob(blob string) []string {
	parts := strings.Split(blob, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.skills)
}

// Skills returns a copy ordered by id assignment.
func (v *Vocabulary) Skills() []Skill {
	if v == nil {
		return nil
	}
	out := make([]Skill, len(v.skills))
	copy(out, v.skills)
	return out
}

func (v *Vocabulary) Name(id ID) (string, bool) {
	if v == nil {
		return "", false
	}
	i, ok := v.byID[id]
	if !ok {
		return "", false
	}
	return v.skills[i].Name, true
}

func (v *Vocabulary) Lookup(name string) (ID, bool) {
	if v == nil {
		return 0, false
	}
	id, ok := v.byName[strings.TrimSpace(name)]
	return id, ok
}

// Names resolves a set to distinct names in set order. Ids absent from the
// vocabulary are skipped; the second result counts them.
func (v *Vocabulary) Names(s Set) ([]string, int) {
	out := make([]string, 0, s.Len())
	seen := make(map[string]struct{}, s.Len())
	unresolved := 0
	for _, id := range s.ids {
		name, ok := v.Name(id)
		if !ok {
			unresolved++
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, unresolved
}

// SetFromBlob resolves a skill blob to ids, deduplicated by name. Tokens
// unknown to the vocabulary are dropped.
func (v *Vocabulary) SetFromBlob(blob string) Set {
	s := NewSet()
	for _, tok := range SplitBlob(blob) {
		id, ok := v.Lookup(tok)
		if !ok {
			continue
		}
		s.Add(id)
	}
	return s
}
