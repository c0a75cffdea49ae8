package learningpath

import (
	"bytes"
	"encoding/json"
	"fmt"

	"role-match/internal/domain/match"
)

const DefaultPlaceholder = "No resource found (add manually)"

// Catalog maps a skill name to its curated, ordered resource URLs.
type Catalog map[string][]string

type Step struct {
	Skill     string
	Resources []string
}

// Roadmap keeps steps in missing-skill order and encodes as a JSON object.
type Roadmap []Step

type Entry struct {
	EmployeeID   string  `json:"employee_id"`
	RoleID       string  `json:"role_id"`
	MatchScore   int     `json:"match_score"`
	LearningPath Roadmap `json:"learning_path"`
}

type Annotator struct {
	catalog     Catalog
	placeholder string
}

func NewAnnotator(catalog Catalog, placeholder string) *Annotator {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	c := make(Catalog, len(catalog))
	for k, v := range catalog {
		c[k] = append([]string(nil), v...)
	}
	return &Annotator{catalog: c, placeholder: placeholder}
}

func (a *Annotator) Annotate(rec match.Recommendation) Entry {
	return Entry{
		EmployeeID:   rec.EmployeeID,
		RoleID:       rec.RoleID,
		MatchScore:   rec.MatchScore,
		LearningPath: a.Roadmap(rec.MissingSkills),
	}
}

func (a *Annotator) Roadmap(missing []string) Roadmap {
	out := make(Roadmap, 0, len(missing))
	for _, s := range missing {
		out = append(out, Step{Skill: s, Resources: a.Resources(s)})
	}
	return out
}

// Resources returns a copy of the catalogued list, or the placeholder.
func (a *Annotator) Resources(skillName string) []string {
	if urls, ok := a.catalog[skillName]; ok {
		return append([]string(nil), urls...)
	}
	return []string{a.placeholder}
}

func (a *Annotator) Catalogued(skillName string) bool {
	_, ok := a.catalog[skillName]
	return ok
}

func (r Roadmap) Skills() []string {
	out := make([]string, 0, len(r))
	for _, s := range r {
		out = append(out, s.Skill)
	}
	return out
}

func (r Roadmap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(s.Skill)
		if err != nil {
			return nil, err
		}
		res := s.Resources
		if res == nil {
			res = []string{}
		}
		v, err := json.Marshal(res)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Roadmap) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("learning path: expected object, got %v", tok)
	}

	out := make(Roadmap, 0)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("learning path: expected key, got %v", kt)
		}
		var urls []string
		if err := dec.Decode(&urls); err != nil {
			return err
		}
		out = append(out, Step{Skill: key, Resources: urls})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}
