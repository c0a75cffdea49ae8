package skill

type ID int

type Skill struct {
	ID   ID
	Name string
}

// Set is an insertion-ordered collection of distinct skill ids.
type Set struct {
	ids   []ID
	index map[ID]struct{}
}

func NewSet(ids ...ID) Set {
	s := Set{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Set) Add(id ID) bool {
	if s.index == nil {
		s.index = make(map[ID]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s Set) Has(id ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns a copy in insertion order.
func (s Set) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}
