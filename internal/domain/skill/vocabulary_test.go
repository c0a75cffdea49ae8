package skill

import (
	"errors"
	"testing"

	"role-match/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestNormalize_SortsDedupesAndAssignsDenseIDs(t *testing.T) {
	v, err := Normalize([]string{"SQL, Excel", " Excel ,Tableau,, ", "SQL"}, "")
	require.NoError(t, err)

	require.Equal(t, []Skill{
		{ID: 1, Name: "Excel"},
		{ID: 2, Name: "SQL"},
		{ID: 3, Name: "Tableau"},
	}, v.Skills())
}

func TestNormalize_Deterministic(t *testing.T) {
	a, err := Normalize([]string{"Go, SQL", "Docker", "AWS, Go"}, DefaultBaseline)
	require.NoError(t, err)
	b, err := Normalize([]string{"AWS, Go", "Docker", "Go, SQL"}, DefaultBaseline)
	require.NoError(t, err)

	require.Equal(t, a.Skills(), b.Skills())
}

func TestNormalize_AppendsBaselineLast(t *testing.T) {
	v, err := Normalize([]string{"Zig, Ada"}, "Python")
	require.NoError(t, err)

	skills := v.Skills()
	require.Len(t, skills, 3)
	require.Equal(t, Skill{ID: 3, Name: "Python"}, skills[2])

	id, ok := v.Lookup("Python")
	require.True(t, ok)
	require.Equal(t, ID(3), id)
}

func TestNormalize_BaselineAlreadyPresentKeepsSortedPosition(t *testing.T) {
	v, err := Normalize([]string{"SQL, Python, Excel"}, "Python")
	require.NoError(t, err)

	require.Equal(t, []Skill{
		{ID: 1, Name: "Excel"},
		{ID: 2, Name: "Python"},
		{ID: 3, Name: "SQL"},
	}, v.Skills())
}

func TestNormalize_EmptySourceStillHasBaseline(t *testing.T) {
	v, err := Normalize([]string{}, "Python")
	require.NoError(t, err)
	require.Equal(t, []Skill{{ID: 1, Name: "Python"}}, v.Skills())
}

func TestNormalize_MissingSource(t *testing.T) {
	v, err := Normalize(nil, "Python")
	require.Nil(t, v)
	require.True(t, errors.Is(err, domain.ErrMissingInput))
}

func TestNormalize_CaseSensitiveTokens(t *testing.T) {
	v, err := Normalize([]string{"sql, SQL"}, "")
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())
}

func TestNewVocabulary_RejectsDuplicates(t *testing.T) {
	_, err := NewVocabulary([]Skill{{ID: 1, Name: "Go"}, {ID: 1, Name: "Rust"}})
	require.ErrorIs(t, err, domain.ErrSchema)

	_, err = NewVocabulary([]Skill{{ID: 1, Name: "Go"}, {ID: 2, Name: " Go "}})
	require.ErrorIs(t, err, domain.ErrSchema)

	_, err = NewVocabulary([]Skill{{ID: 1, Name: "  "}})
	require.ErrorIs(t, err, domain.ErrSchema)
}

func TestVocabulary_NamesDropsUnknownIDs(t *testing.T) {
	v, err := NewVocabulary([]Skill{{ID: 1, Name: "SQL"}, {ID: 2, Name: "Excel"}})
	require.NoError(t, err)

	names, unresolved := v.Names(NewSet(2, 99, 1, 2))
	require.Equal(t, []string{"Excel", "SQL"}, names)
	require.Equal(t, 1, unresolved)
}

func TestVocabulary_SetFromBlob(t *testing.T) {
	v, err := Normalize([]string{"SQL, Excel, Python"}, "Python")
	require.NoError(t, err)

	s := v.SetFromBlob("Excel, Excel , Unknown, SQL")
	names, _ := v.Names(s)
	require.Equal(t, []string{"Excel", "SQL"}, names)

	require.Equal(t, 0, v.SetFromBlob("").Len())
}

func TestSet_AddKeepsInsertionOrder(t *testing.T) {
	s := NewSet(3, 1, 3, 2)
	require.Equal(t, []ID{3, 1, 2}, s.IDs())
	require.True(t, s.Has(1))
	require.False(t, s.Has(4))
	require.False(t, s.Add(1))
}
