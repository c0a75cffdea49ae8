package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopK_StableOnTies(t *testing.T) {
	recs := []Recommendation{
		{EmployeeID: "E1", RoleID: "R1", MatchScore: 1},
		{EmployeeID: "E1", RoleID: "R2", MatchScore: 3},
		{EmployeeID: "E1", RoleID: "R3", MatchScore: 1},
		{EmployeeID: "E1", RoleID: "R4", MatchScore: 3},
		{EmployeeID: "E1", RoleID: "R5", MatchScore: 0},
	}

	top := TopK(recs, 3)
	require.Len(t, top, 3)
	require.Equal(t, "R2", top[0].RoleID)
	require.Equal(t, "R4", top[1].RoleID)
	require.Equal(t, "R1", top[2].RoleID)

	require.Equal(t, "R1", recs[0].RoleID, "input must not be reordered")
}

func TestTopK_NonPositiveKReturnsAll(t *testing.T) {
	recs := []Recommendation{{RoleID: "R1"}, {RoleID: "R2", MatchScore: 2}}
	require.Len(t, TopK(recs, 0), 2)
	require.Len(t, TopK(recs, 10), 2)
}

func TestForEmployee(t *testing.T) {
	recs := []Recommendation{{EmployeeID: "E1", RoleID: "R1"}, {EmployeeID: "E2", RoleID: "R1"}, {EmployeeID: "E1", RoleID: "R2"}}
	got := ForEmployee(recs, "E1")
	require.Len(t, got, 2)
	require.Equal(t, "R2", got[1].RoleID)
}

func TestJoinSplitSkills(t *testing.T) {
	require.Equal(t, "SQL, Excel", JoinSkills([]string{"SQL", "Excel"}))
	require.Equal(t, "", JoinSkills(nil))
	require.Equal(t, []string{"SQL", "Excel"}, SplitSkills("SQL, Excel"))
	require.Empty(t, SplitSkills(""))
}
