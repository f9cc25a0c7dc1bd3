package league

import "testing"

func TestRankStandings_DescendingByPoints(t *testing.T) {
	t.Parallel()

	input := []Standing{
		{ID: 1, Name: "ana", TotalPoints: 10},
		{ID: 2, Name: "ben", TotalPoints: 25},
		{ID: 3, Name: "cal", TotalPoints: 18},
	}

	got := RankStandings(input)
	wantPoints := []int{25, 18, 10}
	for i, row := range got {
		if row.TotalPoints != wantPoints[i] {
			t.Fatalf("row %d: got points=%d want=%d", i, row.TotalPoints, wantPoints[i])
		}
		if row.Rank != i+1 {
			t.Fatalf("row %d: got rank=%d want=%d", i, row.Rank, i+1)
		}
	}
	if input[0].TotalPoints != 10 {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestRankStandings_TiesKeepServerOrder(t *testing.T) {
	t.Parallel()

	got := RankStandings([]Standing{
		{ID: 7, TotalPoints: 5},
		{ID: 8, TotalPoints: 9},
		{ID: 9, TotalPoints: 5},
	})
	if got[1].ID != 7 || got[2].ID != 9 {
		t.Fatalf("expected stable order for ties, got ids %d,%d", got[1].ID, got[2].ID)
	}
	if got[2].Rank != 3 {
		t.Fatalf("rank is positional, got %d", got[2].Rank)
	}
}

func TestComputeAccuracy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := ComputeAccuracy(tc.correct, tc.total); got != tc.want {
			t.Fatalf("ComputeAccuracy(%d,%d)=%d want=%d", tc.correct, tc.total, got, tc.want)
		}
	}
}
