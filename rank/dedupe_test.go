package rank

import (
	"math"
	"testing"
)

func TestSuppressDuplicatesKeepsFirstBestRank(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 3},
		Labels:     []int{2, 2, 1},
		DupeIDs:    []uint32{firstGroupID, firstGroupID, DupeNoInfo},
	}
	labelsView := []int{2, 2, 1}
	scoresView := []float64{0.9, 0.8, 0.5}
	perm := []int{0, 1, 2} // already rank order: doc0, doc1, doc2

	if err := suppressDuplicates(ds, 0, 0, 3, perm, labelsView, scoresView); err != nil {
		t.Fatalf("suppressDuplicates: %v", err)
	}

	if labelsView[0] != 2 || scoresView[0] != 0.9 {
		t.Errorf("first-ranked duplicate must be left alone, got label=%d score=%v", labelsView[0], scoresView[0])
	}
	if labelsView[1] != 0 || !math.IsInf(scoresView[1], -1) {
		t.Errorf("later duplicate must be neutralised, got label=%d score=%v", labelsView[1], scoresView[1])
	}
	if labelsView[2] != 1 {
		t.Errorf("non-duplicate document must be untouched, got label=%d", labelsView[2])
	}
}

func TestSuppressDuplicatesIgnoresSentinels(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 2},
		Labels:     []int{2, 1},
		DupeIDs:    []uint32{DupeNoInfo, DupeUnique},
	}
	labelsView := []int{2, 1}
	scoresView := []float64{0.9, 0.5}
	perm := []int{0, 1}

	if err := suppressDuplicates(ds, 0, 0, 2, perm, labelsView, scoresView); err != nil {
		t.Fatalf("suppressDuplicates: %v", err)
	}
	if labelsView[0] != 2 || labelsView[1] != 1 {
		t.Errorf("sentinel dupe_ids must never trigger suppression, got labels %v", labelsView)
	}
}

func TestSuppressDuplicatesRejectsGroupIndexOutOfRange(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 2},
		Labels:     []int{2, 1},
		DupeIDs:    []uint32{firstGroupID + 50, firstGroupID + 50},
	}
	labelsView := []int{2, 1}
	scoresView := []float64{0.9, 0.5}
	perm := []int{0, 1}

	err := suppressDuplicates(ds, 0, 0, 2, perm, labelsView, scoresView)
	if err == nil {
		t.Fatal("expected a DataError for a group index outside [0, n)")
	}
}
