package rank

import (
	"reflect"
	"testing"
)

func TestPermutationSortByScore(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.5}
	labels := []int{0, 0, 0}
	perm := []int{0, 1, 2}
	PermutationSort(perm, scores, labels, 3, 0)
	want := []int{1, 2, 0}
	if !reflect.DeepEqual(perm, want) {
		t.Errorf("perm = %v, want %v (descending score order)", perm, want)
	}
}

func TestPermutationSortTieBreaksOnLabelAscending(t *testing.T) {
	scores := []float64{1.0, 1.0, 1.0}
	labels := []int{2, 0, 1}
	perm := []int{0, 1, 2}
	PermutationSort(perm, scores, labels, 3, 0)
	want := []int{1, 2, 0} // labels 0,1,2 ascending among equal scores
	if !reflect.DeepEqual(perm, want) {
		t.Errorf("perm = %v, want %v (ascending label on score ties)", perm, want)
	}
}

func TestPermutationSortTieBreaksOnIndexAscending(t *testing.T) {
	scores := []float64{1.0, 1.0, 1.0}
	labels := []int{0, 0, 0}
	perm := []int{0, 1, 2}
	PermutationSort(perm, scores, labels, 3, 0)
	want := []int{0, 1, 2}
	if !reflect.DeepEqual(perm, want) {
		t.Errorf("perm = %v, want %v (stable index order on full ties)", perm, want)
	}
}

func TestPermutationSortRespectsBase(t *testing.T) {
	scores := []float64{99, 0.1, 0.9, 0.5}
	labels := []int{0, 0, 0, 0}
	perm := []int{0, 1, 2}
	PermutationSort(perm, scores, labels, 3, 1)
	want := []int{1, 2, 0}
	if !reflect.DeepEqual(perm, want) {
		t.Errorf("perm = %v, want %v (base offset applied to score/label lookups)", perm, want)
	}
}
