package rank

import "testing"

func TestDatasetBounds(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 2, 5},
		Labels:     []int{0, 1, 2, 0, 1},
	}

	if ds.NumQueries() != 2 {
		t.Errorf("NumQueries() = %d, want 2", ds.NumQueries())
	}
	if ds.NumDocs() != 5 {
		t.Errorf("NumDocs() = %d, want 5", ds.NumDocs())
	}
	if begin, end := ds.QueryBounds(0); begin != 0 || end != 2 {
		t.Errorf("QueryBounds(0) = (%d, %d), want (0, 2)", begin, end)
	}
	if ds.QuerySize(1) != 3 {
		t.Errorf("QuerySize(1) = %d, want 3", ds.QuerySize(1))
	}
	if ds.MaxDocsPerQuery() != 3 {
		t.Errorf("MaxDocsPerQuery() = %d, want 3", ds.MaxDocsPerQuery())
	}
}

func TestDatasetValidateOK(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 2, 5},
		Labels:     []int{0, 1, 2, 0, 1},
	}
	gain := DefaultGainTable(5)
	if err := ds.Validate(gain); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDatasetValidateRejectsBadFirstBoundary(t *testing.T) {
	ds := &Dataset{Boundaries: []int{1, 2}, Labels: []int{0}}
	if err := ds.Validate(DefaultGainTable(5)); err == nil {
		t.Fatal("expected error for boundaries[0] != 0")
	}
}

func TestDatasetValidateRejectsMismatchedTotal(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 2, 4}, Labels: []int{0, 1, 2}}
	if err := ds.Validate(DefaultGainTable(5)); err == nil {
		t.Fatal("expected error for boundaries[Q] != N")
	}
}

func TestDatasetValidateRejectsDecreasingBoundaries(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 3, 2, 3}, Labels: []int{0, 1, 2}}
	if err := ds.Validate(DefaultGainTable(5)); err == nil {
		t.Fatal("expected error for decreasing boundaries")
	}
}

func TestDatasetValidateRejectsOutOfRangeLabel(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 2}, Labels: []int{0, 99}}
	err := ds.Validate(DefaultGainTable(5))
	if err == nil {
		t.Fatal("expected error for out-of-range label")
	}
	var dataErr *DataError
	de, ok := err.(*DataError)
	if !ok {
		t.Fatalf("expected *DataError, got %T", err)
	}
	dataErr = de
	if dataErr.Doc != 1 {
		t.Errorf("DataError.Doc = %d, want 1", dataErr.Doc)
	}
}

func TestDatasetValidateRejectsMismatchedDupeIDs(t *testing.T) {
	ds := &Dataset{
		Boundaries: []int{0, 2},
		Labels:     []int{0, 1},
		DupeIDs:    []uint32{0},
	}
	if err := ds.Validate(DefaultGainTable(5)); err == nil {
		t.Fatal("expected error for mismatched dupe_ids length")
	}
}

func TestDatasetEmptyBoundaries(t *testing.T) {
	ds := &Dataset{}
	if ds.NumQueries() != 0 {
		t.Errorf("NumQueries() = %d, want 0", ds.NumQueries())
	}
	if err := ds.Validate(DefaultGainTable(5)); err == nil {
		t.Fatal("expected error for empty boundaries")
	}
}
