package rank

// Duplicate-id sentinels (spec.md §3, §4.4, §9 "Duplicate-id sentinel
// constants"). Any value >= firstGroupID denotes a duplicate-group id
// local to the query; the overlap with DupeUnique is safe because real
// groups start at 2.
const (
	DupeNoInfo      uint32 = 0
	DupeUnique      uint32 = 1
	DupeUnsupported uint32 = 1_000_000
	DupeNotFound    uint32 = 1_000_001
	firstGroupID    uint32 = 2
)

func isDupeSentinel(id uint32) bool {
	return id == DupeNoInfo || id == DupeUnique || id == DupeUnsupported || id == DupeNotFound
}

// Dataset is the read-only query-grouped feature/label corpus the
// objective trains against (spec.md §3).
type Dataset struct {
	// Boundaries has length NumQueries()+1; query q owns documents in
	// [Boundaries[q], Boundaries[q+1]).
	Boundaries []int
	// Labels holds one small non-negative relevance grade per document.
	Labels []int
	// DupeIDs is optional; when present it has length NumDocs().
	DupeIDs []uint32
}

// NumQueries returns Q.
func (d *Dataset) NumQueries() int {
	if len(d.Boundaries) == 0 {
		return 0
	}
	return len(d.Boundaries) - 1
}

// NumDocs returns N.
func (d *Dataset) NumDocs() int {
	return len(d.Labels)
}

// QueryBounds returns the [begin, end) document range owned by query q.
func (d *Dataset) QueryBounds(q int) (begin, end int) {
	return d.Boundaries[q], d.Boundaries[q+1]
}

// QuerySize returns the number of documents owned by query q.
func (d *Dataset) QuerySize(q int) int {
	begin, end := d.QueryBounds(q)
	return end - begin
}

// MaxDocsPerQuery returns M, the largest per-query document count.
func (d *Dataset) MaxDocsPerQuery() int {
	m := 0
	for q := 0; q < d.NumQueries(); q++ {
		if n := d.QuerySize(q); n > m {
			m = n
		}
	}
	return m
}

// Validate checks the dataset invariants from spec.md §3 before any DCG
// table is built. It returns *DataError for the first violation found.
func (d *Dataset) Validate(gain *GainTable) error {
	if len(d.Boundaries) == 0 {
		return newDataError(-1, -1, "boundaries is empty")
	}
	if d.Boundaries[0] != 0 {
		return newDataError(0, -1, "boundaries[0] = %d, want 0", d.Boundaries[0])
	}
	n := d.NumDocs()
	if d.Boundaries[len(d.Boundaries)-1] != n {
		return newDataError(d.NumQueries(), -1, "boundaries[Q] = %d, want N = %d", d.Boundaries[len(d.Boundaries)-1], n)
	}
	for q := 0; q < d.NumQueries(); q++ {
		if d.Boundaries[q+1] < d.Boundaries[q] {
			return newDataError(q, -1, "boundaries not non-decreasing at query %d", q)
		}
	}
	for i, label := range d.Labels {
		if label < 0 || label >= gain.Len() {
			return newDataError(d.queryOf(i), i, "label %d out of range [0, %d)", label, gain.Len())
		}
	}
	if d.DupeIDs != nil && len(d.DupeIDs) != n {
		return newDataError(-1, -1, "dupe_ids length %d does not match num_docs %d", len(d.DupeIDs), n)
	}
	return nil
}

// queryOf returns the query owning document doc, or -1 if none does. Used
// only for error context; the boosting driver hot path never calls it.
func (d *Dataset) queryOf(doc int) int {
	for q := 0; q < d.NumQueries(); q++ {
		begin, end := d.QueryBounds(q)
		if doc >= begin && doc < end {
			return q
		}
	}
	return -1
}
