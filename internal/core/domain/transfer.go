package domain

type RowError struct {
	Line   int
	Reason string
}

// ImportReport summarizes one CSV import. Failed counts every row that was
// skipped during validation or rejected on creation.
type ImportReport struct {
	Imported int
	Failed   int
	Errors   []RowError
}

func (r *ImportReport) Succeeded() {
	r.Imported++
}

func (r *ImportReport) Fail(line int, reason string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Line: line, Reason: reason})
}
