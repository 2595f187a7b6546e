package job

// Failure records one failed batch item.
type Failure struct {
	Source  string
	Message string
}

// Report accumulates per-item outcomes for a batch run.
type Report struct {
	Attempted int
	Succeeded int
	Failed    int
	Failures  []Failure
}

// RecordSuccess counts one completed item.
func (r *Report) RecordSuccess() {
	r.Attempted++
	r.Succeeded++
}

// RecordFailure counts one failed item and keeps its error record.
func (r *Report) RecordFailure(source string, err error) {
	r.Attempted++
	r.Failed++
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.Failures = append(r.Failures, Failure{Source: source, Message: msg})
}
