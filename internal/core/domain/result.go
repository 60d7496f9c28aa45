package domain

// ImportResult is the outcome of processing one record.
type ImportResult struct {
	// Record is the notification that was processed.
	Record ObjectRecord

	// Skipped is true when the record was not an object-creation event.
	Skipped bool

	// Query is the grouping query used to ensure the dataset.
	Query string

	// DatasetID is the dataset the file was imported into.
	DatasetID string

	// URI is the storage URI handed to the catalog.
	URI string

	// Err is the failure, if any.
	Err error
}

// Succeeded reports whether the record was imported.
func (r ImportResult) Succeeded() bool {
	return !r.Skipped && r.Err == nil
}

// BatchResult summarises a dispatched batch.
type BatchResult struct {
	// Received is the number of records in the batch.
	Received int

	// Processed is the number of records imported successfully.
	Processed int

	// Skipped is the number of non-creation records.
	Skipped int

	// Failed is the number of records that failed.
	Failed int

	// Results holds one entry per attempted record, in batch order.
	// Records after a fail-fast abort have no entry.
	Results []ImportResult
}

// Add records an outcome and updates the counters.
func (b *BatchResult) Add(r ImportResult) {
	b.Results = append(b.Results, r)
	switch {
	case r.Skipped:
		b.Skipped++
	case r.Err != nil:
		b.Failed++
	default:
		b.Processed++
	}
}

// Failures returns the failed results in batch order.
func (b *BatchResult) Failures() []ImportResult {
	var out []ImportResult
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
