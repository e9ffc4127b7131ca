package domain

// RowOutcome records what happened to a single data row during parsing
type RowOutcome struct {
	Line   int    `json:"line"`
	Kept   bool   `json:"kept"`
	Reason string `json:"reason,omitempty"`
}

// ParseReport is the result of reading a seat dataset
type ParseReport struct {
	Records []SeatRecord `json:"records"`
	Rows    []RowOutcome `json:"rows"`
}

// Dropped returns the outcomes of rows that did not produce a record
func (p *ParseReport) Dropped() []RowOutcome {
	if p == nil {
		return nil
	}
	var dropped []RowOutcome
	for _, row := range p.Rows {
		if !row.Kept {
			dropped = append(dropped, row)
		}
	}
	return dropped
}

// DroppedCount returns the number of rows that did not produce a record
func (p *ParseReport) DroppedCount() int {
	return len(p.Dropped())
}
