package domain

import (
	"fmt"
	"strings"
)

// TombstoneSuffix marks deleted rows in history files written by older versions.
const TombstoneSuffix = " DELETED"

// Record is one calculation entry in the ledger.
type Record struct {
	A         string    `json:"a"`
	B         string    `json:"b"`
	Operation Operation `json:"operation"`
	Result    string    `json:"result"`
	Deleted   bool      `json:"deleted,omitempty"`
}

// String renders the record as "<a> <op> <b> = <result>".
func (r Record) String() string {
	return fmt.Sprintf("%s %s %s = %s", r.A, r.Operation, r.B, r.Result)
}

// Tombstoned returns a copy of r marked as deleted.
func (r Record) Tombstoned() Record {
	r.Deleted = true
	return r
}

// ParseRecord decodes the rendered form produced by String. A trailing
// TombstoneSuffix is decoded into Deleted.
func ParseRecord(text string) (Record, error) {
	text = strings.TrimSpace(text)
	var rec Record
	if strings.HasSuffix(text, TombstoneSuffix) {
		rec.Deleted = true
		text = strings.TrimSpace(strings.TrimSuffix(text, TombstoneSuffix))
	}

	lhs, result, found := strings.Cut(text, " = ")
	if !found {
		return Record{}, fmt.Errorf("malformed record %q: missing result", text)
	}
	fields := strings.Fields(lhs)
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("malformed record %q: want \"<a> <op> <b>\"", text)
	}
	op, err := ParseOperation(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("malformed record %q: %w", text, err)
	}
	rec.A = fields[0]
	rec.Operation = op
	rec.B = fields[2]
	rec.Result = strings.TrimSpace(result)
	if rec.Result == "" {
		return Record{}, fmt.Errorf("malformed record %q: empty result", text)
	}
	return rec, nil
}

// ActiveRecords filters out tombstoned records, preserving order.
func ActiveRecords(records []Record) []Record {
	active := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Deleted {
			continue
		}
		active = append(active, rec)
	}
	return active
}
