// Package banks holds the static bank-name to bank-code lookup table
// required by the payment API. The table is built once at startup and
// never mutated.
package banks

// Entry is a single bank-name to bank-code mapping
type Entry struct {
	Name string
	Code string
}

// Table is an immutable bank-code lookup table
type Table struct {
	byName map[string]string
}

// NewTable builds a lookup table from entries
func NewTable(entries []Entry) *Table {
	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Code
	}
	return &Table{byName: byName}
}

// Lookup resolves a bank code by exact bank-name match
func (t *Table) Lookup(bankName string) (string, bool) {
	code, ok := t.byName[bankName]
	return code, ok
}

// Len returns the number of entries in the table
func (t *Table) Len() int {
	return len(t.byName)
}

var defaultTable = NewTable(entries)

// Default returns the process-wide lookup table
func Default() *Table {
	return defaultTable
}
