package changeset

import (
	"fmt"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

// FieldsFromRow encodes a full row as a column→value map (Create ops).
func FieldsFromRow(row model.TaskRow) map[string]string {
	cells := store.FormatRow(row)
	fields := make(map[string]string, len(store.Columns))
	for i, col := range store.Columns {
		fields[col] = cells[i]
	}
	return fields
}

// DiffFields returns only the columns whose value changes between the
// stored row and the proposed one (Update ops).
func DiffFields(existing, proposed model.TaskRow) map[string]string {
	oldCells := store.FormatRow(existing)
	newCells := store.FormatRow(proposed)

	fields := make(map[string]string)
	for i, col := range store.Columns {
		if oldCells[i] != newCells[i] {
			fields[col] = newCells[i]
		}
	}
	return fields
}

// ApplyTo lays the op's fields over a base row and re-parses the result,
// so malformed cell values (bad effort, unknown status) are rejected here
// rather than written to the sheet. For Create ops pass the zero TaskRow.
func (o Op) ApplyTo(base model.TaskRow) (model.TaskRow, error) {
	cells := store.FormatRow(base)
	for col, value := range o.Fields {
		idx := columnIndex(col)
		if idx < 0 {
			return model.TaskRow{}, fmt.Errorf("unknown column %q", col)
		}
		cells[idx] = value
	}
	return store.ParseRow(cells)
}

func columnIndex(col string) int {
	for i, c := range store.Columns {
		if c == col {
			return i
		}
	}
	return -1
}
