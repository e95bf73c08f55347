package entity

// LinkedRecord is a record attached to a patient through a relation field.
// Only Id is guaranteed; the other keys are the linked table's columns.
type LinkedRecord map[string]any

func (r LinkedRecord) ID() int64 {
	switch v := r["Id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
