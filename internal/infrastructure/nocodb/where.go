package nocodb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsafeFilterValue is returned when a value would be read by the store
// as filter syntax instead of a literal.
var ErrUnsafeFilterValue = errors.New("nocodb: filter value contains reserved characters")

// The where grammar has no escaping, so these can never appear in a value.
const reservedFilterChars = "(),~"

// Condition is a single (field,op,value) filter term.
type Condition struct {
	Field string
	Op    string
	Value string
}

func Eq(field, value string) Condition {
	return Condition{Field: field, Op: "eq", Value: value}
}

func EqInt(field string, value int64) Condition {
	return Eq(field, strconv.FormatInt(value, 10))
}

// SafeValue reports whether v can be sent as a literal filter value.
func SafeValue(v string) bool {
	return !strings.ContainsAny(v, reservedFilterChars)
}

// Where joins conditions with ~and. Empty values are skipped so optional
// filters can be passed unconditionally. A value holding reserved characters
// fails the whole expression rather than being sent half-parsed.
func Where(conds ...Condition) (string, error) {
	terms := make([]string, 0, len(conds))
	for _, c := range conds {
		if c.Value == "" {
			continue
		}
		if !SafeValue(c.Value) {
			return "", fmt.Errorf("%w: field %s", ErrUnsafeFilterValue, c.Field)
		}
		terms = append(terms, "("+c.Field+","+c.Op+","+c.Value+")")
	}
	return strings.Join(terms, "~and"), nil
}
