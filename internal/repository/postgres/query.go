package postgres

import (
	"fmt"
	"strings"
	"time"
)

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

// add appends a condition; expr must contain one %d for the placeholder index.
func (w *where) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(expr, len(w.args)))
}

// addIf appends the condition only when arg is non-empty.
func (w *where) addIf(expr, arg string) {
	if arg != "" {
		w.add(expr, arg)
	}
}

// raw appends a condition without an argument.
func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// day formats t as a DATE literal.
func day(t time.Time) string {
	return t.Format("2006-01-02")
}

// dateText renders a nullable DATE column as YYYY-MM-DD or ''.
func dateText(col string) string {
	return "COALESCE(to_char(" + col + ", 'YYYY-MM-DD'), '')"
}
