package quarry

import (
	"strconv"
	"strings"
)

// InjectParameters splices bind values into rendered SQL as inline
// literals, producing the statement a driver would effectively execute.
// Debugging aid only; the result must never be sent to a database, since
// literal splicing undoes the protection placeholders exist for.
func InjectParameters(sql string, values Values, qb QueryBuilder) string {
	ph, numbered := qb.Placeholder()
	tokens := Tokenize(sql)
	var sb strings.Builder
	next := 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind != TokenPunctuation || t.Text != ph {
			sb.WriteString(t.Text)
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Kind == TokenPunctuation && tokens[i+1].Text == ph {
			sb.WriteString(ph)
			i++
			continue
		}
		if numbered {
			if i+1 < len(tokens) && tokens[i+1].Kind == TokenUnquoted && allDigits(tokens[i+1].Text) {
				n, _ := strconv.Atoi(tokens[i+1].Text)
				if n >= 1 && n <= len(values) {
					sb.WriteString(qb.ValueToString(values[n-1]))
					i++
					continue
				}
			}
			sb.WriteString(t.Text)
			continue
		}
		if next < len(values) {
			sb.WriteString(qb.ValueToString(values[next]))
			next++
		} else {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}
