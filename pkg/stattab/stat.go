package stattab

import "fmt"

// InfoKey is the reserved row key carrying free-text lines printed
// below the row. Its value may be a string or a []string.
const InfoKey = "info"

// Row is caller input: header key to value. Values are converted to
// display text once, when the row is stored.
type Row map[string]any

// Stat is one stored row: display strings in column order plus any
// accumulated info lines. Stored stats are immutable except through
// Collector.Update, which replaces the most recent one.
type Stat struct {
	values []string
	info   []string
}

// Values returns the row's display strings in column order
func (s *Stat) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Info returns the row's accumulated info lines
func (s *Stat) Info() []string {
	out := make([]string, len(s.info))
	copy(out, s.info)
	return out
}

// clone returns a copy Update can safely overlay
func (s *Stat) clone() *Stat {
	c := &Stat{
		values: make([]string, len(s.values)),
		info:   make([]string, len(s.info)),
	}
	copy(c.values, s.values)
	copy(c.info, s.info)
	return c
}

// displayText converts a value to its printed form. Widths are computed
// on the resulting string's character count.
func displayText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// popInfo extracts the reserved info entry from a row, accepting a
// single line or a list of lines
func popInfo(row Row) []string {
	raw, ok := row[InfoKey]
	if !ok {
		return nil
	}
	delete(row, InfoKey)
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		var lines []string
		for _, line := range v {
			if line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	case []any:
		var lines []string
		for _, item := range v {
			if line := displayText(item); line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	default:
		return []string{displayText(v)}
	}
}
