package types

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var numericScore = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// Score is either a number of games won or a marker such as "W" or "FF".
// Non-numeric scores keep their text.
type Score struct {
	Numeric bool
	Value   float64
	Text    string
}

// NumberScore creates a numeric score
func NumberScore(v float64) *Score {
	return &Score{Numeric: true, Value: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// TextScore creates a non-numeric score
func TextScore(text string) *Score {
	return &Score{Text: text}
}

// ParseScore reads a score from cell text. Fully numeric text becomes a
// number, anything else is kept as is; empty text is no score at all.
func ParseScore(text string) *Score {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if numericScore.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return NumberScore(v)
		}
	}
	return TextScore(trimmed)
}

// NumericScore reads a score that is only kept when numeric
func NumericScore(text string) *Score {
	s := ParseScore(text)
	if s == nil || !s.Numeric {
		return nil
	}
	return s
}

func (s Score) String() string {
	return s.Text
}

// MarshalJSON writes numeric scores as numbers and the rest as strings
func (s Score) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return json.Marshal(s.Value)
	}
	return json.Marshal(s.Text)
}

// UnmarshalJSON accepts either form
func (s *Score) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*s = *NumberScore(v)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = Score{Text: text}
	return nil
}
