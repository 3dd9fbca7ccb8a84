package models

import "strings"

// AnswerValue is the typed form of an answer. Text-like questions carry a
// single string; checkbox questions carry the selected options. The
// comma-joined string exists only at the storage/wire boundary: Encode and
// ParseAnswerValue are the sole places that join or split it.
type AnswerValue struct {
	Type       string
	Text       string
	Selections []string
}

// ParseAnswerValue decodes the wire/storage encoding for a question type.
func ParseAnswerValue(questionType, raw string) AnswerValue {
	if questionType == QuestionCheckbox {
		return AnswerValue{Type: questionType, Selections: splitSelections(raw)}
	}
	return AnswerValue{Type: questionType, Text: raw}
}

// Encode renders the storage encoding: selections comma-joined for checkbox
// questions, the plain text otherwise.
func (v AnswerValue) Encode() string {
	if v.Type == QuestionCheckbox {
		return strings.Join(v.Selections, ",")
	}
	return v.Text
}

// IsEmpty reports whether the answer carries no content.
func (v AnswerValue) IsEmpty() bool {
	if v.Type == QuestionCheckbox {
		return len(v.Selections) == 0
	}
	return strings.TrimSpace(v.Text) == ""
}

func splitSelections(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
