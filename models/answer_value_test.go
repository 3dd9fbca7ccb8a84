package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnswerValueText(t *testing.T) {
	v := ParseAnswerValue(QuestionShort, "Sam")
	assert.Equal(t, "Sam", v.Text)
	assert.Empty(t, v.Selections)
	assert.Equal(t, "Sam", v.Encode())
}

func TestParseAnswerValueCheckbox(t *testing.T) {
	v := ParseAnswerValue(QuestionCheckbox, "A,B")
	assert.Equal(t, []string{"A", "B"}, v.Selections)
	assert.Equal(t, "A,B", v.Encode())
}

func TestParseAnswerValueCheckboxNormalizesWhitespace(t *testing.T) {
	v := ParseAnswerValue(QuestionCheckbox, " A , B ,")
	assert.Equal(t, []string{"A", "B"}, v.Selections)
	assert.Equal(t, "A,B", v.Encode())
}

func TestAnswerValueIsEmpty(t *testing.T) {
	assert.True(t, ParseAnswerValue(QuestionShort, "   ").IsEmpty())
	assert.True(t, ParseAnswerValue(QuestionCheckbox, "").IsEmpty())
	assert.False(t, ParseAnswerValue(QuestionCheckbox, "A").IsEmpty())
	assert.False(t, ParseAnswerValue(QuestionLong, "text").IsEmpty())
}

func TestIsChoice(t *testing.T) {
	assert.True(t, IsChoice(QuestionMultiple))
	assert.True(t, IsChoice(QuestionDropdown))
	assert.True(t, IsChoice(QuestionCheckbox))
	assert.False(t, IsChoice(QuestionShort))
	assert.False(t, IsChoice(QuestionLong))
}
