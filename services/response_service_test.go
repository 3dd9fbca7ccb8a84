package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formworks/formbuilder-server/models"
)

func TestSubmitCreatesResponseWithAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Name", Required: true},
		QuestionInput{Type: models.QuestionCheckbox, Title: "Topics", Options: []string{"A", "B"}},
	)

	response, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: form.Questions[0].ID, Value: "Sam"},
		{QuestionID: form.Questions[1].ID, Value: "A,B"},
	})
	require.NoError(t, err)

	assert.Equal(t, "u@x.com", response.Email)
	assert.Equal(t, form.ID, response.FormID)
	require.Len(t, response.Answers, 2)

	values := answersByQuestion(response.Answers)
	assert.Equal(t, "Sam", values[form.Questions[0].ID])
	assert.Equal(t, "A,B", values[form.Questions[1].ID])
}

func TestSubmitTwiceIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Name"},
	)
	qID := form.Questions[0].ID

	_, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{{QuestionID: qID, Value: "first"}})
	require.NoError(t, err)

	_, err = svc.Submit(form.ID, "u@x.com", []AnswerInput{{QuestionID: qID, Value: "second"}})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// Exactly one stored response, still carrying the first answers.
	var count int64
	require.NoError(t, db.Model(&models.Response{}).Where("form_id = ?", form.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := svc.GetByEmail(form.ID, "u@x.com")
	require.NoError(t, err)
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, "first", stored.Answers[0].Value)
}

func TestSubmitDifferentEmailsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Name"},
	)
	qID := form.Questions[0].ID

	_, err := svc.Submit(form.ID, "a@x.com", []AnswerInput{{QuestionID: qID, Value: "a"}})
	require.NoError(t, err)
	_, err = svc.Submit(form.ID, "b@x.com", []AnswerInput{{QuestionID: qID, Value: "b"}})
	require.NoError(t, err)

	responses, err := svc.List(form.ID)
	require.NoError(t, err)
	assert.Len(t, responses, 2)
}

func TestSubmitInactiveFormRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db)
	inactive := false
	_, err := NewFormService(db).Update(form.ID, UpdateFormInput{Title: form.Title, IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Submit(form.ID, "u@x.com", nil)
	assert.ErrorIs(t, err, ErrFormInactive)

	_, err = svc.Update(form.ID, "u@x.com", nil)
	assert.ErrorIs(t, err, ErrFormInactive)
}

func TestSubmitEmailDomainGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, []string{"college.edu"})

	form := createTestForm(t, db)

	_, err := svc.Submit(form.ID, "outsider@gmail.com", nil)
	assert.ErrorIs(t, err, ErrEmailNotAllowed)

	_, err = svc.Submit(form.ID, "student@college.edu", nil)
	assert.NoError(t, err)

	_, err = svc.Submit(form.ID, "not-an-email", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitFormNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewResponseService(db, nil).Submit("missing", "u@x.com", nil)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestUpdateReplacesAnswerSetAndReturnsPrevious(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Name", Required: true},
		QuestionInput{Type: models.QuestionCheckbox, Title: "Topics", Options: []string{"A", "B"}},
	)
	nameID := form.Questions[0].ID
	topicsID := form.Questions[1].ID

	first, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: nameID, Value: "Sam"},
		{QuestionID: topicsID, Value: "A,B"},
	})
	require.NoError(t, err)

	result, err := svc.Update(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: nameID, Value: "Sam"},
		{QuestionID: topicsID, Value: "A"},
	})
	require.NoError(t, err)

	// Previous snapshot carries the superseded values with question titles.
	prev := map[string]PreviousAnswer{}
	for _, p := range result.Previous {
		prev[p.QuestionID] = p
	}
	assert.Equal(t, "A,B", prev[topicsID].PreviousValue)
	assert.Equal(t, "Topics", prev[topicsID].QuestionTitle)
	assert.Equal(t, "Sam", prev[nameID].PreviousValue)

	// The stored set is fully replaced, never merged.
	stored, err := svc.GetByEmail(form.ID, "u@x.com")
	require.NoError(t, err)
	require.Len(t, stored.Answers, 2)
	values := answersByQuestion(stored.Answers)
	assert.Equal(t, "Sam", values[nameID])
	assert.Equal(t, "A", values[topicsID])

	assert.Equal(t, first.ID, stored.ID)
	assert.False(t, stored.UpdatedAt.Before(first.UpdatedAt))
}

func TestUpdateShrinksAnswerSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Q1"},
		QuestionInput{Type: models.QuestionShort, Title: "Q2"},
	)

	_, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: form.Questions[0].ID, Value: "one"},
		{QuestionID: form.Questions[1].ID, Value: "two"},
	})
	require.NoError(t, err)

	result, err := svc.Update(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: form.Questions[0].ID, Value: "only"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Previous, 2)
	require.Len(t, result.Response.Answers, 1)
	assert.Equal(t, "only", result.Response.Answers[0].Value)
}

func TestUpdateWithoutExistingResponse(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db)
	_, err := svc.Update(form.ID, "u@x.com", nil)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestCheckboxValuesStoredCanonically(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionCheckbox, Title: "Topics", Options: []string{"A", "B"}},
	)

	response, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: form.Questions[0].ID, Value: " A , B "},
	})
	require.NoError(t, err)
	require.Len(t, response.Answers, 1)
	assert.Equal(t, "A,B", response.Answers[0].Value)
}

func TestDanglingQuestionIDAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db)
	response, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: "no-such-question", Value: "kept as-is"},
	})
	require.NoError(t, err)
	require.Len(t, response.Answers, 1)
	assert.Equal(t, "kept as-is", response.Answers[0].Value)
}

func TestGetByEmailAndByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db)
	created, err := svc.Submit(form.ID, "u@x.com", nil)
	require.NoError(t, err)

	byEmail, err := svc.GetByEmail(form.ID, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := svc.GetByID(form.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", byID.Email)

	_, err = svc.GetByEmail(form.ID, "other@x.com")
	assert.ErrorIs(t, err, ErrResponseNotFound)

	_, err = svc.GetByID("other-form", created.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestDeleteResponseRemovesAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db,
		QuestionInput{Type: models.QuestionShort, Title: "Name"},
	)
	created, err := svc.Submit(form.ID, "u@x.com", []AnswerInput{
		{QuestionID: form.Questions[0].ID, Value: "Sam"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	var answers int64
	require.NoError(t, db.Model(&models.Answer{}).Where("response_id = ?", created.ID).Count(&answers).Error)
	assert.EqualValues(t, 0, answers)

	assert.ErrorIs(t, svc.Delete(created.ID), ErrResponseNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil)

	form := createTestForm(t, db)
	_, err := svc.Submit(form.ID, "a@x.com", nil)
	require.NoError(t, err)
	_, err = svc.Submit(form.ID, "b@x.com", nil)
	require.NoError(t, err)

	responses, err := svc.List(form.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.False(t, responses[0].CreatedAt.Before(responses[1].CreatedAt))
}

func answersByQuestion(answers []models.Answer) map[string]string {
	out := make(map[string]string, len(answers))
	for _, a := range answers {
		out[a.QuestionID] = a.Value
	}
	return out
}
