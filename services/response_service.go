package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/models"
)

// AnswerInput is one answered question on the wire. Value carries the
// storage encoding (comma-joined selections for checkbox questions).
type AnswerInput struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      string `json:"value"`
}

// PreviousAnswer is one entry of the audit snapshot returned by Update, so
// the caller can show "previous vs new" to the respondent.
type PreviousAnswer struct {
	QuestionID    string `json:"question_id"`
	QuestionTitle string `json:"question_title"`
	PreviousValue string `json:"previous_value"`
}

// UpdateResult pairs the audit snapshot with the replaced response.
type UpdateResult struct {
	Previous []PreviousAnswer `json:"previous_answers"`
	Response *models.Response `json:"response"`
}

type ResponseService struct {
	db *gorm.DB
	// allowedDomains gates submissions by email domain; empty allows all.
	allowedDomains []string
}

func NewResponseService(db *gorm.DB, allowedDomains []string) *ResponseService {
	return &ResponseService{db: db, allowedDomains: allowedDomains}
}

// Submit stores a first submission for (formID, email). The duplicate guard
// is the unique constraint alone: a translated ErrDuplicatedKey becomes
// ErrAlreadySubmitted, so two near-simultaneous submissions cannot race a
// pre-check.
func (s *ResponseService) Submit(formID, email string, answers []AnswerInput) (*models.Response, error) {
	form, err := s.submittableForm(formID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDomain(email); err != nil {
		return nil, err
	}

	response := models.Response{FormID: form.ID, Email: email}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		return createAnswers(tx, response.ID, form.ID, answers)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		config.Log.Error("submit response failed",
			zap.String("form_id", formID), zap.String("email", email), zap.Error(err))
		return nil, err
	}

	return s.GetByID(formID, response.ID)
}

// Update replaces the whole answer set of an existing response in one
// transaction: snapshot the previous answers, delete them, insert the new
// set, touch updated_at. The submission must always carry the complete
// answer set — nothing is merged.
func (s *ResponseService) Update(formID, email string, answers []AnswerInput) (*UpdateResult, error) {
	form, err := s.submittableForm(formID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDomain(email); err != nil {
		return nil, err
	}

	var previous []PreviousAnswer
	var responseID string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Response
		if err := tx.Where("form_id = ? AND email = ?", form.ID, email).
			First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResponseNotFound
			}
			return err
		}
		responseID = existing.ID

		previous, err = snapshotAnswers(tx, existing.ID)
		if err != nil {
			return err
		}

		if err := tx.Where("response_id = ?", existing.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := createAnswers(tx, existing.ID, form.ID, answers); err != nil {
			return err
		}
		return tx.Model(&models.Response{}).Where("id = ?", existing.ID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		if !errors.Is(err, ErrResponseNotFound) {
			config.Log.Error("update response failed",
				zap.String("form_id", formID), zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	updated, err := s.GetByID(formID, responseID)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{Previous: previous, Response: updated}, nil
}

// List returns a form's responses newest-first with their answers.
func (s *ResponseService) List(formID string) ([]models.Response, error) {
	if _, err := s.formByID(formID); err != nil {
		return nil, err
	}
	var responses []models.Response
	err := s.db.Preload("Answers").
		Where("form_id = ?", formID).
		Order("created_at DESC, id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetByEmail looks a response up by the (formID, email) uniqueness key.
func (s *ResponseService) GetByEmail(formID, email string) (*models.Response, error) {
	var response models.Response
	err := s.db.Preload("Answers").
		Where("form_id = ? AND email = ?", formID, email).
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID loads a response by primary key, scoped to the given form.
func (s *ResponseService) GetByID(formID, responseID string) (*models.Response, error) {
	var response models.Response
	err := s.db.Preload("Answers").
		Where("id = ? AND form_id = ?", responseID, formID).
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete hard-deletes a response and its answers.
func (s *ResponseService) Delete(responseID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var response models.Response
		if err := tx.First(&response, "id = ?", responseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResponseNotFound
			}
			return err
		}
		if err := tx.Where("response_id = ?", responseID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&response).Error
	})
	if err != nil && !errors.Is(err, ErrResponseNotFound) {
		config.Log.Error("delete response failed", zap.String("response_id", responseID), zap.Error(err))
	}
	return err
}

// submittableForm loads the form and enforces the active gate here, not in
// the client, so the invariant holds regardless of which UI calls in.
func (s *ResponseService) submittableForm(formID string) (*models.Form, error) {
	form, err := s.formByID(formID)
	if err != nil {
		return nil, err
	}
	if !form.IsActive {
		return nil, ErrFormInactive
	}
	return form, nil
}

func (s *ResponseService) formByID(formID string) (*models.Form, error) {
	var form models.Form
	err := s.db.First(&form, "id = ?", formID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *ResponseService) checkDomain(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidInput
	}
	if len(s.allowedDomains) == 0 {
		return nil
	}
	domain := email[at+1:]
	for _, d := range s.allowedDomains {
		if domain == d {
			return nil
		}
	}
	return ErrEmailNotAllowed
}

// createAnswers normalizes each value through its question's typed form
// before storing, so checkbox encodings are canonical. Answers pointing at
// unknown questions are stored as-is.
func createAnswers(tx *gorm.DB, responseID, formID string, answers []AnswerInput) error {
	for _, in := range answers {
		value := in.Value
		var question models.Question
		if err := tx.Where("id = ? AND form_id = ?", in.QuestionID, formID).
			First(&question).Error; err == nil {
			value = models.ParseAnswerValue(question.Type, in.Value).Encode()
		}
		answer := models.Answer{
			ResponseID: responseID,
			QuestionID: in.QuestionID,
			Value:      value,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}
	}
	return nil
}

// snapshotAnswers captures value + owning question title for the audit
// return of Update. A deleted question yields an empty title.
func snapshotAnswers(tx *gorm.DB, responseID string) ([]PreviousAnswer, error) {
	var existing []models.Answer
	if err := tx.Where("response_id = ?", responseID).Find(&existing).Error; err != nil {
		return nil, err
	}
	previous := make([]PreviousAnswer, 0, len(existing))
	for _, a := range existing {
		var question models.Question
		title := ""
		if err := tx.Select("id, title").First(&question, "id = ?", a.QuestionID).Error; err == nil {
			title = question.Title
		}
		previous = append(previous, PreviousAnswer{
			QuestionID:    a.QuestionID,
			QuestionTitle: title,
			PreviousValue: a.Value,
		})
	}
	return previous, nil
}
