package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/models"
)

// QuestionInput is one question as sent by the builder UI. An empty ID marks
// a question that does not exist yet; a non-empty ID targets an existing row.
// Position in the slice is authoritative for ordering — any client-supplied
// order value is ignored.
type QuestionInput struct {
	ID       string   `json:"id"`
	Type     string   `json:"type" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	ImageURL string   `json:"image_url"`
	Link     string   `json:"link"`
}

type CreateFormInput struct {
	Title       string          `json:"title" binding:"required,min=1"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Link        string          `json:"link"`
	Questions   []QuestionInput `json:"questions"`
}

type UpdateFormInput struct {
	Title       string          `json:"title" binding:"required,min=1"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	IsActive    *bool           `json:"is_active"`
	Link        string          `json:"link"`
	Questions   []QuestionInput `json:"questions"`
}

// FormSummary is one row of the dashboard listing.
type FormSummary struct {
	models.Form
	ResponseCount int64 `json:"response_count"`
}

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

// Create stores the form and one question per input element, order taken
// from slice position. Returns the form with questions ordered ascending.
func (s *FormService) Create(in CreateFormInput) (*models.Form, error) {
	form := models.Form{
		Title:       in.Title,
		Description: in.Description,
		Color:       in.Color,
		IsActive:    true,
		Link:        in.Link,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&form).Error; err != nil {
			return err
		}
		for idx, q := range in.Questions {
			question := models.Question{
				FormID:   form.ID,
				Type:     q.Type,
				Title:    q.Title,
				Options:  optionsFor(q),
				Required: q.Required,
				Order:    idx,
				ImageURL: q.ImageURL,
				Link:     q.Link,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.Log.Error("create form failed", zap.Error(err))
		return nil, err
	}

	return s.Get(form.ID)
}

// Update reconciles the question set against the incoming list inside one
// transaction: delete questions whose id is absent, upsert every incoming
// question, and reassign order from slice position.
func (s *FormService) Update(formID string, in UpdateFormInput) (*models.Form, error) {
	if formID == "" {
		return nil, ErrInvalidInput
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var form models.Form
		if err := tx.First(&form, "id = ?", formID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"title":       in.Title,
			"description": in.Description,
			"color":       in.Color,
			"link":        in.Link,
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if err := tx.Model(&models.Form{}).Where("id = ?", formID).Updates(updates).Error; err != nil {
			return err
		}

		// Delete-not-in: questions the client dropped.
		keepIDs := make([]string, 0, len(in.Questions))
		for _, q := range in.Questions {
			if q.ID != "" {
				keepIDs = append(keepIDs, q.ID)
			}
		}
		del := tx.Where("form_id = ?", formID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		if err := del.Delete(&models.Question{}).Error; err != nil {
			return err
		}

		// Upsert-all, re-sequence: slice position wins over anything stored.
		for idx, q := range in.Questions {
			if q.ID == "" {
				question := models.Question{
					ID:       uuid.NewString(),
					FormID:   formID,
					Type:     q.Type,
					Title:    q.Title,
					Options:  optionsFor(q),
					Required: q.Required,
					Order:    idx,
					ImageURL: q.ImageURL,
					Link:     q.Link,
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
				continue
			}

			res := tx.Model(&models.Question{}).
				Where("id = ? AND form_id = ?", q.ID, formID).
				Updates(map[string]interface{}{
					"type":      q.Type,
					"title":     q.Title,
					"options":   optionsFor(q),
					"required":  q.Required,
					"order":     idx,
					"image_url": q.ImageURL,
					"link":      q.Link,
				})
			if res.Error != nil {
				return res.Error
			}
			// Unknown id from the client: treat as an insert under that id,
			// matching the original upsert semantics.
			if res.RowsAffected == 0 {
				question := models.Question{
					ID:       q.ID,
					FormID:   formID,
					Type:     q.Type,
					Title:    q.Title,
					Options:  optionsFor(q),
					Required: q.Required,
					Order:    idx,
					ImageURL: q.ImageURL,
					Link:     q.Link,
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrFormNotFound) {
			config.Log.Error("update form failed", zap.String("form_id", formID), zap.Error(err))
		}
		return nil, err
	}

	return s.Get(formID)
}

// List returns all forms newest-first with their response counts.
func (s *FormService) List() ([]FormSummary, error) {
	var forms []models.Form
	if err := s.db.Order("created_at DESC").Find(&forms).Error; err != nil {
		return nil, err
	}

	summaries := make([]FormSummary, 0, len(forms))
	for _, f := range forms {
		var count int64
		if err := s.db.Model(&models.Response{}).Where("form_id = ?", f.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, FormSummary{Form: f, ResponseCount: count})
	}
	return summaries, nil
}

// Get loads a form with its questions ordered ascending.
func (s *FormService) Get(formID string) (*models.Form, error) {
	var form models.Form
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC, id ASC")
		}).
		First(&form, "id = ?", formID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// Delete removes the form together with its questions, responses, and
// answers in one transaction so no orphaned rows stay queryable.
func (s *FormService) Delete(formID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var form models.Form
		if err := tx.First(&form, "id = ?", formID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}

		if err := tx.Where("response_id IN (?)",
			tx.Model(&models.Response{}).Select("id").Where("form_id = ?", formID),
		).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&form).Error
	})
	if err != nil && !errors.Is(err, ErrFormNotFound) {
		config.Log.Error("delete form failed", zap.String("form_id", formID), zap.Error(err))
	}
	return err
}

func optionsFor(q QuestionInput) models.StringList {
	if !models.IsChoice(q.Type) || q.Options == nil {
		return models.StringList{}
	}
	return models.StringList(q.Options)
}
