package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question types a form can carry.
const (
	QuestionShort    = "short"
	QuestionLong     = "long"
	QuestionMultiple = "multiple"
	QuestionDropdown = "dropdown"
	QuestionCheckbox = "checkbox"
)

type Question struct {
	ID       string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	FormID   string     `gorm:"column:form_id;size:36;not null;index" json:"form_id"`
	Form     Form       `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"-"`
	Type     string     `gorm:"column:type;size:20;not null" json:"type"`
	Title    string     `gorm:"column:title;type:text;not null" json:"title"`
	Options  StringList `gorm:"column:options;type:text" json:"options"`
	Required bool       `gorm:"column:required;default:false" json:"required"`
	Order    int        `gorm:"column:order;default:0" json:"order"`
	ImageURL string     `gorm:"column:image_url;type:text" json:"image_url"`
	Link     string     `gorm:"column:link;size:255" json:"link"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// IsChoice reports whether the question type carries an option list.
func IsChoice(questionType string) bool {
	switch questionType {
	case QuestionMultiple, QuestionDropdown, QuestionCheckbox:
		return true
	}
	return false
}
