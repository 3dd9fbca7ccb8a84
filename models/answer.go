package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer records one question's value within a response. QuestionID is a
// plain reference: deleting a question leaves its answers in place.
type Answer struct {
	ID         string   `gorm:"column:id;primaryKey;size:36" json:"id"`
	ResponseID string   `gorm:"column:response_id;size:36;not null;index" json:"response_id"`
	Response   Response `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID string   `gorm:"column:question_id;size:36;not null;index" json:"question_id"`
	Value      string   `gorm:"column:value;type:text" json:"value"`
}

func (Answer) TableName() string {
	return "answers"
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
