package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is one respondent's submission to a form. The composite unique
// index is the only duplicate-submission guard; see services.ResponseService.
type Response struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	FormID    string    `gorm:"column:form_id;size:36;not null;uniqueIndex:idx_responses_form_email" json:"form_id"`
	Form      Form      `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"-"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:idx_responses_form_email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Answers []Answer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
