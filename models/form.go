package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Form struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Color       string    `gorm:"column:color;size:30" json:"color"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	Link        string    `gorm:"column:link;size:255" json:"link"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`
	Responses []Response `gorm:"foreignKey:FormID" json:"-"`
}

func (Form) TableName() string {
	return "forms"
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
