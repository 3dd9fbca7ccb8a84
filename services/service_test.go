package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/models"
)

// newTestDB opens an isolated in-memory database. MaxOpenConns(1) keeps the
// whole pool on the single connection the :memory: database lives on.
// TranslateError mirrors production so constraint violations surface as
// gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func createTestForm(t *testing.T, db *gorm.DB, questions ...QuestionInput) *models.Form {
	t.Helper()
	form, err := NewFormService(db).Create(CreateFormInput{
		Title:     "Feedback",
		Color:     "#3b82f6",
		Questions: questions,
	})
	require.NoError(t, err)
	return form
}
