package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/formworks/formbuilder-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the PostgreSQL connection and migrates the schema.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func ConnectDB() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		SLog.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		SLog.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	SLog.Info("Connected to PostgreSQL & migrated successfully")
}

// Migrate runs AutoMigrate for every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Form{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
	)
}

// JWTSecret returns the signing key for app tokens.
func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GoogleClientID is the OAuth audience expected on Google ID tokens.
func GoogleClientID() string {
	return os.Getenv("GOOGLE_CLIENT_ID")
}

// AllowedEmailDomains parses ALLOWED_EMAIL_DOMAINS (comma separated, e.g.
// "college.edu,staff.college.edu"). Empty means any domain may submit.
func AllowedEmailDomains() []string {
	raw := os.Getenv("ALLOWED_EMAIL_DOMAINS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	domains := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			domains = append(domains, p)
		}
	}
	return domains
}
