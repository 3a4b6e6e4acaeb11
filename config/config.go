package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "zero_hunger_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads a .env file when present and refreshes env-derived settings.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "zero_hunger_super_secret_2024"))
}

// InitDB connects to postgres when DATABASE_URL is set, otherwise to a local
// sqlite file, and migrates the schema.
func InitDB() {
	var dialector gorm.Dialector
	if url := os.Getenv("DATABASE_URL"); url != "" {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(getEnv("DB_PATH", "zero_hunger.db"))
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Donation{},
		&models.DonationStatusHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// SetDB swaps the database handle, used by tests.
func SetDB(db *gorm.DB) {
	DB = db
}
