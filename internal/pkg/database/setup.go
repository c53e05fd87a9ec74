package database

import (
	"fmt"
	"log"
	"time"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/internal/pkg/env"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

// Pool limits. Every request borrows a connection for the duration of
// one operation; acquisition beyond these limits waits and is bounded
// by the per-request context deadline.
const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

var DB *gorm.DB

func SetupDatabase() {
	var err error
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		// TranslateError turns driver unique-violation errors into
		// gorm.ErrDuplicatedKey so handlers can map them to 400
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultStringSize:        256,
			DisableDatetimePrecision: true,
		}), &gorm.Config{TranslateError: true})
		if err == nil {
			configurePool(DB)

			DB.AutoMigrate(
				&models.User{},
				&models.QRTag{},
				&models.Batch{},
				&models.TagOrder{},
				&models.VehicleProfile{},
				&models.PetProfile{},
				&models.SubscriptionLog{},
				&models.EmergencyLog{},
			)

			seedAdminUser(DB)

			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// GetDB returns the shared database handle
func GetDB() *gorm.DB {
	return DB
}

func configurePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Warning: could not configure connection pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
}

// seedAdminUser creates the initial admin account from the environment
// when no user exists yet. Without it a fresh deployment has no way
// into the panel.
func seedAdminUser(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: could not check for existing users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := env.GetEnv("ADMIN_EMAIL", "")
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Println("No users found and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	admin, err := models.CreateUser("Administrator", email, password, models.ROLE_ADMIN)
	if err != nil {
		log.Printf("Warning: could not create admin user: %v", err)
		return
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("Warning: could not store admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", email)
}

// LockForUpdate adds a pessimistic row lock on dialects that support
// it. SQLite serializes writers on its own, so the clause is skipped
// there (it is also invalid syntax).
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" || tx.Dialector.Name() == "sqlite3" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
