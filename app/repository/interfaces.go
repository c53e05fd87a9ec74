package repository

import (
	"time"

	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag-related database operations
type TagRepository interface {
	Create(tag *models.QRTag) error
	GetByID(id uint) (*models.QRTag, error)
	GetByCode(code string) (*models.QRTag, error)
	Update(tag *models.QRTag) error
	List(offset, limit int) ([]models.QRTag, error)
	ListWithVehicleProfile(offset, limit int) ([]TagWithVehicleProfile, error)
	Count() (int64, error)
	GetStats() (*TagStats, error)
}

// BatchRepository defines the interface for batch-related database operations
type BatchRepository interface {
	GetByID(id uint) (*models.Batch, error)
	GetByUUID(uuid string) (*models.Batch, error)
	List(offset, limit int) ([]models.Batch, error)
	Count() (int64, error)
	CountTags(batchID uint) (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.TagOrder) error
	GetByID(id uint) (*models.TagOrder, error)
	List(offset, limit int) ([]models.TagOrder, error)
	Count() (int64, error)
}

// ProfileRepository defines the interface for disclosure profile operations
type ProfileRepository interface {
	CreateVehicleProfile(profile *models.VehicleProfile) error
	CreatePetProfile(profile *models.PetProfile) error
	UpdateVehicleProfile(profile *models.VehicleProfile) error
	UpdatePetProfile(profile *models.PetProfile) error
	GetVehicleProfileByTagID(tagID uint) (*models.VehicleProfile, error)
	GetPetProfileByTagID(tagID uint) (*models.PetProfile, error)
}

// EmergencyLogRepository defines the interface for the append-only
// emergency audit log
type EmergencyLogRepository interface {
	Append(entry *models.EmergencyLog) error
	CountByCallerSince(callerIP string, since time.Time) (int64, error)
	ListByTagID(tagID uint, limit int) ([]models.EmergencyLog, error)
}

// SubscriptionLogRepository defines the interface for the append-only
// subscription ledger
type SubscriptionLogRepository interface {
	Append(entry *models.SubscriptionLog) error
	ListByTagID(tagID uint) ([]models.SubscriptionLog, error)
}

// UserRepository defines the interface for admin account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// TagWithVehicleProfile is a tag row joined with its vehicle profile
// columns for the paginated admin listing
type TagWithVehicleProfile struct {
	Code          string     `json:"qr_code"`
	Status        string     `json:"status"`
	PlanType      string     `json:"plan_type"`
	PricePaid     float64    `json:"price_paid"`
	ActivatedAt   *time.Time `json:"activated_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	CreatedAt     time.Time  `json:"created_at"`
	VehicleNumber *string    `json:"vehicle_number"`
	OwnerMobile   *string    `json:"owner_mobile"`
}

// TagStats provides the aggregated counts behind the admin dashboard
type TagStats struct {
	Active       int64   `json:"active"`
	Inactive     int64   `json:"inactive"`
	Expired      int64   `json:"expired"`
	Total        int64   `json:"total"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	Tag             TagRepository
	Batch           BatchRepository
	Order           OrderRepository
	Profile         ProfileRepository
	EmergencyLog    EmergencyLogRepository
	SubscriptionLog SubscriptionLogRepository
	User            UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tag:             NewTagRepository(db),
		Batch:           NewBatchRepository(db),
		Order:           NewOrderRepository(db),
		Profile:         NewProfileRepository(db),
		EmergencyLog:    NewEmergencyLogRepository(db),
		SubscriptionLog: NewSubscriptionLogRepository(db),
		User:            NewUserRepository(db),
	}
}
