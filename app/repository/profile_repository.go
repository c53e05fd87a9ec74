package repository

import (
	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateVehicleProfile inserts a vehicle disclosure profile
func (r *profileRepository) CreateVehicleProfile(profile *models.VehicleProfile) error {
	return r.db.Create(profile).Error
}

// CreatePetProfile inserts a pet disclosure profile
func (r *profileRepository) CreatePetProfile(profile *models.PetProfile) error {
	return r.db.Create(profile).Error
}

// UpdateVehicleProfile updates an existing vehicle disclosure profile
func (r *profileRepository) UpdateVehicleProfile(profile *models.VehicleProfile) error {
	return r.db.Save(profile).Error
}

// UpdatePetProfile updates an existing pet disclosure profile
func (r *profileRepository) UpdatePetProfile(profile *models.PetProfile) error {
	return r.db.Save(profile).Error
}

// GetVehicleProfileByTagID retrieves the vehicle profile linked to a tag
func (r *profileRepository) GetVehicleProfileByTagID(tagID uint) (*models.VehicleProfile, error) {
	var profile models.VehicleProfile
	err := r.db.Where("qr_tag_id = ?", tagID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPetProfileByTagID retrieves the pet profile linked to a tag
func (r *profileRepository) GetPetProfileByTagID(tagID uint) (*models.PetProfile, error) {
	var profile models.PetProfile
	err := r.db.Where("qr_tag_id = ?", tagID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
