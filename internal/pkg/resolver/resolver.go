// Package resolver decides what a scanned code means: unknown sticker,
// sticker waiting for activation, lapsed subscription, or an active tag
// whose profile may be disclosed.
package resolver

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/app/repository"
)

// State is the outcome of resolving a code.
type State int

const (
	StateNotFound State = iota
	StateRequiresActivation
	StateExpired
	StateActive
)

// String returns the wire name of a state
func (s State) String() string {
	switch s {
	case StateRequiresActivation:
		return "requires_activation"
	case StateExpired:
		return "expired"
	case StateActive:
		return "active"
	default:
		return "not_found"
	}
}

// Resolution carries the resolved tag and, for active tags, the
// disclosure profile. Profile is nil when no profile has been filled in
// yet.
type Resolution struct {
	State   State
	Tag     *models.QRTag
	Profile interface{}
}

// Resolver implements the lifecycle resolution over the tag store.
type Resolver struct {
	db *gorm.DB
}

// New creates a resolver bound to the given database handle
func New(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve normalizes and looks up a code and classifies its lifecycle
// state. It never writes; disclosure logging is a separate, best-effort
// concern (RecordView).
func (r *Resolver) Resolve(ctx context.Context, code string) (*Resolution, error) {
	repos := repository.NewRepositories(r.db.WithContext(ctx))

	tag, err := repos.Tag.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Resolution{State: StateNotFound}, nil
		}
		return nil, err
	}

	if !tag.IsActive() {
		return &Resolution{State: StateRequiresActivation, Tag: tag}, nil
	}

	if tag.IsExpired() {
		return &Resolution{State: StateExpired, Tag: tag}, nil
	}

	res := &Resolution{State: StateActive, Tag: tag}

	switch tag.Type {
	case models.TAG_TYPE_VEHICLE:
		if p, err := repos.Profile.GetVehicleProfileByTagID(tag.ID); err == nil {
			res.Profile = p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	case models.TAG_TYPE_PET:
		if p, err := repos.Profile.GetPetProfileByTagID(tag.ID); err == nil {
			res.Profile = p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return res, nil
}

// RecordView appends a disclosure audit entry without blocking the
// response. The write runs on a detached context so a disconnecting
// caller cannot abort it; failures are logged and swallowed.
func (r *Resolver) RecordView(tagID uint, callerIP string) {
	go func() {
		logs := repository.NewEmergencyLogRepository(r.db.WithContext(context.Background()))
		err := logs.Append(&models.EmergencyLog{
			QRTagID:    tagID,
			ActionType: models.EMERGENCY_ACTION_VIEW,
			CallerIP:   callerIP,
		})
		if err != nil {
			log.Printf("Failed to record view for tag %d: %v", tagID, err)
		}
	}()
}
