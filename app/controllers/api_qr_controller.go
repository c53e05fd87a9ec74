package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/app/repository"
	"github.com/guardtag/GuardTag/internal/pkg/contact"
	"github.com/guardtag/GuardTag/internal/pkg/database"
	"github.com/guardtag/GuardTag/internal/pkg/env"
	"github.com/guardtag/GuardTag/internal/pkg/ledger"
	"github.com/guardtag/GuardTag/internal/pkg/resolver"
	"github.com/guardtag/GuardTag/internal/pkg/statistics"
)

// QRController handles the public tag surface: creation, resolution,
// activation and contact logging.
type QRController struct {
	db       *gorm.DB
	resolver *resolver.Resolver
	ledger   *ledger.Ledger
	gateway  *contact.Gateway
}

var qrController *QRController

// NewQRController creates a QR controller bound to a database handle
func NewQRController(db *gorm.DB) *QRController {
	return &QRController{
		db:       db,
		resolver: resolver.New(db),
		ledger:   ledger.New(db),
		gateway:  contact.New(db),
	}
}

// InitializeQRController wires the controller to the shared database
func InitializeQRController() {
	qrController = NewQRController(database.GetDB())
}

type createQRRequest struct {
	Code string `json:"qr_code"`
	Type string `json:"type"`
}

// HandleCreateQR creates a single tag in inactive state
func (qc *QRController) HandleCreateQR(c *fiber.Ctx) error {
	var req createQRRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Code == "" || req.Type == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "qr_code and type required")
	}
	if !models.IsValidTagType(req.Type) {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "type must be vehicle or pet")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tags := repository.NewTagRepository(qc.db.WithContext(ctx))

	tag := &models.QRTag{
		Code:   req.Code,
		Type:   req.Type,
		Status: models.TAG_STATUS_INACTIVE,
	}
	// the unique index decides duplicates, so two racing creates still
	// agree on who wins
	if err := tags.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorJSON(c, fiber.StatusBadRequest, "conflict", "QR already exists")
		}
		log.Printf("Create QR error: %v", err)
		return storeFailure(c, err)
	}

	statistics.InvalidateTagStats()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "QR created",
		"data":    tag,
	})
}

// HandleGetQR returns the raw tag record for the admin panel
func (qc *QRController) HandleGetQR(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags := repository.NewTagRepository(qc.db.WithContext(ctx))
	tag, err := tags.GetByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
		}
		log.Printf("Fetch QR error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(tag)
}

// HandlePublicResolve is the public disclosure endpoint behind the
// emergency page. Inactive, expired and unknown codes all answer 404 so
// the endpoint leaks nothing about stickers that are not live.
func (qc *QRController) HandlePublicResolve(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := qc.resolver.Resolve(ctx, c.Params("code"))
	if err != nil {
		log.Printf("Public QR error: %v", err)
		return storeFailure(c, err)
	}

	if res.State != resolver.StateActive {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found or inactive")
	}
	if res.Profile == nil {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Profile not found")
	}

	// best-effort audit; failure never blocks disclosure
	qc.resolver.RecordView(res.Tag.ID, GetClientIP(c))

	return c.JSON(fiber.Map{
		"type": res.Tag.Type,
		"data": res.Profile,
	})
}

// HandleActivate performs the first-time inactive to active transition
func (qc *QRController) HandleActivate(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := qc.ledger.Activate(ctx, c.Params("code"))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
		case errors.Is(err, ledger.ErrAlreadyActive):
			return errorJSON(c, fiber.StatusBadRequest, "already_active", "QR already active")
		default:
			log.Printf("Activate error: %v", err)
			return storeFailure(c, err)
		}
	}

	statistics.InvalidateTagStats()

	return c.JSON(fiber.Map{
		"message": "QR activated",
		"data":    tag,
	})
}

type contactRequest struct {
	ActionType string `json:"action_type"`
}

// HandleContact logs a reveal-owner-contact action, throttled per caller
func (qc *QRController) HandleContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := qc.gateway.Record(ctx, c.Params("code"), req.ActionType, GetClientIP(c))
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrInvalidAction):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid action_type")
		case errors.Is(err, contact.ErrForbidden):
			return errorJSON(c, fiber.StatusForbidden, "forbidden", "QR invalid or inactive")
		case errors.Is(err, contact.ErrRateLimited):
			return errorJSON(c, fiber.StatusTooManyRequests, "rate_limited", "Too many requests")
		default:
			log.Printf("Contact error: %v", err)
			return storeFailure(c, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Contact logged"})
}

type profileRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	Model         string `json:"model"`
	BloodGroup    string `json:"blood_group"`
	PetName       string `json:"pet_name"`
	Breed         string `json:"breed"`
	Notes         string `json:"notes"`
	OwnerName     string `json:"owner_name"`
	OwnerMobile   string `json:"owner_mobile"`
}

// HandleUpsertProfile creates or replaces the disclosure profile behind
// a tag. The activation page submits here; the profile can be refreshed
// later without touching the subscription.
func (qc *QRController) HandleUpsertProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	repos := repository.NewRepositories(qc.db.WithContext(ctx))

	tag, err := repos.Tag.GetByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
		}
		log.Printf("Upsert profile lookup error: %v", err)
		return storeFailure(c, err)
	}

	switch tag.Type {
	case models.TAG_TYPE_VEHICLE:
		if req.VehicleNumber == "" {
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "vehicle_number required")
		}

		profile, err := repos.Profile.GetVehicleProfileByTagID(tag.ID)
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			log.Printf("Upsert profile error: %v", err)
			return storeFailure(c, err)
		}
		if created {
			profile = &models.VehicleProfile{QRTagID: tag.ID}
		}

		profile.VehicleNumber = req.VehicleNumber
		profile.Model = req.Model
		profile.BloodGroup = req.BloodGroup
		profile.OwnerName = req.OwnerName
		profile.OwnerMobile = req.OwnerMobile

		if created {
			err = repos.Profile.CreateVehicleProfile(profile)
		} else {
			err = repos.Profile.UpdateVehicleProfile(profile)
		}
		if err != nil {
			log.Printf("Upsert profile error: %v", err)
			return storeFailure(c, err)
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Profile saved",
			"data":    profile,
		})

	case models.TAG_TYPE_PET:
		if req.PetName == "" {
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "pet_name required")
		}

		profile, err := repos.Profile.GetPetProfileByTagID(tag.ID)
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			log.Printf("Upsert profile error: %v", err)
			return storeFailure(c, err)
		}
		if created {
			profile = &models.PetProfile{QRTagID: tag.ID}
		}

		profile.PetName = req.PetName
		profile.Breed = req.Breed
		profile.Notes = req.Notes
		profile.OwnerName = req.OwnerName
		profile.OwnerMobile = req.OwnerMobile

		if created {
			err = repos.Profile.CreatePetProfile(profile)
		} else {
			err = repos.Profile.UpdatePetProfile(profile)
		}
		if err != nil {
			log.Printf("Upsert profile error: %v", err)
			return storeFailure(c, err)
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Profile saved",
			"data":    profile,
		})

	default:
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Unknown tag type")
	}
}

// HandleGetProfile returns the stored disclosure profile regardless of
// lifecycle state, so the activation and renewal pages can prefill the
// form. The public resolver stays the only gate on disclosure.
func (qc *QRController) HandleGetProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	repos := repository.NewRepositories(qc.db.WithContext(ctx))

	tag, err := repos.Tag.GetByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
		}
		log.Printf("Fetch profile lookup error: %v", err)
		return storeFailure(c, err)
	}

	var profile interface{}
	switch tag.Type {
	case models.TAG_TYPE_VEHICLE:
		profile, err = repos.Profile.GetVehicleProfileByTagID(tag.ID)
	case models.TAG_TYPE_PET:
		profile, err = repos.Profile.GetPetProfileByTagID(tag.ID)
	default:
		err = gorm.ErrRecordNotFound
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Profile not found")
		}
		log.Printf("Fetch profile error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{
		"type": tag.Type,
		"data": profile,
	})
}

// HandleScanRedirect is the entry point printed on the sticker. It
// forwards the scanner to the activation, renewal or emergency page of
// the frontend depending on the tag's lifecycle state.
func (qc *QRController) HandleScanRedirect(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	code := models.NormalizeCode(c.Params("code"))

	res, err := qc.resolver.Resolve(ctx, code)
	if err != nil {
		log.Printf("Scan redirect error: %v", err)
		return storeFailure(c, err)
	}

	frontend := env.GetEnv("FRONTEND_URL", "")

	switch res.State {
	case resolver.StateRequiresActivation:
		return c.Redirect(fmt.Sprintf("%s/activate/%s", frontend, code), fiber.StatusFound)
	case resolver.StateExpired:
		return c.Redirect(fmt.Sprintf("%s/subscribe/%s", frontend, code), fiber.StatusFound)
	case resolver.StateActive:
		return c.Redirect(fmt.Sprintf("%s/emergency/%s", frontend, code), fiber.StatusFound)
	default:
		return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
	}
}

// Package-level handlers used by the router

func HandleCreateQR(c *fiber.Ctx) error      { return qrController.HandleCreateQR(c) }
func HandleGetQR(c *fiber.Ctx) error         { return qrController.HandleGetQR(c) }
func HandlePublicResolve(c *fiber.Ctx) error { return qrController.HandlePublicResolve(c) }
func HandleActivate(c *fiber.Ctx) error      { return qrController.HandleActivate(c) }
func HandleContact(c *fiber.Ctx) error       { return qrController.HandleContact(c) }
func HandleUpsertProfile(c *fiber.Ctx) error { return qrController.HandleUpsertProfile(c) }
func HandleGetProfile(c *fiber.Ctx) error    { return qrController.HandleGetProfile(c) }
func HandleScanRedirect(c *fiber.Ctx) error  { return qrController.HandleScanRedirect(c) }
