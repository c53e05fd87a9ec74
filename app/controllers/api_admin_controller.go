package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/app/repository"
	"github.com/guardtag/GuardTag/internal/pkg/database"
	"github.com/guardtag/GuardTag/internal/pkg/issuer"
	"github.com/guardtag/GuardTag/internal/pkg/ledger"
	"github.com/guardtag/GuardTag/internal/pkg/statistics"
)

const (
	inventoryLimit = 500
	qrsPageSize    = 50
	listLimit      = 200
)

// AdminController handles the panel surface: batch issuance, orders,
// inventory and subscription management.
type AdminController struct {
	db     *gorm.DB
	issuer *issuer.Issuer
	ledger *ledger.Ledger
}

var adminController *AdminController

// NewAdminController creates an admin controller bound to a database handle
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		db:     db,
		issuer: issuer.New(db),
		ledger: ledger.New(db),
	}
}

// InitializeAdminController wires the controller to the shared database
func InitializeAdminController() {
	adminController = NewAdminController(database.GetDB())
}

type generateBatchRequest struct {
	Quantity     int    `json:"quantity"`
	Name         string `json:"name"`
	AgentName    string `json:"agent_name"`
	TagType      string `json:"type"`
	PlanType     string `json:"plan_type"`
	AgainstOrder bool   `json:"against_order"`
}

// HandleGenerateBatch issues a batch of fresh inactive tags
func (ac *AdminController) HandleGenerateBatch(c *fiber.Ctx) error {
	var req generateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := ac.issuer.Issue(ctx, issuer.IssueRequest{
		Quantity:     req.Quantity,
		Name:         req.Name,
		AgentName:    req.AgentName,
		TagType:      req.TagType,
		PlanType:     req.PlanType,
		AgainstOrder: req.AgainstOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, issuer.ErrInvalidQuantity):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "quantity must be between 1 and 5000")
		case errors.Is(err, issuer.ErrNoPendingOrder):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "No pending order to fulfill")
		case errors.Is(err, issuer.ErrQuantityExceedsOrder):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Quantity exceeds remaining order quantity")
		default:
			log.Printf("Generate batch error: %v", err)
			return storeFailure(c, err)
		}
	}

	statistics.InvalidateTagStats()

	resp := fiber.Map{
		"message": "Batch generated",
		"batch":   result.Batch,
		"codes":   result.Codes,
	}
	if result.Order != nil {
		resp["order"] = result.Order
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

type createOrderRequest struct {
	CustomerName string `json:"customer_name"`
	Mobile       string `json:"mobile"`
	Quantity     int    `json:"quantity"`
}

// HandleCreateOrder records a customer order awaiting fulfillment
func (ac *AdminController) HandleCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	order := &models.TagOrder{
		CustomerName:    req.CustomerName,
		Mobile:          req.Mobile,
		QuantityOrdered: req.Quantity,
		Status:          models.ORDER_STATUS_PENDING,
	}
	if err := order.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "customer_name, mobile and a positive quantity required")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	orders := repository.NewOrderRepository(ac.db.WithContext(ctx))
	if err := orders.Create(order); err != nil {
		log.Printf("Create order error: %v", err)
		return storeFailure(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created",
		"data":    order,
	})
}

// HandleListOrders lists orders, newest first
func (ac *AdminController) HandleListOrders(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders := repository.NewOrderRepository(ac.db.WithContext(ctx))
	list, err := orders.List(0, listLimit)
	if err != nil {
		log.Printf("List orders error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{"data": list})
}

// HandleListBatches lists issued batches, newest first
func (ac *AdminController) HandleListBatches(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	batches := repository.NewBatchRepository(ac.db.WithContext(ctx))
	list, err := batches.List(0, listLimit)
	if err != nil {
		log.Printf("List batches error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{"data": list})
}

// HandleInventory returns the newest tags for the stock view
func (ac *AdminController) HandleInventory(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags := repository.NewTagRepository(ac.db.WithContext(ctx))
	list, err := tags.List(0, inventoryLimit)
	if err != nil {
		log.Printf("Inventory error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{"data": list})
}

// HandleListQRs returns the paginated tag listing joined with vehicle
// profile columns
func (ac *AdminController) HandleListQRs(c *fiber.Ctx) error {
	page := parsePage(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	tags := repository.NewTagRepository(ac.db.WithContext(ctx))

	total, err := tags.Count()
	if err != nil {
		log.Printf("List QRs count error: %v", err)
		return storeFailure(c, err)
	}

	list, err := tags.ListWithVehicleProfile((page-1)*qrsPageSize, qrsPageSize)
	if err != nil {
		log.Printf("List QRs error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{
		"data":      list,
		"page":      page,
		"page_size": qrsPageSize,
		"total":     total,
	})
}

// HandleStats returns the dashboard aggregates, served through the cache
func (ac *AdminController) HandleStats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags := repository.NewTagRepository(ac.db.WithContext(ctx))
	stats, err := statistics.GetTagStats(tags)
	if err != nil {
		log.Printf("Stats error: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(fiber.Map{"data": stats})
}

type subscriptionRequest struct {
	Years     int     `json:"years"`
	PricePaid float64 `json:"price_paid"`
}

// HandleSubscription extends a tag's subscription by whole years
func (ac *AdminController) HandleSubscription(c *fiber.Ctx) error {
	var req subscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := ac.ledger.Extend(ctx, c.Params("code"), req.Years, req.PricePaid)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "not_found", "QR not found")
		case errors.Is(err, ledger.ErrInvalidYears):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "years must be positive")
		case errors.Is(err, ledger.ErrInvalidAmount):
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "price_paid must not be negative")
		default:
			log.Printf("Subscription error: %v", err)
			return storeFailure(c, err)
		}
	}

	statistics.InvalidateTagStats()

	return c.JSON(fiber.Map{
		"message": "Subscription updated",
		"data":    tag,
	})
}

// Package-level handlers used by the router

func HandleGenerateBatch(c *fiber.Ctx) error { return adminController.HandleGenerateBatch(c) }
func HandleCreateOrder(c *fiber.Ctx) error   { return adminController.HandleCreateOrder(c) }
func HandleListOrders(c *fiber.Ctx) error    { return adminController.HandleListOrders(c) }
func HandleListBatches(c *fiber.Ctx) error   { return adminController.HandleListBatches(c) }
func HandleInventory(c *fiber.Ctx) error     { return adminController.HandleInventory(c) }
func HandleListQRs(c *fiber.Ctx) error       { return adminController.HandleListQRs(c) }
func HandleStats(c *fiber.Ctx) error         { return adminController.HandleStats(c) }
func HandleSubscription(c *fiber.Ctx) error  { return adminController.HandleSubscription(c) }
