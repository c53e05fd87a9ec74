// Package issuer creates batches of tags in a single transaction,
// optionally fulfilling the oldest pending customer order.
package issuer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/internal/pkg/codegen"
	"github.com/guardtag/GuardTag/internal/pkg/database"
)

const (
	MinBatchSize = 1
	MaxBatchSize = 5000
)

var (
	ErrInvalidQuantity      = errors.New("quantity must be between 1 and 5000")
	ErrNoPendingOrder       = errors.New("no pending order to issue against")
	ErrQuantityExceedsOrder = errors.New("quantity exceeds remaining order quantity")
)

// IssueRequest describes one batch issuance.
type IssueRequest struct {
	Quantity     int
	Name         string
	AgentName    string
	TagType      string
	PlanType     string
	AgainstOrder bool
}

// IssueResult is the created batch plus the generated codes, and the
// fulfilled order when the batch was issued against one.
type IssueResult struct {
	Batch *models.Batch    `json:"batch"`
	Order *models.TagOrder `json:"order,omitempty"`
	Codes []string         `json:"codes"`
}

// Issuer implements batch issuance over the tag store.
type Issuer struct {
	db *gorm.DB
}

// New creates an issuer bound to the given database handle
func New(db *gorm.DB) *Issuer {
	return &Issuer{db: db}
}

// Issue creates one batch and exactly Quantity inactive tags inside a
// single transaction. When issued against an order the oldest pending
// order is locked, checked and its fulfillment advanced in the same
// transaction, so concurrent issuers serialize on the order row. On any
// failure nothing is written.
func (i *Issuer) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	if req.Quantity < MinBatchSize || req.Quantity > MaxBatchSize {
		return nil, ErrInvalidQuantity
	}
	if req.TagType == "" {
		req.TagType = models.TAG_TYPE_VEHICLE
	}
	if req.PlanType == "" {
		req.PlanType = models.PLAN_TYPE_YEARLY
	}

	codes, err := codegen.GenerateBatch(req.Quantity)
	if err != nil {
		return nil, err
	}

	result := &IssueResult{Codes: codes}

	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order *models.TagOrder
		if req.AgainstOrder {
			order = &models.TagOrder{}
			err := database.LockForUpdate(tx).
				Where("status = ?", models.ORDER_STATUS_PENDING).
				Order("created_at ASC").
				First(order).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPendingOrder
			}
			if err != nil {
				return err
			}
			if req.Quantity > order.Remaining() {
				return ErrQuantityExceedsOrder
			}
		}

		batch := &models.Batch{
			Name:      req.Name,
			AgentName: req.AgentName,
			Quantity:  req.Quantity,
		}
		if order != nil {
			batch.OrderID = &order.ID
		}
		if err := tx.Create(batch).Error; err != nil {
			return err
		}

		// One bulk insert keeps the transaction short and avoids a
		// partial-visibility window under load.
		tags := make([]models.QRTag, req.Quantity)
		for idx, code := range codes {
			tags[idx] = models.QRTag{
				Code:     code,
				Type:     req.TagType,
				Status:   models.TAG_STATUS_INACTIVE,
				PlanType: req.PlanType,
				BatchID:  &batch.ID,
			}
		}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}

		if order != nil {
			order.QuantityFulfilled += req.Quantity
			if order.QuantityFulfilled >= order.QuantityOrdered {
				order.Status = models.ORDER_STATUS_COMPLETED
			}
			if err := tx.Save(order).Error; err != nil {
				return err
			}
			result.Order = order
		}

		result.Batch = batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
