// Package contact logs "reveal owner contact" actions and throttles
// them per caller, so owner phone numbers cannot be scraped.
package contact

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/app/repository"
)

const (
	// RateLimitWindow is the trailing window the per-caller count is
	// taken over.
	RateLimitWindow = 2 * time.Minute
	// RateLimitMax is the number of logged actions a caller may
	// accumulate inside the window before being rejected.
	RateLimitMax = 5
)

var (
	ErrInvalidAction = errors.New("invalid contact action")
	ErrForbidden     = errors.New("tag is not active")
	ErrRateLimited   = errors.New("too many contact requests")
)

// Gateway implements the rate-limited contact log.
type Gateway struct {
	db *gorm.DB
}

// New creates a gateway bound to the given database handle
func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Record validates the tag, applies the per-caller window limit and
// appends one audit row. The limit is a single count query over the
// audit log itself; no separate rate-limit store.
func (g *Gateway) Record(ctx context.Context, code, action, callerIP string) error {
	if !models.IsContactAction(action) {
		return ErrInvalidAction
	}

	repos := repository.NewRepositories(g.db.WithContext(ctx))

	tag, err := repos.Tag.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !tag.IsActive() || tag.IsExpired() {
		return ErrForbidden
	}

	count, err := repos.EmergencyLog.CountByCallerSince(callerIP, time.Now().Add(-RateLimitWindow))
	if err != nil {
		return err
	}
	if count >= RateLimitMax {
		return ErrRateLimited
	}

	return repos.EmergencyLog.Append(&models.EmergencyLog{
		QRTagID:    tag.ID,
		ActionType: action,
		CallerIP:   callerIP,
	})
}
