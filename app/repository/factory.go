package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetTagRepository returns the tag repository instance
func (f *Factory) GetTagRepository() TagRepository {
	return f.GetRepositories().Tag
}

// GetBatchRepository returns the batch repository instance
func (f *Factory) GetBatchRepository() BatchRepository {
	return f.GetRepositories().Batch
}

// GetOrderRepository returns the order repository instance
func (f *Factory) GetOrderRepository() OrderRepository {
	return f.GetRepositories().Order
}

// GetProfileRepository returns the profile repository instance
func (f *Factory) GetProfileRepository() ProfileRepository {
	return f.GetRepositories().Profile
}

// GetEmergencyLogRepository returns the emergency log repository instance
func (f *Factory) GetEmergencyLogRepository() EmergencyLogRepository {
	return f.GetRepositories().EmergencyLog
}

// GetSubscriptionLogRepository returns the subscription ledger repository instance
func (f *Factory) GetSubscriptionLogRepository() SubscriptionLogRepository {
	return f.GetRepositories().SubscriptionLog
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}
