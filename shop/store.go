// Package shop implements the storefront's data access: one repository per
// table, each rendering its statements with a statement.Builder bound to the
// table it owns.
package shop

import (
	"fmt"
	"time"

	"github.com/asaidimu/storefront/core/persistence"
	"github.com/asaidimu/storefront/core/statement"
	"go.uber.org/zap"
)

// Table names.
const (
	TableUsers           = "users"
	TableProfileComments = "profile_comments"
	TableProducts        = "products"
	TableProductParts    = "product_parts"
	TableProductComments = "product_comments"
	TablePurchases       = "purchases"
	TablePurchaseConfigs = "purchase_configs"
)

// DefaultTopCount is the number of entries top-rated listings return when
// asked for a non-positive count.
const DefaultTopCount = 10

// timestampLayout formats comment and purchase timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// Options configures a Store.
type Options struct {
	// Hasher defaults to a BcryptHasher with bcrypt.DefaultCost.
	Hasher PasswordHasher
	// TopCount defaults to DefaultTopCount.
	TopCount int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Store groups the repositories over one executor.
type Store struct {
	Users           *Users
	Products        *Products
	Parts           *Parts
	ProductComments *ProductComments
	ProfileComments *ProfileComments
	Purchases       *Purchases

	exec     persistence.Executor
	registry *statement.Registry
	logger   *zap.Logger
}

// NewStore registers the default table of every repository, freezes the
// registry and builds the repositories.
func NewStore(exec persistence.Executor, logger *zap.Logger, options *Options) (*Store, error) {
	if exec == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := Options{}
	if options != nil {
		opts = *options
	}
	if opts.Hasher == nil {
		opts.Hasher = NewBcryptHasher(0)
	}
	if opts.TopCount <= 0 {
		opts.TopCount = DefaultTopCount
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	registry := statement.NewRegistry()
	for _, table := range []string{
		TableUsers, TableProfileComments, TableProducts, TableProductParts,
		TableProductComments, TablePurchases, TablePurchaseConfigs,
	} {
		if err := registry.RegisterDefaultTable(table, table); err != nil {
			return nil, fmt.Errorf("failed to register repository: %w", err)
		}
	}
	registry.Freeze()

	repo := func(name string) repository {
		return newRepository(name, registry, exec, logger)
	}
	s := &Store{
		exec:     exec,
		registry: registry,
		logger:   logger,
	}
	s.Users = &Users{
		repository: repo(TableUsers),
		hasher:     opts.Hasher,
		validate:   newValidator(opts.Now),
		topCount:   opts.TopCount,
	}
	s.Products = &Products{repository: repo(TableProducts), topCount: opts.TopCount}
	s.Parts = &Parts{repository: repo(TableProductParts)}
	s.ProductComments = &ProductComments{repository: repo(TableProductComments), now: opts.Now}
	s.ProfileComments = &ProfileComments{repository: repo(TableProfileComments), now: opts.Now}
	s.Purchases = &Purchases{repository: repo(TablePurchases), now: opts.Now}
	return s, nil
}

// Registry returns the frozen default-table registry.
func (s *Store) Registry() *statement.Registry {
	return s.registry
}
