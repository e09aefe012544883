package shop

import (
	"context"
	"fmt"

	"github.com/asaidimu/storefront/core/persistence"
	"go.uber.org/zap"
)

// Reset drops and recreates every storefront table. The store's executor
// must be able to manage tables.
func (s *Store) Reset(ctx context.Context) error {
	tm, ok := s.exec.(persistence.TableManager)
	if !ok {
		return fmt.Errorf("executor %T cannot manage tables", s.exec)
	}
	tables := Tables()
	for _, table := range tables {
		if err := tm.DropTable(ctx, table.Name); err != nil {
			return err
		}
	}
	for _, table := range tables {
		if err := tm.CreateTable(ctx, table); err != nil {
			return err
		}
	}
	s.logger.Info("Reset tables", zap.Int("count", len(tables)))
	return nil
}

type seedUser struct {
	username, email, password, birth, description string
	admin                                         bool
}

var seedUsers = []seedUser{
	{"Bob", "bob@publicshop.io", "bobross", "2000-12-24", "Love shopping", false},
	{"Ulf", "ulf@publicshop.io", "secure", "1995-08-20", "Hate shopping", false},
	{"Rasmus", "rasmus@publicshop.io", "Kissemisse", "2001-03-14", "Love shopping", false},
	{"Adam", "adam@publicshop.io", "VarEMinLaddare", "2001-08-10", "Love shopping", false},
	{"Jesper", "jesper@publicshop.io", "OurAdmin", "2001-05-05", "I own this place, try me bro!", true},
	{"Marcus", "marcus@publicshop.io", "naturaren", "2001-10-15", "Why am I here", false},
}

// seedProducts refer to their owners by position in seedUsers, starting at 1.
var seedProducts = []NewProduct{
	{UserID: 3, Name: "images", Price: 100, Stock: 150, Description: "Exclusively cat photos, promise."},
	{UserID: 3, Name: "mysterious delivery", Price: 1500, Stock: 10, Description: "Mysterious, just like my profile."},
	{UserID: 4, Name: "potatoes", Price: 399, Stock: 25, Description: "Round, just like our Earth."},
	{UserID: 4, Name: "rocks", Price: 750, Stock: 100, Description: "Expensive and hard."},
	{UserID: 5, Name: "Empty", Price: 10, Stock: 10, Description: "Cheap and hollow."},
	{UserID: 6, Name: "know your biology!", Price: 1000, Stock: 10, Description: "Expensive but genius."},
	{UserID: 6, Name: "life advice", Price: 10000, Stock: 9999, Description: "Expensive but awesome."},
	{UserID: 6, Name: "skumtomtar", Price: 500, Stock: 3, Description: "Expensive but tasty."},
}

// seedParts belong to the eighth seeded product.
var seedParts = []struct {
	name  string
	bonus int64
}{
	{"duck", 100},
	{"goose", 125},
	{"chicken", 150},
}

// Seed fills freshly reset tables with the demo users, products and parts.
func (s *Store) Seed(ctx context.Context) error {
	userIDs := make([]int64, len(seedUsers))
	for i, u := range seedUsers {
		hash, err := s.Users.hasher.Hash(u.password)
		if err != nil {
			return err
		}
		admin := 0
		if u.admin {
			admin = 1
		}
		id, err := s.Users.insert(ctx, "", []string{"username", "email", "pass_hash", "birth", "description", "admin"},
			u.username, u.email, hash, u.birth, u.description, admin)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
		userIDs[i] = id
	}

	productIDs := make([]int64, len(seedProducts))
	for i, p := range seedProducts {
		p.UserID = userIDs[p.UserID-1]
		id, err := s.Products.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
		productIDs[i] = id
	}

	for _, part := range seedParts {
		if _, err := s.Parts.Create(ctx, productIDs[7], "animal", part.name, part.bonus); err != nil {
			return fmt.Errorf("failed to seed part %s: %w", part.name, err)
		}
	}

	s.logger.Info("Seeded database",
		zap.Int("users", len(userIDs)),
		zap.Int("products", len(productIDs)),
		zap.Int("parts", len(seedParts)))
	return nil
}
