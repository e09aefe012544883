package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/asaidimu/storefront/core/persistence"
	"github.com/asaidimu/storefront/core/statement"
	"go.uber.org/zap"
)

// Products is the repository of the products table.
type Products struct {
	repository
	topCount int
}

// NewProduct is the input of Products.Create.
type NewProduct struct {
	UserID      int64
	Name        string
	Price       int64
	Stock       int64
	Description string
}

var withOwner = statement.Join{Table: TableUsers, On: "products.user_id = users.id"}

// detailConfig selects products with their owner's username and one row per
// part.
func detailConfig(filter statement.Node) statement.Config {
	return statement.Config{
		Columns: []statement.Column{
			{Expression: "products.*"},
			{Expression: "product_parts.groupname"},
			{Expression: "product_parts.partname"},
			{Expression: "product_parts.bonus_price"},
			statement.As("product_parts.id", "part_id"),
			{Expression: "users.username"},
		},
		Joins: []statement.Join{
			withOwner,
			{Table: TableProductParts, On: "products.id = product_parts.product_id"},
		},
		Filter:  filter,
		OrderBy: []statement.Order{{Direction: statement.Asc, Expression: "products.id"}, {Direction: statement.Asc, Expression: "product_parts.id"}},
	}
}

// collectProducts folds joined product/part rows into products, keeping the
// order in which each product first appears.
func collectProducts(rows []persistence.Row) []Product {
	index := map[int64]int{}
	products := []Product{}
	for _, row := range rows {
		id := asInt64(row["id"])
		i, ok := index[id]
		if !ok {
			products = append(products, productFromRow(row))
			i = len(products) - 1
			index[id] = i
		}
		if row["groupname"] == nil {
			continue
		}
		products[i].addPart(Part{
			ID:         asInt64(row["part_id"]),
			ProductID:  id,
			UserID:     asInt64(row["user_id"]),
			GroupName:  asString(row["groupname"]),
			PartName:   asString(row["partname"]),
			BonusPrice: asInt64(row["bonus_price"]),
		})
	}
	return products
}

func (p *Products) list(ctx context.Context, cfg statement.Config, params ...any) ([]Product, error) {
	rows, err := p.query(ctx, cfg, params...)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromRow(row))
	}
	return products, nil
}

// TopRated returns up to n reviewed products, best average rating first. A
// non-positive n means the store's default count.
func (p *Products) TopRated(ctx context.Context, n int) ([]Product, error) {
	if n <= 0 {
		n = p.topCount
	}
	return p.list(ctx, statement.Config{
		Columns: statement.Cols("products.*", "users.username"),
		Joins:   []statement.Join{withOwner},
		Filter:  statement.Of(statement.Cond("products.reviewcount", ">", statement.Literal{SQL: "0"})),
		OrderBy: []statement.Order{{Direction: statement.Desc, Expression: "CAST(products.stars AS REAL)/products.reviewcount"}},
		Limit:   statement.IntPtr(n),
	})
}

// AllByUser returns the products of a user with their parts.
func (p *Products) AllByUser(ctx context.Context, userID int64) ([]Product, error) {
	rows, err := p.query(ctx, detailConfig(statement.Col("products.user_id")), userID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows), nil
}

// GetByID returns a product with its parts.
func (p *Products) GetByID(ctx context.Context, id int64) (*Product, error) {
	rows, err := p.query(ctx, detailConfig(statement.Col("products.id")), id)
	if err != nil {
		return nil, err
	}
	products := collectProducts(rows)
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

// SearchByName returns the products whose name starts with prefix, ignoring
// case. Wildcards in prefix only widen the LIKE match; rows that do not
// literally start with prefix are dropped afterwards.
func (p *Products) SearchByName(ctx context.Context, prefix string) ([]Product, error) {
	products, err := p.list(ctx, statement.Config{
		Columns: statement.Cols("products.*", "users.username"),
		Joins:   []statement.Join{withOwner},
		Filter:  statement.Of(statement.Cond("products.name", "LIKE", statement.Placeholder{})),
		OrderBy: []statement.Order{{Direction: statement.Asc, Expression: "products.name"}},
	}, prefix+"%")
	if err != nil {
		return nil, err
	}

	matched := products[:0]
	for _, product := range products {
		if strings.HasPrefix(strings.ToLower(product.Name), strings.ToLower(prefix)) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

// Create adds a product for np.UserID. The name must be non-empty and unique
// among that user's products.
func (p *Products) Create(ctx context.Context, np NewProduct) (int64, error) {
	if strings.TrimSpace(np.Name) == "" {
		return 0, ErrInvalidProduct
	}
	_, err := p.first(ctx, statement.Config{
		Columns: statement.Cols("name"),
		Filter:  statement.Match("user_id", "name"),
		Limit:   statement.IntPtr(1),
	}, np.UserID, np.Name)
	if err == nil {
		return 0, ErrDuplicateProduct
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	id, err := p.insert(ctx, "", []string{"user_id", "name", "price", "stock", "description"},
		np.UserID, np.Name, np.Price, np.Stock, np.Description)
	if err != nil {
		return 0, err
	}
	p.logger.Info("Created product", zap.Int64("product_id", id), zap.Int64("user_id", np.UserID))
	return id, nil
}

// Save writes the editable columns of product.
func (p *Products) Save(ctx context.Context, product *Product) error {
	n, err := p.update(ctx, statement.Config{
		Set:    statement.SetCols("name", "price", "stock", "description", "user_id"),
		Filter: statement.Col("id"),
	}, product.Name, product.Price, product.Stock, product.Description, product.UserID, product.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product with its parts and comments.
func (p *Products) Delete(ctx context.Context, id int64) error {
	for _, table := range []string{TableProductParts, TableProductComments} {
		if _, err := p.delete(ctx, statement.Config{Table: table, Filter: statement.Col("product_id")}, id); err != nil {
			return err
		}
	}
	n, err := p.delete(ctx, statement.Config{Filter: statement.Col("id")}, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
