package shop

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/asaidimu/storefront/core/persistence"
	"github.com/asaidimu/storefront/core/statement"
	"go.uber.org/zap"
)

// Purchases is the repository of the purchases table and its
// purchase_configs.
type Purchases struct {
	repository
	now func() time.Time
}

func purchaseConfig(filter statement.Node) statement.Config {
	return statement.Config{
		Columns: []statement.Column{
			{Expression: "purchases.*"},
			{Expression: "purchase_configs.groupname"},
			{Expression: "purchase_configs.partname"},
			{Expression: "purchase_configs.bonus_price"},
			statement.As("purchase_configs.id", "part_id"),
		},
		Joins:  []statement.Join{{Table: TablePurchaseConfigs, On: "purchases.id = purchase_configs.purchase_id"}},
		Filter: filter,
		OrderBy: []statement.Order{
			{Direction: statement.Desc, Expression: "purchases.id"},
			{Direction: statement.Asc, Expression: "purchase_configs.id"},
		},
	}
}

// collectPurchases folds joined purchase/config rows into purchases.
func collectPurchases(rows []persistence.Row) []Purchase {
	purchases := []Purchase{}
	for _, row := range rows {
		id := asInt64(row["id"])
		if len(purchases) == 0 || purchases[len(purchases)-1].ID != id {
			purchases = append(purchases, purchaseFromRow(row))
		}
		if c, ok := configFromRow(row); ok {
			last := &purchases[len(purchases)-1]
			last.Configs = append(last.Configs, c)
		}
	}
	return purchases
}

// AddToCart takes one unit of product out of stock and records a purchase of
// it for userID with the chosen parts, given as group name to part name.
// Choices naming a group or part the product does not have are ignored.
func (p *Purchases) AddToCart(ctx context.Context, userID int64, product *Product, choices map[string]string) (int64, error) {
	n, err := p.update(ctx, statement.Config{
		Table: TableProducts,
		Set:   []statement.Assignment{statement.Add("stock")},
		Filter: statement.Of(
			statement.Col("id"),
			statement.Cond("stock", ">", statement.Literal{SQL: "0"}),
		),
	}, -1, product.ID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: product %d", ErrOutOfStock, product.ID)
	}

	id, err := p.insert(ctx, "",
		[]string{"user_id", "product_id", "product_name", "base_price", "shop_owner", "shop_owner_name", "timestamp"},
		userID, product.ID, product.Name, product.Price, product.UserID, product.Username, p.now().Format(timestampLayout))
	if err != nil {
		return 0, err
	}

	groups := make([]string, 0, len(choices))
	for group := range choices {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		part, ok := product.Part(group, choices[group])
		if !ok {
			p.logger.Debug("Ignoring unknown part", zap.String("group", group), zap.String("part", choices[group]))
			continue
		}
		if _, err := p.insert(ctx, TablePurchaseConfigs, []string{"purchase_id", "groupname", "partname", "bonus_price"},
			id, part.GroupName, part.PartName, part.BonusPrice); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Cart returns the purchases of userID that are not checked out, newest
// first.
func (p *Purchases) Cart(ctx context.Context, userID int64) ([]Purchase, error) {
	rows, err := p.query(ctx, purchaseConfig(statement.Match("purchases.user_id", "purchases.checked_out")), userID, 0)
	if err != nil {
		return nil, err
	}
	return collectPurchases(rows), nil
}

// GetByID returns a purchase with its chosen parts.
func (p *Purchases) GetByID(ctx context.Context, id int64) (*Purchase, error) {
	rows, err := p.query(ctx, purchaseConfig(statement.Col("purchases.id")), id)
	if err != nil {
		return nil, err
	}
	purchases := collectPurchases(rows)
	if len(purchases) == 0 {
		return nil, ErrNotFound
	}
	return &purchases[0], nil
}

// Checkout marks every open purchase of userID as checked out and reports
// how many there were.
func (p *Purchases) Checkout(ctx context.Context, userID int64) (int64, error) {
	return p.update(ctx, statement.Config{
		Set:    statement.SetCols("checked_out"),
		Filter: statement.Match("user_id", "checked_out"),
	}, 1, userID, 0)
}

// Delete removes a purchase and its chosen parts and puts the unit back in
// stock.
func (p *Purchases) Delete(ctx context.Context, purchase *Purchase) error {
	if _, err := p.delete(ctx, statement.Config{Table: TablePurchaseConfigs, Filter: statement.Col("purchase_id")}, purchase.ID); err != nil {
		return err
	}
	n, err := p.delete(ctx, statement.Config{Filter: statement.Col("id")}, purchase.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	_, err = p.update(ctx, statement.Config{
		Table:  TableProducts,
		Set:    []statement.Assignment{statement.Add("stock")},
		Filter: statement.Col("id"),
	}, 1, purchase.ProductID)
	return err
}
