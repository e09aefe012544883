package shop

import (
	"context"

	"github.com/asaidimu/storefront/core/statement"
)

// Parts is the repository of the product_parts table.
type Parts struct {
	repository
}

func partConfig(filter statement.Node) statement.Config {
	return statement.Config{
		Columns: statement.Cols("product_parts.*", "products.user_id"),
		Joins:   []statement.Join{{Table: TableProducts, On: "product_parts.product_id = products.id"}},
		Filter:  filter,
		OrderBy: []statement.Order{{Direction: statement.Asc, Expression: "product_parts.id"}},
	}
}

// GetByID returns a part with the id of the user owning its product.
func (p *Parts) GetByID(ctx context.Context, id int64) (*Part, error) {
	cfg := partConfig(statement.Col("product_parts.id"))
	cfg.Limit = statement.IntPtr(1)
	row, err := p.first(ctx, cfg, id)
	if err != nil {
		return nil, err
	}
	part := partFromRow(row)
	return &part, nil
}

// GroupsByProduct returns the parts of a product keyed by group name.
func (p *Parts) GroupsByProduct(ctx context.Context, productID int64) (map[string][]Part, error) {
	rows, err := p.query(ctx, partConfig(statement.Col("product_parts.product_id")), productID)
	if err != nil {
		return nil, err
	}
	groups := map[string][]Part{}
	for _, row := range rows {
		part := partFromRow(row)
		groups[part.GroupName] = append(groups[part.GroupName], part)
	}
	return groups, nil
}

// Create adds a part to a product and returns its id.
func (p *Parts) Create(ctx context.Context, productID int64, group, name string, bonusPrice int64) (int64, error) {
	return p.insert(ctx, "", []string{"product_id", "groupname", "partname", "bonus_price"},
		productID, group, name, bonusPrice)
}

// Save writes the name and price of part.
func (p *Parts) Save(ctx context.Context, part *Part) error {
	n, err := p.update(ctx, statement.Config{
		Set:    statement.SetCols("partname", "bonus_price"),
		Filter: statement.Col("id"),
	}, part.PartName, part.BonusPrice, part.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a part.
func (p *Parts) Delete(ctx context.Context, id int64) error {
	n, err := p.delete(ctx, statement.Config{Filter: statement.Col("id")}, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGroup removes every part of group on a product and reports how many
// were removed.
func (p *Parts) DeleteGroup(ctx context.Context, productID int64, group string) (int64, error) {
	return p.delete(ctx, statement.Config{Filter: statement.Match("product_id", "groupname")}, productID, group)
}
