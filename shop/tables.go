package shop

import "github.com/asaidimu/storefront/core/schema"

// Tables returns the definitions of every storefront table.
func Tables() []schema.TableDefinition {
	return []schema.TableDefinition{
		{
			Name: TableUsers,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				{Name: "username", Type: schema.FieldTypeString, Required: schema.Bool(true), Unique: schema.Bool(true), Collate: "NOCASE"},
				{Name: "email", Type: schema.FieldTypeString, Required: schema.Bool(true), Unique: schema.Bool(true)},
				schema.Text("pass_hash"),
				schema.Text("birth"),
				schema.Integer("stars").WithDefault(0),
				schema.Integer("reviewcount").WithDefault(0),
				schema.Text("description").Optional().WithDefault(""),
				{Name: "admin", Type: schema.FieldTypeBoolean, Required: schema.Bool(true), Default: false},
			},
		},
		{
			Name: TableProfileComments,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				schema.Integer("user_id"),
				schema.Integer("visitor_id"),
				schema.Text("timestamp"),
				schema.Integer("rating").Optional(),
				schema.Text("comment"),
			},
			Indexes: []schema.IndexDefinition{{Fields: []string{"user_id", "visitor_id"}, Type: schema.IndexTypeUnique}},
		},
		{
			Name: TableProducts,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				{Name: "name", Type: schema.FieldTypeString, Required: schema.Bool(true), Collate: "NOCASE"},
				schema.Integer("price"),
				schema.Integer("stars").WithDefault(0),
				schema.Integer("reviewcount").WithDefault(0),
				schema.Integer("stock"),
				schema.Text("description").WithDefault(""),
				schema.Integer("user_id"),
			},
			Indexes: []schema.IndexDefinition{{Fields: []string{"user_id"}, Type: schema.IndexTypeNormal}},
		},
		{
			Name: TableProductParts,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				schema.Integer("product_id"),
				schema.Text("groupname"),
				schema.Text("partname"),
				schema.Integer("bonus_price"),
			},
			Indexes: []schema.IndexDefinition{{Fields: []string{"product_id"}, Type: schema.IndexTypeNormal}},
		},
		{
			Name: TableProductComments,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				schema.Integer("user_id"),
				schema.Integer("product_id"),
				schema.Text("timestamp"),
				schema.Integer("rating").Optional(),
				schema.Text("comment"),
			},
			Indexes: []schema.IndexDefinition{{Fields: []string{"product_id", "user_id"}, Type: schema.IndexTypeUnique}},
		},
		{
			Name: TablePurchases,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				schema.Integer("user_id"),
				schema.Integer("product_id"),
				schema.Text("product_name"),
				schema.Integer("base_price"),
				schema.Integer("shop_owner"),
				schema.Text("shop_owner_name"),
				schema.Text("timestamp"),
				{Name: "checked_out", Type: schema.FieldTypeBoolean, Required: schema.Bool(true), Default: false},
			},
			Indexes: []schema.IndexDefinition{{Fields: []string{"user_id", "checked_out"}, Type: schema.IndexTypeNormal}},
		},
		{
			Name: TablePurchaseConfigs,
			Fields: []*schema.FieldDefinition{
				schema.ID(),
				schema.Integer("purchase_id"),
				schema.Text("groupname"),
				schema.Text("partname"),
				schema.Integer("bonus_price"),
			},
		},
	}
}
