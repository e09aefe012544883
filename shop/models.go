package shop

import (
	"strconv"

	"github.com/asaidimu/storefront/core/persistence"
)

// User is a registered account.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PassHash    string `json:"-"`
	Birth       string `json:"birth"`
	Stars       int64  `json:"stars"`
	ReviewCount int64  `json:"reviewcount"`
	Description string `json:"description"`
	Admin       bool   `json:"admin"`
}

// Rating is the average star rating, or 0 without reviews.
func (u *User) Rating() float64 {
	return rating(u.Stars, u.ReviewCount)
}

// Product is an item offered by a user. Addons holds its parts keyed by group
// name and is only filled by the lookups that join product_parts.
type Product struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Stock       int64             `json:"stock"`
	Description string            `json:"description"`
	Stars       int64             `json:"stars"`
	ReviewCount int64             `json:"reviewcount"`
	UserID      int64             `json:"user_id"`
	Username    string            `json:"username"`
	Addons      map[string][]Part `json:"addons,omitempty"`
}

// Rating is the average star rating, or 0 without reviews.
func (p *Product) Rating() float64 {
	return rating(p.Stars, p.ReviewCount)
}

// Part returns the part called name in group.
func (p *Product) Part(group, name string) (Part, bool) {
	for _, part := range p.Addons[group] {
		if part.PartName == name {
			return part, true
		}
	}
	return Part{}, false
}

func (p *Product) addPart(part Part) {
	if p.Addons == nil {
		p.Addons = map[string][]Part{}
	}
	p.Addons[part.GroupName] = append(p.Addons[part.GroupName], part)
}

// Part is a selectable option of a product, e.g. group "animal", part "duck".
type Part struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	UserID     int64  `json:"user_id"`
	GroupName  string `json:"groupname"`
	PartName   string `json:"partname"`
	BonusPrice int64  `json:"bonus_price"`
}

// ProductComment is a review of a product.
type ProductComment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	ProductID int64  `json:"product_id"`
	Timestamp string `json:"timestamp"`
	Rating    int64  `json:"rating"`
	Comment   string `json:"comment"`
}

// ProfileComment is a review left by a visitor on a user's profile. Username
// is the visitor's.
type ProfileComment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	VisitorID int64  `json:"visitor_id"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	Rating    int64  `json:"rating"`
	Comment   string `json:"comment"`
}

// Purchase is a cart entry, a snapshot of the product at the time it was
// added.
type Purchase struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	ProductID     int64            `json:"product_id"`
	ProductName   string           `json:"product_name"`
	BasePrice     int64            `json:"base_price"`
	ShopOwner     int64            `json:"shop_owner"`
	ShopOwnerName string           `json:"shop_owner_name"`
	Timestamp     string           `json:"timestamp"`
	CheckedOut    bool             `json:"checked_out"`
	Configs       []PurchaseConfig `json:"configs"`
}

// Total is the base price plus the bonus price of every chosen part.
func (p *Purchase) Total() int64 {
	total := p.BasePrice
	for _, c := range p.Configs {
		total += c.BonusPrice
	}
	return total
}

// PurchaseConfig is a part chosen for a purchase.
type PurchaseConfig struct {
	ID         int64  `json:"id"`
	GroupName  string `json:"groupname"`
	PartName   string `json:"partname"`
	BonusPrice int64  `json:"bonus_price"`
}

func rating(stars, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(stars) / float64(count)
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return strconv.FormatInt(asInt64(v), 10)
	}
}

func userFromRow(row persistence.Row) User {
	return User{
		ID:          asInt64(row["id"]),
		Username:    asString(row["username"]),
		Email:       asString(row["email"]),
		PassHash:    asString(row["pass_hash"]),
		Birth:       asString(row["birth"]),
		Stars:       asInt64(row["stars"]),
		ReviewCount: asInt64(row["reviewcount"]),
		Description: asString(row["description"]),
		Admin:       asInt64(row["admin"]) != 0,
	}
}

func productFromRow(row persistence.Row) Product {
	return Product{
		ID:          asInt64(row["id"]),
		Name:        asString(row["name"]),
		Price:       asInt64(row["price"]),
		Stock:       asInt64(row["stock"]),
		Description: asString(row["description"]),
		Stars:       asInt64(row["stars"]),
		ReviewCount: asInt64(row["reviewcount"]),
		UserID:      asInt64(row["user_id"]),
		Username:    asString(row["username"]),
	}
}

func partFromRow(row persistence.Row) Part {
	return Part{
		ID:         asInt64(row["id"]),
		ProductID:  asInt64(row["product_id"]),
		UserID:     asInt64(row["user_id"]),
		GroupName:  asString(row["groupname"]),
		PartName:   asString(row["partname"]),
		BonusPrice: asInt64(row["bonus_price"]),
	}
}

func purchaseFromRow(row persistence.Row) Purchase {
	return Purchase{
		ID:            asInt64(row["id"]),
		UserID:        asInt64(row["user_id"]),
		ProductID:     asInt64(row["product_id"]),
		ProductName:   asString(row["product_name"]),
		BasePrice:     asInt64(row["base_price"]),
		ShopOwner:     asInt64(row["shop_owner"]),
		ShopOwnerName: asString(row["shop_owner_name"]),
		Timestamp:     asString(row["timestamp"]),
		CheckedOut:    asInt64(row["checked_out"]) != 0,
		Configs:       []PurchaseConfig{},
	}
}

// configFromRow reads the purchase_configs columns of a joined purchase row.
func configFromRow(row persistence.Row) (PurchaseConfig, bool) {
	if row["part_id"] == nil || row["groupname"] == nil {
		return PurchaseConfig{}, false
	}
	return PurchaseConfig{
		ID:         asInt64(row["part_id"]),
		GroupName:  asString(row["groupname"]),
		PartName:   asString(row["partname"]),
		BonusPrice: asInt64(row["bonus_price"]),
	}, true
}
