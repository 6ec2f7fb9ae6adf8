package domain

import "time"

// UnlimitedStock marks a shop item that never runs out.
const UnlimitedStock = -1

// DefaultShopStock is applied when an admin creates an item without a stock value.
const DefaultShopStock = 999

// RedemptionStatusCompleted is written to every redemption log row.
const RedemptionStatusCompleted = "completed"

// ShopItem is a reward purchasable with YC.
type ShopItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CostYC      int       `json:"cost_yc"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit can be redeemed.
func (i *ShopItem) InStock() bool {
	return i.Stock == UnlimitedStock || i.Stock > 0
}

// Redemption is an append-only purchase record.
type Redemption struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ShopItemID string    `json:"shop_item_id"`
	CostYC     int       `json:"cost_yc"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// RedemptionResult is returned after a successful redemption.
type RedemptionResult struct {
	ItemID   string   `json:"item_id"`
	CostYC   int      `json:"cost_yc"`
	YCBefore int      `json:"yc_before"`
	YCAfter  int      `json:"yc_after"`
	Profile  *Profile `json:"profile"`
}

// DefaultShopItems is the seed shop catalog.
var DefaultShopItems = []ShopItem{
	{ID: "s1", Title: "治愈币", Description: "兑换一次工坊茶歇", CostYC: 100, Stock: DefaultShopStock, IsActive: true},
	{ID: "s2", Title: "扭蛋代币", Description: "限定扭蛋机一次", CostYC: 300, Stock: DefaultShopStock, IsActive: true},
	{ID: "s3", Title: "全糖奶茶券", Description: "合作奶茶店一杯", CostYC: 2000, Stock: DefaultShopStock, IsActive: true},
	{ID: "s4", Title: "禁忌图解", Description: "进阶钩织图解一份", CostYC: 1000, Stock: DefaultShopStock, IsActive: true},
}
