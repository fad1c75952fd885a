package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart 购物车聚合根，每个用户一辆。
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string { return "carts" }

// CartItem 购物车条目，按款式（variation）区分。
// UnitPrice 是加入时的快照价，展示与结算以目录服务实时报价为准。
type CartItem struct {
	gorm.Model
	CartID      uint            `gorm:"column:cart_id;index;not null" json:"cart_id"`
	ProductID   uint            `gorm:"column:product_id;not null" json:"product_id"`
	VariationID uint            `gorm:"column:variation_id;index;not null" json:"variation_id"`
	ProductName string          `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	Color       string          `gorm:"column:color;type:varchar(50)" json:"color"`
	Size        string          `gorm:"column:size;type:varchar(50)" json:"size"`
	SKU         string          `gorm:"column:sku;type:varchar(64)" json:"sku"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

// LineTotal 行小计
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddItem 加入款式。已存在同一款式时合并数量。
// 合并后的数量不超过库存：超出时收敛到库存并返回 clamped=true。
// 库存为零时拒绝加入并返回 ErrOutOfStock。
func (c *Cart) AddItem(item CartItem, stock int) (clamped bool, err error) {
	if item.Quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	if stock <= 0 {
		return false, ErrOutOfStock
	}
	for i := range c.Items {
		if c.Items[i].VariationID == item.VariationID {
			merged := c.Items[i].Quantity + item.Quantity
			if merged > stock {
				merged = stock
				clamped = true
			}
			c.Items[i].Quantity = merged
			c.Items[i].UnitPrice = item.UnitPrice
			return clamped, nil
		}
	}
	if item.Quantity > stock {
		item.Quantity = stock
		clamped = true
	}
	c.Items = append(c.Items, item)
	return clamped, nil
}

// UpdateQuantity 修改某款式的数量，同样受库存收敛约束。
func (c *Cart) UpdateQuantity(variationID uint, quantity, stock int) (clamped bool, err error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].VariationID == variationID {
			if stock <= 0 {
				return false, ErrOutOfStock
			}
			if quantity > stock {
				quantity = stock
				clamped = true
			}
			c.Items[i].Quantity = quantity
			return clamped, nil
		}
	}
	return false, ErrItemNotFound
}

// RemoveItem 移除某款式
func (c *Cart) RemoveItem(variationID uint) error {
	for i := range c.Items {
		if c.Items[i].VariationID == variationID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal 按快照价计算的合计
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// ItemCount 所有条目数量之和
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}
