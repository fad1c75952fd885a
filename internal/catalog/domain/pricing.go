package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TierType 定价规则类型
type TierType string

const (
	// TierQuantity 数量阶梯：购买数量落在 [FromQuantity, ToQuantity] 内时生效
	TierQuantity TierType = "QUANTITY"
	// TierDate 日期区间：当前时间落在 [StartsAt, EndsAt] 内时生效
	TierDate TierType = "DATE"
)

// PricingTier 动态定价规则，覆盖商品基础售价。
type PricingTier struct {
	gorm.Model
	ProductID    uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	Type         TierType        `gorm:"column:type;type:varchar(20);not null" json:"type"`
	FromQuantity int             `gorm:"column:from_quantity" json:"from_quantity"`
	ToQuantity   int             `gorm:"column:to_quantity" json:"to_quantity"`
	StartsAt     time.Time       `gorm:"column:starts_at" json:"starts_at"`
	EndsAt       time.Time       `gorm:"column:ends_at" json:"ends_at"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
}

func (PricingTier) TableName() string { return "pricing_tiers" }

// Validate 在数据录入边界拒绝非法规则；解析器本身假定规则已经合法。
func (t *PricingTier) Validate() error {
	switch t.Type {
	case TierQuantity:
		if t.FromQuantity <= 0 || t.ToQuantity < t.FromQuantity {
			return ErrInvalidTierRange
		}
	case TierDate:
		if t.StartsAt.IsZero() || t.EndsAt.IsZero() || t.EndsAt.Before(t.StartsAt) {
			return ErrInvalidTierRange
		}
	default:
		return ErrInvalidTierRange
	}
	if t.Amount.IsNegative() {
		return ErrInvalidTierRange
	}
	return nil
}

// PriceContext 价格解析上下文：按数量和/或按时间点
type PriceContext struct {
	Quantity int
	At       time.Time
}

// appliesTo 判断规则对给定上下文是否生效，区间两端均为闭区间。
func (t *PricingTier) appliesTo(ctx PriceContext) bool {
	switch t.Type {
	case TierQuantity:
		return ctx.Quantity >= t.FromQuantity && ctx.Quantity <= t.ToQuantity
	case TierDate:
		if ctx.At.IsZero() {
			return false
		}
		return !ctx.At.Before(t.StartsAt) && !ctx.At.After(t.EndsAt)
	}
	return false
}

// tighter 判断 a 是否比 b 更具体。
// 宽度在各自维度内比较；数量规则与日期规则同时命中时数量规则优先，
// 它针对的是当前这一行的购买量，而日期窗口是全店范围的。
// 宽度相等时保留持久化顺序靠前的一条。
func tighter(a, b *PricingTier) bool {
	if a.Type != b.Type {
		return a.Type == TierQuantity
	}
	switch a.Type {
	case TierQuantity:
		return a.ToQuantity-a.FromQuantity < b.ToQuantity-b.FromQuantity
	case TierDate:
		return a.EndsAt.Sub(a.StartsAt) < b.EndsAt.Sub(b.StartsAt)
	}
	return false
}

// ResolvePrice 解析有效单价。
// 逐条评估规则的生效条件，多条同时命中时最窄区间优先；无命中回落到
// 基础售价。金额全程使用 decimal，两位小数的舍入只发生在展示边界。
// 纯函数：相同输入恒产出相同输出，且从不失败。
func ResolvePrice(basePrice decimal.Decimal, tiers []PricingTier, ctx PriceContext) decimal.Decimal {
	best := -1
	for i := range tiers {
		if !tiers[i].appliesTo(ctx) {
			continue
		}
		if best < 0 || tighter(&tiers[i], &tiers[best]) {
			best = i
		}
	}
	if best < 0 {
		return basePrice
	}
	return tiers[best].Amount
}
