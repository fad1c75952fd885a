package domain

import (
	"strings"

	"gorm.io/gorm"
)

// Variation 商品款式：一个颜色/尺码/库存组合
type Variation struct {
	gorm.Model
	ProductID uint   `gorm:"column:product_id;index;not null" json:"product_id"`
	Color     string `gorm:"column:color;type:varchar(50);not null" json:"color"`
	Size      string `gorm:"column:size;type:varchar(50);not null" json:"size"`
	SKU       string `gorm:"column:sku;type:varchar(64);uniqueIndex" json:"sku"`
	Barcode   string `gorm:"column:barcode;type:varchar(64)" json:"barcode"`
	Quantity  int    `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ImageURL  string `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
}

func (Variation) TableName() string { return "variations" }

// SameDimensions 判断款式是否落在同一 (color, size) 组合上，大小写不敏感。
func (v *Variation) SameDimensions(color, size string) bool {
	return strings.EqualFold(v.Color, color) && strings.EqualFold(v.Size, size)
}

// InStock 是否还有库存
func (v *Variation) InStock() bool { return v.Quantity > 0 }

func (v *Variation) matches(color, size string) bool {
	if color != "" && !strings.EqualFold(v.Color, color) {
		return false
	}
	if size != "" && !strings.EqualFold(v.Size, size) {
		return false
	}
	return true
}

// SelectVariation 按买家选择的颜色/尺码解析出唯一款式。
// 两个维度都给出时要求同时匹配；只给出一个维度时按该维度过滤，
// 由调用方负责提示缺失的维度。目录不变式（(color,size) 唯一）成立时
// 至多命中一行；存在遗留的重复行时按输入顺序返回第一个命中。
// 无命中返回 ErrVariationNotFound，纯函数，无副作用。
func SelectVariation(variations []Variation, color, size string) (*Variation, error) {
	for i := range variations {
		if variations[i].matches(color, size) {
			return &variations[i], nil
		}
	}
	return nil, ErrVariationNotFound
}

// FilterVariations 返回匹配给定维度的全部款式，维度为空串时不参与过滤。
// 用于渲染剩余可选维度（例如选定颜色后列出可选尺码）。
func FilterVariations(variations []Variation, color, size string) []Variation {
	var out []Variation
	for i := range variations {
		if variations[i].matches(color, size) {
			out = append(out, variations[i])
		}
	}
	return out
}
