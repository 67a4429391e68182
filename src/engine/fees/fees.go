package fees

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

const (
	BpsDenominator    = 10000
	MaxProtocolFeeBps = 500  // 平台费上限 5%
	MaxRoyaltyBps     = 1000 // 版税上限 10%
)

// MinTradePrice 最低成交价，粉尘单直接拒绝
var MinTradePrice = decimal.NewFromInt(100)

// Split 一次结算的完整拆分，royalty + fee + seller == price 恒成立
type Split struct {
	Price           decimal.Decimal
	RoyaltyAmount   decimal.Decimal
	RoyaltyReceiver string
	FeeAmount       decimal.Decimal
	FeeReceiver     string
	SellerProceeds  decimal.Decimal
}

// Resolver 费用/版税解析器，只读引擎状态的纯函数
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve 按集合版税与全局平台费拆分成交价
// 基点整数地板除法，取整余量全部归卖方，费用方无法通过舍入套利
func (r *Resolver) Resolve(tx *gorm.DB, collectionId int64, price decimal.Decimal) (*Split, error) {
	if price.LessThan(MinTradePrice) {
		return nil, errcode.ErrPriceTooLow
	}

	var collection model.Collection
	if err := tx.Where("collection_id = ?", collectionId).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrCollectionNotFound
		}
		return nil, errors.Wrap(err, "failed on load collection")
	}

	var market model.MarketConfig
	if err := tx.Where("id = 1").First(&market).Error; err != nil {
		return nil, errors.Wrap(err, "failed on load market config")
	}

	royaltyBps := collection.RoyaltyBps
	if royaltyBps > MaxRoyaltyBps {
		royaltyBps = MaxRoyaltyBps
	}
	feeBps := market.FeeBps
	if feeBps > MaxProtocolFeeBps {
		feeBps = MaxProtocolFeeBps
	}
	// 无接收地址的份额并入卖方所得，资金不凭空消失
	if collection.RoyaltyReceiver == "" {
		royaltyBps = 0
	}
	if market.FeeReceiver == "" {
		feeBps = 0
	}

	split := &Split{
		Price:           price,
		RoyaltyAmount:   mulBpsFloor(price, royaltyBps),
		RoyaltyReceiver: collection.RoyaltyReceiver,
		FeeAmount:       mulBpsFloor(price, feeBps),
		FeeReceiver:     market.FeeReceiver,
	}
	split.SellerProceeds = price.Sub(split.RoyaltyAmount).Sub(split.FeeAmount)
	return split, nil
}

// mulBpsFloor 基点乘法，向下取整
func mulBpsFloor(amount decimal.Decimal, bps int64) decimal.Decimal {
	if bps <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(bps)).Div(decimal.NewFromInt(BpsDenominator)).Floor()
}

// ValidateFeeBps 校验平台费设置
func ValidateFeeBps(bps int64) error {
	if bps < 0 || bps > MaxProtocolFeeBps {
		return errcode.ErrFeeTooHigh
	}
	return nil
}

// ValidateRoyaltyBps 校验集合版税设置
func ValidateRoyaltyBps(bps int64) error {
	if bps < 0 || bps > MaxRoyaltyBps {
		return errcode.ErrRoyaltyTooHigh
	}
	return nil
}
