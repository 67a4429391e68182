package model

import (
	"github.com/shopspring/decimal"
)

// 活动类型，供链下观察者按事件重建状态
const (
	ActivityOrderExecuted    = int8(1)
	ActivityOfferExecuted    = int8(2)
	ActivityAuctionCreated   = int8(3)
	ActivityBidPlaced        = int8(4)
	ActivityAuctionSettled   = int8(5)
	ActivityAuctionCancelled = int8(6)
	ActivityBidWithdrawn     = int8(7)
	ActivityOrderCreated     = int8(8)
	ActivityOrderCancelled   = int8(9)
)

// Activity 事件流水，携带参与方与完整的费用拆分
type Activity struct {
	Id             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ActivityType   int8            `gorm:"column:activity_type;index;not null"`
	Maker          string          `gorm:"column:maker;type:varchar(42);index"` // 卖方 / 拍卖发起人 / 出价人
	Taker          string          `gorm:"column:taker;type:varchar(42);index"` // 对手方
	CollectionId   int64           `gorm:"column:collection_id;index:idx_activity_item"`
	TokenId        string          `gorm:"column:token_id;index:idx_activity_item;type:varchar(128)"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(65,0);not null;default:0"`
	RoyaltyAmount  decimal.Decimal `gorm:"column:royalty_amount;type:decimal(65,0);not null;default:0"`
	FeeAmount      decimal.Decimal `gorm:"column:fee_amount;type:decimal(65,0);not null;default:0"`
	SellerProceeds decimal.Decimal `gorm:"column:seller_proceeds;type:decimal(65,0);not null;default:0"`
	AuctionId      int64           `gorm:"column:auction_id;index;not null;default:0"`
	OrderId        string          `gorm:"column:order_id;type:varchar(40)"`
	EventTime      int64           `gorm:"column:event_time;index;autoCreateTime"`
}

func (Activity) TableName() string {
	return "es_activity"
}
