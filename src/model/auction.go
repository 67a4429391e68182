package model

import (
	"github.com/shopspring/decimal"
)

// 拍卖状态
const (
	AuctionStatusActive    = int8(0)
	AuctionStatusSettled   = int8(1)
	AuctionStatusCancelled = int8(2)
)

// Auction 英式拍卖，token 创建即托管，settle/cancel 恰好释放一次
type Auction struct {
	Id              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Seller          string          `gorm:"column:seller;type:varchar(42);index;not null"`
	CollectionId    int64           `gorm:"column:collection_id;index:idx_auction_item;not null"`
	TokenId         string          `gorm:"column:token_id;index:idx_auction_item;type:varchar(128);not null"`
	StartPrice      decimal.Decimal `gorm:"column:start_price;type:decimal(65,0);not null"`
	MinIncrementBps int64           `gorm:"column:min_increment_bps;not null"`
	StartTime       int64           `gorm:"column:start_time;not null"`
	EndTime         int64           `gorm:"column:end_time;index;not null"` // 延时出价会向后推
	HighestBidder   string          `gorm:"column:highest_bidder;type:varchar(42)"`
	HighestBid      decimal.Decimal `gorm:"column:highest_bid;type:decimal(65,0);not null;default:0"`
	BidCount        int64           `gorm:"column:bid_count;not null;default:0"`
	Status          int8            `gorm:"column:status;index;not null;default:0"`
	SettleTime      int64           `gorm:"column:settle_time;not null;default:0"`
	CreateTime      int64           `gorm:"column:create_time;autoCreateTime"`
	UpdateTime      int64           `gorm:"column:update_time;autoUpdateTime"`
}

func (Auction) TableName() string {
	return "es_auction"
}

// AuctionBid 每个出价人在一场拍卖中锁定的资金
// 最高出价包含在 Amount 内，被超过后即成为可提取余额
type AuctionBid struct {
	Id         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	AuctionId  int64           `gorm:"column:auction_id;uniqueIndex:uk_auction_bidder;not null"`
	Bidder     string          `gorm:"column:bidder;type:varchar(42);uniqueIndex:uk_auction_bidder;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null;default:0"` // 当前锁定总额
	LastBid    decimal.Decimal `gorm:"column:last_bid;type:decimal(65,0);not null;default:0"`
	UpdateTime int64           `gorm:"column:update_time;autoUpdateTime"`
	CreateTime int64           `gorm:"column:create_time;autoCreateTime"`
}

func (AuctionBid) TableName() string {
	return "es_auction_bid"
}
