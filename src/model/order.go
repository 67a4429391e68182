package model

import (
	"github.com/shopspring/decimal"
)

// 订单方向
const (
	SideList = int8(1) // 卖方挂单，原生资产计价
	SideBid  = int8(2) // 买方出价，包装资产计价
)

// 订单状态
const (
	OrderStatusOpen      = int8(0)
	OrderStatusFilled    = int8(1)
	OrderStatusCancelled = int8(2)
	OrderStatusExpired   = int8(3)
)

// Order 订单簿中的签名交易意图，仅作展示与撮合入口，结算以签名载荷为准
type Order struct {
	Id           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderId      string          `gorm:"column:order_id;type:varchar(40);uniqueIndex;not null"` // uuid
	Side         int8            `gorm:"column:side;uniqueIndex:uk_maker_nonce;not null"`
	Maker        string          `gorm:"column:maker;type:varchar(42);uniqueIndex:uk_maker_nonce;index;not null"`
	CollectionId int64           `gorm:"column:collection_id;index:idx_col_token;not null"`
	TokenId      string          `gorm:"column:token_id;index:idx_col_token;type:varchar(128);not null"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(65,0);not null"`
	Nonce        int64           `gorm:"column:nonce;uniqueIndex:uk_maker_nonce;not null"`
	Deadline     int64           `gorm:"column:deadline;not null"`
	Signature    string          `gorm:"column:signature;type:varchar(256);not null"`
	Status       int8            `gorm:"column:status;index;not null;default:0"`
	Taker        string          `gorm:"column:taker;type:varchar(42)"` // 成交对手方，成交后回填
	EventTime    int64           `gorm:"column:event_time;autoCreateTime"`
	UpdateTime   int64           `gorm:"column:update_time;autoUpdateTime"`
}

func (Order) TableName() string {
	return "es_order"
}

// TradeNonce nonce 账本，(signer, side, nonce) 单向消耗，永不重置
type TradeNonce struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Signer   string `gorm:"column:signer;type:varchar(42);uniqueIndex:uk_nonce;not null"`
	Side     int8   `gorm:"column:side;uniqueIndex:uk_nonce;not null"`
	Nonce    int64  `gorm:"column:nonce;uniqueIndex:uk_nonce;not null"`
	UsedTime int64  `gorm:"column:used_time;autoCreateTime"`
}

func (TradeNonce) TableName() string {
	return "es_trade_nonce"
}

// Trade 成交账本，记录每笔结算的完整经济结果
type Trade struct {
	Id              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	TradeNo         string          `gorm:"column:trade_no;type:varchar(40);uniqueIndex;not null"` // uuid
	OrderId         string          `gorm:"column:order_id;type:varchar(40);index"`                // 关联订单，拍卖成交为空
	AuctionId       int64           `gorm:"column:auction_id;index;not null;default:0"`            // 关联拍卖，订单成交为 0
	Seller          string          `gorm:"column:seller;type:varchar(42);index;not null"`
	Buyer           string          `gorm:"column:buyer;type:varchar(42);index;not null"`
	CollectionId    int64           `gorm:"column:collection_id;index;not null"`
	TokenId         string          `gorm:"column:token_id;type:varchar(128);not null"`
	Asset           string          `gorm:"column:asset;type:varchar(16);not null"` // 结算资产 (native / weth)
	Price           decimal.Decimal `gorm:"column:price;type:decimal(65,0);not null"`
	RoyaltyAmount   decimal.Decimal `gorm:"column:royalty_amount;type:decimal(65,0);not null"`
	RoyaltyReceiver string          `gorm:"column:royalty_receiver;type:varchar(42)"`
	FeeAmount       decimal.Decimal `gorm:"column:fee_amount;type:decimal(65,0);not null"`
	FeeReceiver     string          `gorm:"column:fee_receiver;type:varchar(42)"`
	SellerProceeds  decimal.Decimal `gorm:"column:seller_proceeds;type:decimal(65,0);not null"`
	TradeTime       int64           `gorm:"column:trade_time;autoCreateTime"`
}

func (Trade) TableName() string {
	return "es_trade"
}
