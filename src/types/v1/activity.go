package types

import "github.com/shopspring/decimal"

// ActivityQueryParam 活动流水查询
type ActivityQueryParam struct {
	PageParam
	CollectionId int64  `form:"collection_id" json:"collection_id"`
	TokenId      string `form:"token_id" json:"token_id"`
	Account      string `form:"account" json:"account"`
}

// ActivityInfo 活动流水响应，携带完整经济结果
type ActivityInfo struct {
	ActivityType   int8            `json:"activity_type"`
	Maker          string          `json:"maker,omitempty"`
	Taker          string          `json:"taker,omitempty"`
	CollectionId   int64           `json:"collection_id"`
	TokenId        string          `json:"token_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	RoyaltyAmount  decimal.Decimal `json:"royalty_amount"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	SellerProceeds decimal.Decimal `json:"seller_proceeds"`
	AuctionId      int64           `json:"auction_id,omitempty"`
	OrderId        string          `json:"order_id,omitempty"`
	EventTime      int64           `json:"event_time"`
}
