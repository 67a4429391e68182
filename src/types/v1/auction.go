package types

import "github.com/shopspring/decimal"

// CreateAuctionParam 创建拍卖请求
type CreateAuctionParam struct {
	Seller          string          `json:"seller" validate:"required,evm_addr"`
	CollectionId    int64           `json:"collection_id" validate:"required,gt=0"`
	TokenId         string          `json:"token_id" validate:"required"`
	StartPrice      decimal.Decimal `json:"start_price" validate:"required"`
	DurationSeconds int64           `json:"duration_seconds" validate:"required,gt=0"`
	MinIncrementBps int64           `json:"min_increment_bps" validate:"required,gt=0"`
}

// PlaceBidParam 出价请求，原生资产计价
type PlaceBidParam struct {
	Bidder string          `json:"bidder" validate:"required,evm_addr"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// WithdrawBidParam 取回被反超的出价
type WithdrawBidParam struct {
	Bidder string `json:"bidder" validate:"required,evm_addr"`
}

// CancelAuctionParam 取消拍卖 (仅限无出价)
type CancelAuctionParam struct {
	Seller string `json:"seller" validate:"required,evm_addr"`
}

// AuctionsQueryParam 拍卖列表查询
type AuctionsQueryParam struct {
	PageParam
	CollectionId int64  `form:"collection_id" json:"collection_id"`
	Status       string `form:"status" json:"status"` // 空则不过滤
}

// AuctionInfo 拍卖详情响应
type AuctionInfo struct {
	AuctionId       int64           `json:"auction_id"`
	Seller          string          `json:"seller"`
	CollectionId    int64           `json:"collection_id"`
	TokenId         string          `json:"token_id"`
	StartPrice      decimal.Decimal `json:"start_price"`
	MinIncrementBps int64           `json:"min_increment_bps"`
	StartTime       int64           `json:"start_time"`
	EndTime         int64           `json:"end_time"`
	HighestBidder   string          `json:"highest_bidder,omitempty"`
	HighestBid      decimal.Decimal `json:"highest_bid"`
	BidCount        int64           `json:"bid_count"`
	Status          int8            `json:"status"`
}

// AuctionBidInfo 拍卖出价记录
type AuctionBidInfo struct {
	Bidder  string          `json:"bidder"`
	LastBid decimal.Decimal `json:"last_bid"`
	Locked  decimal.Decimal `json:"locked"`
}
