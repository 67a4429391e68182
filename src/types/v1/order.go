package types

import "github.com/shopspring/decimal"

// IntentParam 签名意图载荷，Order 与 Offer 共用
type IntentParam struct {
	Maker        string          `json:"maker" validate:"required,evm_addr"`
	CollectionId int64           `json:"collection_id" validate:"required,gt=0"`
	TokenId      string          `json:"token_id" validate:"required"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Nonce        int64           `json:"nonce" validate:"gte=0"`
	Deadline     int64           `json:"deadline" validate:"required,gt=0"`
}

// CreateOrderParam 挂单/出价入库请求
type CreateOrderParam struct {
	Intent    IntentParam `json:"intent" validate:"required"`
	Signature string      `json:"signature" validate:"required"`
	Side      int8        `json:"side" validate:"required,oneof=1 2"` // 1 挂单 2 出价
}

// ExecuteOrderParam 执行卖方订单，买方携原生资产付款
type ExecuteOrderParam struct {
	Order     IntentParam     `json:"order" validate:"required"`
	Signature string          `json:"signature" validate:"required"`
	Buyer     string          `json:"buyer" validate:"required,evm_addr"`
	Payment   decimal.Decimal `json:"payment" validate:"required"`
}

// ExecuteOfferParam 执行买方出价，卖方或中继方触发
type ExecuteOfferParam struct {
	Offer     IntentParam `json:"offer" validate:"required"`
	Signature string      `json:"signature" validate:"required"`
	Seller    string      `json:"seller" validate:"required,evm_addr"`
}

// CancelOrderParam 按 nonce 作废签名意图
type CancelOrderParam struct {
	Maker string `json:"maker" validate:"required,evm_addr"`
	Side  int8   `json:"side" validate:"required,oneof=1 2"`
	Nonce int64  `json:"nonce" validate:"gte=0"`
}

// OrdersQueryParam 订单簿查询
type OrdersQueryParam struct {
	PageParam
	CollectionId int64  `form:"collection_id" json:"collection_id"`
	TokenId      string `form:"token_id" json:"token_id"`
	Side         int8   `form:"side" json:"side"`
	Maker        string `form:"maker" json:"maker"`
	Status       string `form:"status" json:"status"`
}

// TradeInfo 成交响应
type TradeInfo struct {
	TradeNo         string          `json:"trade_no"`
	OrderId         string          `json:"order_id,omitempty"`
	AuctionId       int64           `json:"auction_id,omitempty"`
	Seller          string          `json:"seller"`
	Buyer           string          `json:"buyer"`
	CollectionId    int64           `json:"collection_id"`
	TokenId         string          `json:"token_id"`
	Asset           string          `json:"asset"`
	Price           decimal.Decimal `json:"price"`
	RoyaltyAmount   decimal.Decimal `json:"royalty_amount"`
	RoyaltyReceiver string          `json:"royalty_receiver,omitempty"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	FeeReceiver     string          `json:"fee_receiver,omitempty"`
	SellerProceeds  decimal.Decimal `json:"seller_proceeds"`
	TradeTime       int64           `json:"trade_time"`
}
