package types

import "github.com/shopspring/decimal"

// CreateCollectionParam 工厂注册集合
type CreateCollectionParam struct {
	Creator         string `json:"creator" validate:"required,evm_addr"`
	Name            string `json:"name" validate:"required,max=128"`
	Symbol          string `json:"symbol" validate:"max=32"`
	Address         string `json:"address" validate:"omitempty,evm_addr"`
	RoyaltyBps      int64  `json:"royalty_bps" validate:"gte=0"`
	RoyaltyReceiver string `json:"royalty_receiver" validate:"omitempty,evm_addr"`
}

// CollectionInfo 集合详情响应
type CollectionInfo struct {
	CollectionId    int64  `json:"collection_id"`
	Address         string `json:"address,omitempty"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol,omitempty"`
	Creator         string `json:"creator"`
	RoyaltyBps      int64  `json:"royalty_bps"`
	RoyaltyReceiver string `json:"royalty_receiver,omitempty"`
	ChainId         int64  `json:"chain_id"`
	CreateTime      int64  `json:"create_time"`
}

// MintItemParam 铸造 token 到指定账户
type MintItemParam struct {
	To      string `json:"to" validate:"required,evm_addr"`
	TokenId string `json:"token_id" validate:"required"`
}

// ApproveItemParam token 持有人授权引擎转移
type ApproveItemParam struct {
	Owner        string `json:"owner" validate:"required,evm_addr"`
	CollectionId int64  `json:"collection_id" validate:"required,gt=0"`
	TokenId      string `json:"token_id" validate:"required"`
	Approved     bool   `json:"approved"`
}

// ItemInfo token 详情响应
type ItemInfo struct {
	CollectionId    int64  `json:"collection_id"`
	TokenId         string `json:"token_id"`
	Owner           string `json:"owner"`
	Approved        bool   `json:"approved"`
	EscrowAuctionId int64  `json:"escrow_auction_id,omitempty"`
}

// BalanceInfo 资产余额响应
type BalanceInfo struct {
	Asset  string          `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// DepositParam 充值 (原生或包装资产)
type DepositParam struct {
	Account string          `json:"account" validate:"required,evm_addr"`
	Asset   string          `json:"asset" validate:"required,oneof=native weth"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

// WithdrawParam 提现
type WithdrawParam struct {
	Account string          `json:"account" validate:"required,evm_addr"`
	Asset   string          `json:"asset" validate:"required,oneof=native weth"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

// ApproveAssetParam 包装资产授权引擎拉取额度
type ApproveAssetParam struct {
	Owner  string          `json:"owner" validate:"required,evm_addr"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}
