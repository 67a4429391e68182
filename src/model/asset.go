package model

import (
	"github.com/shopspring/decimal"
)

// 资产类型
const (
	AssetNative  = "native" // 原生资产，Order 与拍卖出价计价
	AssetWrapped = "weth"   // 包装资产，Offer 计价，通过授权拉取
)

// EscrowAccount 引擎托管账户，拍卖托管的 token 与资金挂在该账户下
const EscrowAccount = "0x0000000000000000000000000000000000000e5c"

// Balance 账户资产余额
type Balance struct {
	Id         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Account    string          `gorm:"column:account;type:varchar(42);uniqueIndex:uk_account_asset;not null"`
	Asset      string          `gorm:"column:asset;type:varchar(16);uniqueIndex:uk_account_asset;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null;default:0"`
	UpdateTime int64           `gorm:"column:update_time;autoUpdateTime"`
	CreateTime int64           `gorm:"column:create_time;autoCreateTime"`
}

func (Balance) TableName() string {
	return "es_balance"
}

// Allowance 包装资产授权额度，owner 授权 spender 可拉取的上限
type Allowance struct {
	Id         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Owner      string          `gorm:"column:owner;type:varchar(42);uniqueIndex:uk_allowance;not null"`
	Spender    string          `gorm:"column:spender;type:varchar(42);uniqueIndex:uk_allowance;not null"`
	Asset      string          `gorm:"column:asset;type:varchar(16);uniqueIndex:uk_allowance;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null;default:0"`
	UpdateTime int64           `gorm:"column:update_time;autoUpdateTime"`
	CreateTime int64           `gorm:"column:create_time;autoCreateTime"`
}

func (Allowance) TableName() string {
	return "es_allowance"
}

// MarketConfig 全局市场参数，仅治理层可修改，单行表
type MarketConfig struct {
	Id          int64  `gorm:"column:id;primaryKey"`
	FeeBps      int64  `gorm:"column:fee_bps;not null;default:0"` // 平台费 (上限 500)
	FeeReceiver string `gorm:"column:fee_receiver;type:varchar(42)"`
	Paused      bool   `gorm:"column:paused;not null;default:false"`
	GovNonce    int64  `gorm:"column:gov_nonce;not null;default:0"` // 治理签名 nonce，单调递增
	UpdateTime  int64  `gorm:"column:update_time;autoUpdateTime"`
}

func (MarketConfig) TableName() string {
	return "es_market_config"
}
