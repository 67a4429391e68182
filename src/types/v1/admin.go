package types

// 治理操作名，进入签名消息，防止一个操作的签名被挪用到另一个操作
const (
	GovOpSetFee     = "setFee"
	GovOpSetRoyalty = "setRoyalty"
	GovOpSetPaused  = "setPaused"
)

// SetFeeParam 治理层调整平台费
type SetFeeParam struct {
	FeeBps      int64  `json:"fee_bps" validate:"gte=0"`
	FeeReceiver string `json:"fee_receiver" validate:"required,evm_addr"`
	Nonce       int64  `json:"nonce" validate:"required,gt=0"`
	Signature   string `json:"signature" validate:"required"`
}

// SetRoyaltyParam 治理层调整集合版税
type SetRoyaltyParam struct {
	CollectionId    int64  `json:"collection_id" validate:"required,gt=0"`
	RoyaltyBps      int64  `json:"royalty_bps" validate:"gte=0"`
	RoyaltyReceiver string `json:"royalty_receiver" validate:"required,evm_addr"`
	Nonce           int64  `json:"nonce" validate:"required,gt=0"`
	Signature       string `json:"signature" validate:"required"`
}

// SetPausedParam 治理层暂停/恢复交易
type SetPausedParam struct {
	Paused    bool   `json:"paused"`
	Nonce     int64  `json:"nonce" validate:"required,gt=0"`
	Signature string `json:"signature" validate:"required"`
}

// MarketConfigInfo 当前市场参数
type MarketConfigInfo struct {
	FeeBps      int64  `json:"fee_bps"`
	FeeReceiver string `json:"fee_receiver,omitempty"`
	Paused      bool   `json:"paused"`
}
