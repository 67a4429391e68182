package errcode

// 通用错误码 (1xx/5xx 段)
var (
	ErrOK            = NewErr(200, "ok")
	ErrUnexpected    = NewErr(500, "server error")
	ErrInvalidParams = NewErr(400, "invalid params")
	ErrUnauthorized  = NewErr(401, "unauthorized")
	ErrNotFound      = NewErr(404, "not found")
)

const CodeCustom uint32 = 7000

// 交易结算错误码 (20xxx 段)
var (
	ErrOrderExpired       = NewErr(20001, "order expired")
	ErrNonceAlreadyUsed   = NewErr(20002, "nonce already used")
	ErrInvalidSignature   = NewErr(20003, "invalid signature")
	ErrIncorrectPayment   = NewErr(20004, "incorrect payment")
	ErrNotApprovedOrOwner = NewErr(20005, "not approved or owner")
	ErrPriceTooLow        = NewErr(20006, "price below minimum trade floor")
	ErrTradingPaused      = NewErr(20007, "trading paused")
	ErrOrderNotFound      = NewErr(20008, "order not found")
)

// 拍卖错误码 (21xxx 段)
var (
	ErrInvalidDuration   = NewErr(21001, "invalid auction duration")
	ErrInvalidIncrement  = NewErr(21002, "invalid bid increment")
	ErrBidTooLow         = NewErr(21003, "bid too low")
	ErrAuctionNotEnded   = NewErr(21004, "auction not ended")
	ErrAlreadySettled    = NewErr(21005, "auction already settled")
	ErrAuctionHasBids    = NewErr(21006, "auction has bids")
	ErrNothingToWithdraw = NewErr(21007, "nothing to withdraw")
	ErrAuctionNotFound   = NewErr(21008, "auction not found")
	ErrAuctionEnded      = NewErr(21009, "auction ended")
)

// 资产账本错误码 (22xxx 段)
var (
	ErrInsufficientBalance   = NewErr(22001, "insufficient balance")
	ErrInsufficientAllowance = NewErr(22002, "insufficient allowance")
	ErrCollectionNotFound    = NewErr(22003, "collection not found")
	ErrItemNotFound          = NewErr(22004, "item not found")
	ErrItemAlreadyExists     = NewErr(22005, "item already exists")
	ErrRoyaltyTooHigh        = NewErr(22006, "royalty exceeds cap")
	ErrFeeTooHigh            = NewErr(22007, "protocol fee exceeds cap")
)
