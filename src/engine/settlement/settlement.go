package settlement

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/eip712"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// Intent 服务层传入的订单/出价载荷，与签名的 EIP-712 结构一一对应
type Intent struct {
	Maker        string
	CollectionId int64
	TokenId      string
	Price        decimal.Decimal
	Nonce        int64
	Deadline     int64
}

// Engine 订单/出价结算引擎
// 每个入口运行在单个事务 + 引擎互斥锁内，对应账本的串行化执行模型
type Engine struct {
	db       *gorm.DB
	verifier *eip712.Verifier
	resolver *fees.Resolver
	now      func() time.Time
	mu       sync.Mutex
}

type Option func(*Engine)

// WithClock 注入账本时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(db *gorm.DB, verifier *eip712.Verifier, resolver *fees.Resolver, opts ...Option) *Engine {
	e := &Engine{
		db:       db,
		verifier: verifier,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// toTyped 把服务层载荷转成签名域内的结构化数据
func toTyped(in Intent) (eip712.Intent, error) {
	tokenId, ok := new(big.Int).SetString(in.TokenId, 10)
	if !ok {
		return eip712.Intent{}, errcode.ErrInvalidParams
	}
	return eip712.Intent{
		Maker:        common.HexToAddress(in.Maker),
		CollectionId: big.NewInt(in.CollectionId),
		TokenId:      tokenId,
		Price:        in.Price.BigInt(),
		Nonce:        big.NewInt(in.Nonce),
		Deadline:     big.NewInt(in.Deadline),
	}, nil
}

func normalize(addr string) string {
	return common.HexToAddress(addr).Hex()
}

// checkNotPaused 暂停开关，治理层可全局停止交易
func checkNotPaused(tx *gorm.DB) error {
	var market model.MarketConfig
	if err := tx.Where("id = 1").First(&market).Error; err != nil {
		return errors.Wrap(err, "failed on load market config")
	}
	if market.Paused {
		return errcode.ErrTradingPaused
	}
	return nil
}

// consumeNonce 消耗 (signer, side, nonce)，已存在即重放
// 在任何资金/token 转移之前调用，关闭重入窗口
func consumeNonce(tx *gorm.DB, signer string, side int8, nonce int64) error {
	var used int64
	if err := tx.Model(&model.TradeNonce{}).
		Where("signer = ? AND side = ? AND nonce = ?", signer, side, nonce).
		Count(&used).Error; err != nil {
		return errors.Wrap(err, "failed on query nonce")
	}
	if used > 0 {
		return errcode.ErrNonceAlreadyUsed
	}
	return errors.Wrap(tx.Create(&model.TradeNonce{Signer: signer, Side: side, Nonce: nonce}).Error,
		"failed on consume nonce")
}

// verifyIntent 校验签名并比对签名人
func (e *Engine) verifyIntent(primaryType string, in Intent, sigHex string) error {
	typed, err := toTyped(in)
	if err != nil {
		return err
	}
	signer, err := e.verifier.RecoverSigner(primaryType, typed, sigHex)
	if err != nil {
		return err
	}
	if signer != common.HexToAddress(in.Maker) {
		return errcode.ErrInvalidSignature
	}
	return nil
}

// loadItem 读取 token 并校验 maker 持有且已授权引擎
func loadItem(tx *gorm.DB, collectionId int64, tokenId, owner string) (*model.Item, error) {
	var item model.Item
	if err := tx.Where("collection_id = ? AND token_id = ?", collectionId, tokenId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotApprovedOrOwner
		}
		return nil, errors.Wrap(err, "failed on load item")
	}
	if item.Owner != owner || !item.Approved || item.EscrowAuctionId != 0 {
		return nil, errcode.ErrNotApprovedOrOwner
	}
	return &item, nil
}

// markOrderFilled 订单簿里存过该意图则回填成交状态
func markOrderFilled(tx *gorm.DB, maker string, side int8, nonce int64, taker string) error {
	return errors.Wrap(tx.Model(&model.Order{}).
		Where("maker = ? AND side = ? AND nonce = ? AND status = ?", maker, side, nonce, model.OrderStatusOpen).
		Updates(map[string]interface{}{"status": model.OrderStatusFilled, "taker": taker}).Error,
		"failed on mark order filled")
}

// ExecuteOrder 执行卖方签名订单，买方以原生资产付款
// 校验顺序: deadline → nonce → 签名 → 付款金额 → 持有与授权
func (e *Engine) ExecuteOrder(ctx context.Context, order Intent, sigHex, buyer string, payment decimal.Decimal) (*model.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order.Maker = normalize(order.Maker)
	buyer = normalize(buyer)
	now := e.now()

	var trade *model.Trade
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNotPaused(tx); err != nil {
			return err
		}
		if now.Unix() > order.Deadline {
			return errcode.ErrOrderExpired
		}
		if err := consumeNonce(tx, order.Maker, model.SideList, order.Nonce); err != nil {
			return err
		}
		if err := e.verifyIntent(eip712.TypeOrder, order, sigHex); err != nil {
			return err
		}
		if !payment.Equal(order.Price) {
			return errcode.ErrIncorrectPayment
		}
		item, err := loadItem(tx, order.CollectionId, order.TokenId, order.Maker)
		if err != nil {
			return err
		}

		split, err := e.resolver.Resolve(tx, order.CollectionId, order.Price)
		if err != nil {
			return err
		}

		// 买方付款进入引擎，再按 royalty → fee → seller 顺序分发
		if err := assets.Debit(tx, buyer, model.AssetNative, payment); err != nil {
			return err
		}
		if err := transferItem(tx, item, buyer); err != nil {
			return err
		}
		if err := payout(tx, model.AssetNative, order.Maker, split); err != nil {
			return err
		}
		if err := markOrderFilled(tx, order.Maker, model.SideList, order.Nonce, buyer); err != nil {
			return err
		}

		trade, err = recordTrade(tx, tradeParams{
			seller: order.Maker, buyer: buyer, asset: model.AssetNative,
			collectionId: order.CollectionId, tokenId: order.TokenId,
			split: split, activityType: model.ActivityOrderExecuted,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("order executed",
		zap.String("seller", order.Maker), zap.String("buyer", buyer),
		zap.Int64("collection_id", order.CollectionId), zap.String("token_id", order.TokenId),
		zap.String("price", order.Price.String()))
	return trade, nil
}

// ExecuteOffer 执行买方签名出价，资金经包装资产授权拉取，卖方或任意中继方触发
func (e *Engine) ExecuteOffer(ctx context.Context, offer Intent, sigHex, seller string) (*model.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	offer.Maker = normalize(offer.Maker)
	seller = normalize(seller)
	now := e.now()

	var trade *model.Trade
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNotPaused(tx); err != nil {
			return err
		}
		if now.Unix() > offer.Deadline {
			return errcode.ErrOrderExpired
		}
		if err := consumeNonce(tx, offer.Maker, model.SideBid, offer.Nonce); err != nil {
			return err
		}
		if err := e.verifyIntent(eip712.TypeOffer, offer, sigHex); err != nil {
			return err
		}
		item, err := loadItem(tx, offer.CollectionId, offer.TokenId, seller)
		if err != nil {
			return err
		}

		split, err := e.resolver.Resolve(tx, offer.CollectionId, offer.Price)
		if err != nil {
			return err
		}

		// 从买方拉取包装资产到引擎，分发同 Order
		if err := assets.TransferFrom(tx, offer.Maker, model.EscrowAccount, model.EscrowAccount,
			model.AssetWrapped, offer.Price); err != nil {
			return err
		}
		if err := assets.Debit(tx, model.EscrowAccount, model.AssetWrapped, offer.Price); err != nil {
			return err
		}
		if err := transferItem(tx, item, offer.Maker); err != nil {
			return err
		}
		if err := payout(tx, model.AssetWrapped, seller, split); err != nil {
			return err
		}
		if err := markOrderFilled(tx, offer.Maker, model.SideBid, offer.Nonce, seller); err != nil {
			return err
		}

		trade, err = recordTrade(tx, tradeParams{
			seller: seller, buyer: offer.Maker, asset: model.AssetWrapped,
			collectionId: offer.CollectionId, tokenId: offer.TokenId,
			split: split, activityType: model.ActivityOfferExecuted,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("offer executed",
		zap.String("seller", seller), zap.String("buyer", offer.Maker),
		zap.Int64("collection_id", offer.CollectionId), zap.String("token_id", offer.TokenId),
		zap.String("price", offer.Price.String()))
	return trade, nil
}

// transferItem token 过户，授权随转移清空
func transferItem(tx *gorm.DB, item *model.Item, to string) error {
	return errors.Wrap(tx.Model(&model.Item{}).Where("id = ?", item.Id).
		Updates(map[string]interface{}{"owner": to, "approved": false}).Error,
		"failed on transfer item")
}

// payout 按固定顺序分发: 版税 → 平台费 → 卖方余额
func payout(tx *gorm.DB, asset, seller string, split *fees.Split) error {
	if split.RoyaltyAmount.IsPositive() && split.RoyaltyReceiver != "" {
		if err := assets.Credit(tx, normalize(split.RoyaltyReceiver), asset, split.RoyaltyAmount); err != nil {
			return err
		}
	}
	if split.FeeAmount.IsPositive() && split.FeeReceiver != "" {
		if err := assets.Credit(tx, normalize(split.FeeReceiver), asset, split.FeeAmount); err != nil {
			return err
		}
	}
	return assets.Credit(tx, seller, asset, split.SellerProceeds)
}

type tradeParams struct {
	seller, buyer, asset string
	collectionId         int64
	tokenId              string
	auctionId            int64
	orderId              string
	split                *fees.Split
	activityType         int8
}

// recordTrade 写成交与活动流水
func recordTrade(tx *gorm.DB, p tradeParams) (*model.Trade, error) {
	trade := &model.Trade{
		TradeNo:         uuid.NewString(),
		OrderId:         p.orderId,
		AuctionId:       p.auctionId,
		Seller:          p.seller,
		Buyer:           p.buyer,
		CollectionId:    p.collectionId,
		TokenId:         p.tokenId,
		Asset:           p.asset,
		Price:           p.split.Price,
		RoyaltyAmount:   p.split.RoyaltyAmount,
		RoyaltyReceiver: p.split.RoyaltyReceiver,
		FeeAmount:       p.split.FeeAmount,
		FeeReceiver:     p.split.FeeReceiver,
		SellerProceeds:  p.split.SellerProceeds,
	}
	if err := tx.Create(trade).Error; err != nil {
		return nil, errors.Wrap(err, "failed on record trade")
	}

	activity := &model.Activity{
		ActivityType:   p.activityType,
		Maker:          p.seller,
		Taker:          p.buyer,
		CollectionId:   p.collectionId,
		TokenId:        p.tokenId,
		Price:          p.split.Price,
		RoyaltyAmount:  p.split.RoyaltyAmount,
		FeeAmount:      p.split.FeeAmount,
		SellerProceeds: p.split.SellerProceeds,
		AuctionId:      p.auctionId,
		OrderId:        p.orderId,
	}
	if err := tx.Create(activity).Error; err != nil {
		return nil, errors.Wrap(err, "failed on record activity")
	}
	return trade, nil
}
