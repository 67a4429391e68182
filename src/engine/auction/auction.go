package auction

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

const (
	MinDuration = 30 * time.Minute
	MaxDuration = 7 * 24 * time.Hour

	MinIncrementBps = int64(500)  // 5%
	MaxIncrementBps = int64(5000) // 50%

	// 结束前 5 分钟内的出价把结束时间推到出价时刻 + 5 分钟，可无限次触发
	ExtendWindow = 5 * time.Minute
)

// Engine 英式拍卖引擎，托管 token 与出价资金，settle/cancel 恰好释放一次
type Engine struct {
	db       *gorm.DB
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

func New(db *gorm.DB, resolver *fees.Resolver, opts ...Option) *Engine {
	e := &Engine{
		db:       db,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func normalize(addr string) string {
	return common.HexToAddress(addr).Hex()
}

// Create 创建拍卖，token 当场转入引擎托管
func (e *Engine) Create(ctx context.Context, seller string, collectionId int64, tokenId string,
	startPrice decimal.Decimal, duration time.Duration, incrementBps int64) (*model.Auction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	seller = normalize(seller)
	now := e.now()

	if duration < MinDuration || duration > MaxDuration {
		return nil, errcode.ErrInvalidDuration
	}
	if incrementBps < MinIncrementBps || incrementBps > MaxIncrementBps {
		return nil, errcode.ErrInvalidIncrement
	}
	if startPrice.LessThan(fees.MinTradePrice) {
		return nil, errcode.ErrPriceTooLow
	}

	var auction *model.Auction
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var market model.MarketConfig
		if err := tx.Where("id = 1").First(&market).Error; err != nil {
			return errors.Wrap(err, "failed on load market config")
		}
		if market.Paused {
			return errcode.ErrTradingPaused
		}

		var item model.Item
		if err := tx.Where("collection_id = ? AND token_id = ?", collectionId, tokenId).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrNotApprovedOrOwner
			}
			return errors.Wrap(err, "failed on load item")
		}
		if item.Owner != seller || !item.Approved || item.EscrowAuctionId != 0 {
			return errcode.ErrNotApprovedOrOwner
		}

		auction = &model.Auction{
			Seller:          seller,
			CollectionId:    collectionId,
			TokenId:         tokenId,
			StartPrice:      startPrice,
			MinIncrementBps: incrementBps,
			StartTime:       now.Unix(),
			EndTime:         now.Add(duration).Unix(),
			HighestBid:      decimal.Zero,
			Status:          model.AuctionStatusActive,
		}
		if err := tx.Create(auction).Error; err != nil {
			return errors.Wrap(err, "failed on create auction")
		}

		// token 托管到引擎账户，拍卖 ID 反向记录以便释放
		if err := tx.Model(&model.Item{}).Where("id = ?", item.Id).
			Updates(map[string]interface{}{
				"owner":             model.EscrowAccount,
				"approved":          false,
				"escrow_auction_id": auction.Id,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on escrow item")
		}

		activity := &model.Activity{
			ActivityType: model.ActivityAuctionCreated,
			Maker:        seller,
			CollectionId: collectionId,
			TokenId:      tokenId,
			Price:        startPrice,
			AuctionId:    auction.Id,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("auction created",
		zap.Int64("auction_id", auction.Id), zap.String("seller", seller),
		zap.Int64("collection_id", collectionId), zap.String("token_id", tokenId))
	return auction, nil
}

// minNextBid 当前最高价之上的最小可接受出价
func minNextBid(a *model.Auction) decimal.Decimal {
	if a.BidCount == 0 {
		return a.StartPrice
	}
	step := a.HighestBid.Mul(decimal.NewFromInt(a.MinIncrementBps)).
		Div(decimal.NewFromInt(fees.BpsDenominator)).Floor()
	return a.HighestBid.Add(step)
}

// PlaceBid 出价，原生资产当场锁入引擎
// 平价出价一律拒绝；临近结束的出价触发延时
func (e *Engine) PlaceBid(ctx context.Context, auctionId int64, bidder string, amount decimal.Decimal) (*model.Auction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bidder = normalize(bidder)
	now := e.now()

	var auction model.Auction
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", auctionId).First(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on load auction")
		}
		if auction.Status != model.AuctionStatusActive {
			return errcode.ErrAlreadySettled
		}
		if now.Unix() >= auction.EndTime {
			return errcode.ErrAuctionEnded
		}

		// 严格大于当前最高价，且满足最小加价幅度
		if auction.BidCount > 0 && !amount.GreaterThan(auction.HighestBid) {
			return errcode.ErrBidTooLow
		}
		if amount.LessThan(minNextBid(&auction)) {
			return errcode.ErrBidTooLow
		}

		// 出价资金当场锁定；之前的最高出价人不退回，转为可提取余额
		if err := assets.Debit(tx, bidder, model.AssetNative, amount); err != nil {
			return err
		}
		if err := upsertBid(tx, auctionId, bidder, amount); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"highest_bidder": bidder,
			"highest_bid":    amount,
			"bid_count":      gorm.Expr("bid_count + 1"),
		}
		// 延时出价：每次命中窗口都重新延长
		extended := false
		if time.Unix(auction.EndTime, 0).Sub(now) <= ExtendWindow {
			updates["end_time"] = now.Add(ExtendWindow).Unix()
			extended = true
		}
		if err := tx.Model(&model.Auction{}).Where("id = ?", auctionId).
			Updates(updates).Error; err != nil {
			return errors.Wrap(err, "failed on update auction")
		}

		auction.HighestBidder = bidder
		auction.HighestBid = amount
		auction.BidCount++
		if extended {
			auction.EndTime = now.Add(ExtendWindow).Unix()
		}

		activity := &model.Activity{
			ActivityType: model.ActivityBidPlaced,
			Maker:        bidder,
			Taker:        auction.Seller,
			CollectionId: auction.CollectionId,
			TokenId:      auction.TokenId,
			Price:        amount,
			AuctionId:    auctionId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("bid placed",
		zap.Int64("auction_id", auctionId), zap.String("bidder", bidder),
		zap.String("amount", amount.String()), zap.Int64("end_time", auction.EndTime))
	return &auction, nil
}

// upsertBid 累加出价人在该拍卖的锁定总额
func upsertBid(tx *gorm.DB, auctionId int64, bidder string, amount decimal.Decimal) error {
	var bid model.AuctionBid
	err := tx.Where("auction_id = ? AND bidder = ?", auctionId, bidder).First(&bid).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed on load bid record")
		}
		return errors.Wrap(tx.Create(&model.AuctionBid{
			AuctionId: auctionId,
			Bidder:    bidder,
			Amount:    amount,
			LastBid:   amount,
		}).Error, "failed on create bid record")
	}
	return errors.Wrap(tx.Model(&model.AuctionBid{}).Where("id = ?", bid.Id).
		Updates(map[string]interface{}{
			"amount":   gorm.Expr("amount + ?", amount),
			"last_bid": amount,
		}).Error, "failed on update bid record")
}
