package auction

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/assets"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// Settle 结算，结束后任何人可调用
// 有出价: token 给最高出价人，按分成打款；无出价: token 退回卖方
func (e *Engine) Settle(ctx context.Context, auctionId int64) (*model.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 每个入口只读一次时钟，事务内所有判断共用同一时刻
	now := e.now()

	var trade *model.Trade
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
		if now.Unix() < auction.EndTime {
			return errcode.ErrAuctionNotEnded
		}

		if auction.BidCount == 0 {
			// 流拍，退回 token，无资金流动
			if err := releaseItem(tx, &auction, auction.Seller); err != nil {
				return err
			}
			if err := markSettled(tx, auctionId, now.Unix()); err != nil {
				return err
			}
			activity := &model.Activity{
				ActivityType: model.ActivityAuctionSettled,
				Maker:        auction.Seller,
				CollectionId: auction.CollectionId,
				TokenId:      auction.TokenId,
				AuctionId:    auctionId,
			}
			return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
		}

		split, err := e.resolver.Resolve(tx, auction.CollectionId, auction.HighestBid)
		if err != nil {
			return err
		}

		// 赢家锁定额中划走成交价，早先被反超的历史出价仍可提取
		res := tx.Model(&model.AuctionBid{}).
			Where("auction_id = ? AND bidder = ? AND amount >= ?",
				auctionId, auction.HighestBidder, auction.HighestBid).
			Update("amount", gorm.Expr("amount - ?", auction.HighestBid))
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed on consume winning bid")
		}
		if res.RowsAffected == 0 {
			return errors.New("winning bid record missing")
		}

		if err := releaseItem(tx, &auction, auction.HighestBidder); err != nil {
			return err
		}
		if split.RoyaltyAmount.IsPositive() && split.RoyaltyReceiver != "" {
			if err := assets.Credit(tx, normalize(split.RoyaltyReceiver), model.AssetNative, split.RoyaltyAmount); err != nil {
				return err
			}
		}
		if split.FeeAmount.IsPositive() && split.FeeReceiver != "" {
			if err := assets.Credit(tx, normalize(split.FeeReceiver), model.AssetNative, split.FeeAmount); err != nil {
				return err
			}
		}
		if err := assets.Credit(tx, auction.Seller, model.AssetNative, split.SellerProceeds); err != nil {
			return err
		}
		if err := markSettled(tx, auctionId, now.Unix()); err != nil {
			return err
		}

		trade = &model.Trade{
			TradeNo:         uuid.NewString(),
			AuctionId:       auctionId,
			Seller:          auction.Seller,
			Buyer:           auction.HighestBidder,
			CollectionId:    auction.CollectionId,
			TokenId:         auction.TokenId,
			Asset:           model.AssetNative,
			Price:           split.Price,
			RoyaltyAmount:   split.RoyaltyAmount,
			RoyaltyReceiver: split.RoyaltyReceiver,
			FeeAmount:       split.FeeAmount,
			FeeReceiver:     split.FeeReceiver,
			SellerProceeds:  split.SellerProceeds,
		}
		if err := tx.Create(trade).Error; err != nil {
			return errors.Wrap(err, "failed on record trade")
		}

		activity := &model.Activity{
			ActivityType:   model.ActivityAuctionSettled,
			Maker:          auction.Seller,
			Taker:          auction.HighestBidder,
			CollectionId:   auction.CollectionId,
			TokenId:        auction.TokenId,
			Price:          split.Price,
			RoyaltyAmount:  split.RoyaltyAmount,
			FeeAmount:      split.FeeAmount,
			SellerProceeds: split.SellerProceeds,
			AuctionId:      auctionId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("auction settled",
		zap.Int64("auction_id", auctionId), zap.String("winner", auction.HighestBidder),
		zap.String("price", auction.HighestBid.String()))
	return trade, nil
}

// WithdrawFailedBid 被反超的出价随时可取回，结算前后均可
func (e *Engine) WithdrawFailedBid(ctx context.Context, auctionId int64, bidder string) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bidder = normalize(bidder)

	var amount decimal.Decimal
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var auction model.Auction
		if err := tx.Where("id = ?", auctionId).First(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on load auction")
		}

		var bid model.AuctionBid
		if err := tx.Where("auction_id = ? AND bidder = ?", auctionId, bidder).
			First(&bid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrNothingToWithdraw
			}
			return errors.Wrap(err, "failed on load bid record")
		}

		// 当前最高出价在拍卖结束前不可提取
		locked := decimal.Zero
		if auction.Status == model.AuctionStatusActive && auction.HighestBidder == bidder {
			locked = auction.HighestBid
		}
		amount = bid.Amount.Sub(locked)
		if !amount.IsPositive() {
			return errcode.ErrNothingToWithdraw
		}

		if err := tx.Model(&model.AuctionBid{}).Where("id = ?", bid.Id).
			Update("amount", gorm.Expr("amount - ?", amount)).Error; err != nil {
			return errors.Wrap(err, "failed on clear bid record")
		}
		if err := assets.Credit(tx, bidder, model.AssetNative, amount); err != nil {
			return err
		}

		activity := &model.Activity{
			ActivityType: model.ActivityBidWithdrawn,
			Maker:        bidder,
			CollectionId: auction.CollectionId,
			TokenId:      auction.TokenId,
			Price:        amount,
			AuctionId:    auctionId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return decimal.Zero, err
	}

	xzap.WithContext(ctx).Info("bid withdrawn",
		zap.Int64("auction_id", auctionId), zap.String("bidder", bidder),
		zap.String("amount", amount.String()))
	return amount, nil
}

// Cancel 仅在从未有出价时允许取消，token 退回卖方
func (e *Engine) Cancel(ctx context.Context, auctionId int64, seller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	seller = normalize(seller)

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
		if auction.Seller != seller {
			return errcode.ErrUnauthorized
		}
		if auction.BidCount > 0 {
			return errcode.ErrAuctionHasBids
		}

		if err := releaseItem(tx, &auction, seller); err != nil {
			return err
		}
		if err := tx.Model(&model.Auction{}).Where("id = ?", auctionId).
			Update("status", model.AuctionStatusCancelled).Error; err != nil {
			return errors.Wrap(err, "failed on cancel auction")
		}

		activity := &model.Activity{
			ActivityType: model.ActivityAuctionCancelled,
			Maker:        seller,
			CollectionId: auction.CollectionId,
			TokenId:      auction.TokenId,
			AuctionId:    auctionId,
		}
		return errors.Wrap(tx.Create(activity).Error, "failed on record activity")
	})
	if err != nil {
		return err
	}

	xzap.WithContext(ctx).Info("auction cancelled",
		zap.Int64("auction_id", auctionId), zap.String("seller", seller))
	return nil
}

// SettleDue 结算所有已到期的拍卖，后台循环调用
// 此处的时刻只用于筛选，每场 Settle 各自重新读钟做到期判断
func (e *Engine) SettleDue(ctx context.Context) (int, error) {
	now := e.now().Unix()
	var ids []int64
	if err := e.db.WithContext(ctx).Model(&model.Auction{}).
		Where("status = ? AND end_time <= ?", model.AuctionStatusActive, now).
		Pluck("id", &ids).Error; err != nil {
		return 0, errors.Wrap(err, "failed on list due auctions")
	}

	settled := 0
	for _, id := range ids {
		if _, err := e.Settle(ctx, id); err != nil {
			// 单场失败不阻塞其余结算
			xzap.WithContext(ctx).Error("failed on settle due auction",
				zap.Int64("auction_id", id), zap.Error(err))
			continue
		}
		settled++
	}
	return settled, nil
}

// releaseItem 托管释放，恰好一次
func releaseItem(tx *gorm.DB, auction *model.Auction, to string) error {
	res := tx.Model(&model.Item{}).
		Where("collection_id = ? AND token_id = ? AND escrow_auction_id = ?",
			auction.CollectionId, auction.TokenId, auction.Id).
		Updates(map[string]interface{}{
			"owner":             to,
			"approved":          false,
			"escrow_auction_id": 0,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on release item")
	}
	if res.RowsAffected == 0 {
		return errors.New("escrowed item missing")
	}
	return nil
}

// markSettled 状态推进恰好一次
func markSettled(tx *gorm.DB, auctionId int64, now int64) error {
	res := tx.Model(&model.Auction{}).
		Where("id = ? AND status = ?", auctionId, model.AuctionStatusActive).
		Updates(map[string]interface{}{
			"status":      model.AuctionStatusSettled,
			"settle_time": now,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on mark settled")
	}
	if res.RowsAffected == 0 {
		return errcode.ErrAlreadySettled
	}
	return nil
}
