package service

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

func toAuctionInfo(a *model.Auction) *types.AuctionInfo {
	return &types.AuctionInfo{
		AuctionId:       a.Id,
		Seller:          a.Seller,
		CollectionId:    a.CollectionId,
		TokenId:         a.TokenId,
		StartPrice:      a.StartPrice,
		MinIncrementBps: a.MinIncrementBps,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		HighestBidder:   a.HighestBidder,
		HighestBid:      a.HighestBid,
		BidCount:        a.BidCount,
		Status:          a.Status,
	}
}

// CreateAuction 创建拍卖
func CreateAuction(ctx context.Context, svcCtx *svc.ServerCtx, param types.CreateAuctionParam) (*types.AuctionInfo, error) {
	auction, err := svcCtx.Auction.Create(ctx, param.Seller, param.CollectionId, param.TokenId,
		param.StartPrice, time.Duration(param.DurationSeconds)*time.Second, param.MinIncrementBps)
	if err != nil {
		return nil, err
	}
	return toAuctionInfo(auction), nil
}

// PlaceBid 出价
func PlaceBid(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64, param types.PlaceBidParam) (*types.AuctionInfo, error) {
	auction, err := svcCtx.Auction.PlaceBid(ctx, auctionId, param.Bidder, param.Amount)
	if err != nil {
		return nil, err
	}
	svcCtx.Dao.DropAuctionCache(auctionId)
	return toAuctionInfo(auction), nil
}

// SettleAuction 结算，任何人可触发
func SettleAuction(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64) (*types.TradeInfo, error) {
	trade, err := svcCtx.Auction.Settle(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	svcCtx.Dao.DropAuctionCache(auctionId)
	if trade == nil {
		// 流拍结算，无资金流动
		return nil, nil
	}
	return toTradeInfo(trade), nil
}

// WithdrawBid 取回被反超的出价
func WithdrawBid(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64, param types.WithdrawBidParam) (decimal.Decimal, error) {
	amount, err := svcCtx.Auction.WithdrawFailedBid(ctx, auctionId, param.Bidder)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// CancelAuction 取消拍卖
func CancelAuction(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64, param types.CancelAuctionParam) error {
	if err := svcCtx.Auction.Cancel(ctx, auctionId, param.Seller); err != nil {
		return err
	}
	svcCtx.Dao.DropAuctionCache(auctionId)
	return nil
}

// GetAuction 拍卖详情
func GetAuction(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64) (*types.AuctionInfo, error) {
	auction, err := svcCtx.Dao.GetAuctionById(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	return toAuctionInfo(auction), nil
}

// ListAuctions 拍卖列表
func ListAuctions(ctx context.Context, svcCtx *svc.ServerCtx, param types.AuctionsQueryParam) (*types.PageResult, error) {
	param.Normalize()

	status := int8(-1)
	if param.Status != "" {
		if n, err := strconv.ParseInt(param.Status, 10, 8); err == nil {
			status = int8(n)
		}
	}

	auctions, total, err := svcCtx.Dao.ListAuctions(ctx, param.CollectionId, status, param.Page, param.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed on list auctions")
	}
	list := make([]*types.AuctionInfo, 0, len(auctions))
	for i := range auctions {
		list = append(list, toAuctionInfo(&auctions[i]))
	}
	return &types.PageResult{List: list, Total: total, Page: param.Page}, nil
}

// ListAuctionBids 拍卖出价记录
func ListAuctionBids(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64) ([]types.AuctionBidInfo, error) {
	bids, err := svcCtx.Dao.ListAuctionBids(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	list := make([]types.AuctionBidInfo, 0, len(bids))
	for _, b := range bids {
		list = append(list, types.AuctionBidInfo{
			Bidder:  b.Bidder,
			LastBid: b.LastBid,
			Locked:  b.Amount,
		})
	}
	return list, nil
}
