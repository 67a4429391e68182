package service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasySwapTrade/src/dao"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/settlement"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

func toIntent(p types.IntentParam) settlement.Intent {
	return settlement.Intent{
		Maker:        p.Maker,
		CollectionId: p.CollectionId,
		TokenId:      p.TokenId,
		Price:        p.Price,
		Nonce:        p.Nonce,
		Deadline:     p.Deadline,
	}
}

func toTradeInfo(t *model.Trade) *types.TradeInfo {
	return &types.TradeInfo{
		TradeNo:         t.TradeNo,
		OrderId:         t.OrderId,
		AuctionId:       t.AuctionId,
		Seller:          t.Seller,
		Buyer:           t.Buyer,
		CollectionId:    t.CollectionId,
		TokenId:         t.TokenId,
		Asset:           t.Asset,
		Price:           t.Price,
		RoyaltyAmount:   t.RoyaltyAmount,
		RoyaltyReceiver: t.RoyaltyReceiver,
		FeeAmount:       t.FeeAmount,
		FeeReceiver:     t.FeeReceiver,
		SellerProceeds:  t.SellerProceeds,
		TradeTime:       t.TradeTime,
	}
}

// CreateOrder 签名意图入库
func CreateOrder(ctx context.Context, svcCtx *svc.ServerCtx, param types.CreateOrderParam) (string, error) {
	return svcCtx.Settlement.CreateOrder(ctx, toIntent(param.Intent), param.Signature, param.Side)
}

// ExecuteOrder 执行卖方订单
func ExecuteOrder(ctx context.Context, svcCtx *svc.ServerCtx, param types.ExecuteOrderParam) (*types.TradeInfo, error) {
	trade, err := svcCtx.Settlement.ExecuteOrder(ctx, toIntent(param.Order), param.Signature, param.Buyer, param.Payment)
	if err != nil {
		return nil, err
	}
	return toTradeInfo(trade), nil
}

// ExecuteOffer 执行买方出价
func ExecuteOffer(ctx context.Context, svcCtx *svc.ServerCtx, param types.ExecuteOfferParam) (*types.TradeInfo, error) {
	trade, err := svcCtx.Settlement.ExecuteOffer(ctx, toIntent(param.Offer), param.Signature, param.Seller)
	if err != nil {
		return nil, err
	}
	return toTradeInfo(trade), nil
}

// CancelOrder 按 nonce 作废意图
func CancelOrder(ctx context.Context, svcCtx *svc.ServerCtx, param types.CancelOrderParam) error {
	return svcCtx.Settlement.CancelOrder(ctx, param.Maker, param.Side, param.Nonce)
}

// daoOrderFilter 转换查询条件，status 为空字符串表示不过滤
func daoOrderFilter(param types.OrdersQueryParam) dao.OrderFilter {
	filter := dao.OrderFilter{
		CollectionId: param.CollectionId,
		TokenId:      param.TokenId,
		Side:         param.Side,
		Maker:        param.Maker,
		Page:         param.Page,
		PageSize:     param.PageSize,
	}
	if param.Status != "" {
		if n, err := strconv.ParseInt(param.Status, 10, 8); err == nil {
			status := int8(n)
			filter.Status = &status
		}
	}
	return filter
}

// QueryOrders 订单簿查询
func QueryOrders(ctx context.Context, svcCtx *svc.ServerCtx, param types.OrdersQueryParam) (*types.PageResult, error) {
	param.Normalize()

	filter := daoOrderFilter(param)
	orders, total, err := svcCtx.Dao.QueryOrders(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query orders")
	}
	return &types.PageResult{List: orders, Total: total, Page: param.Page}, nil
}

// QueryTrades 成交记录查询
func QueryTrades(ctx context.Context, svcCtx *svc.ServerCtx, collectionId int64, account string, page types.PageParam) (*types.PageResult, error) {
	page.Normalize()

	trades, total, err := svcCtx.Dao.QueryTrades(ctx, collectionId, account, page.Page, page.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query trades")
	}
	list := make([]*types.TradeInfo, 0, len(trades))
	for i := range trades {
		list = append(list, toTradeInfo(&trades[i]))
	}
	return &types.PageResult{List: list, Total: total, Page: page.Page}, nil
}
