package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ProjectsTask/EasySwapTrade/src/dao"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// QueryActivities 活动流水查询
func QueryActivities(ctx context.Context, svcCtx *svc.ServerCtx, param types.ActivityQueryParam) (*types.PageResult, error) {
	param.Normalize()

	account := ""
	if param.Account != "" {
		account = common.HexToAddress(param.Account).Hex()
	}
	activities, total, err := svcCtx.Dao.QueryActivities(ctx, dao.ActivityFilter{
		CollectionId: param.CollectionId,
		TokenId:      param.TokenId,
		Account:      account,
		Page:         param.Page,
		PageSize:     param.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]types.ActivityInfo, 0, len(activities))
	for _, a := range activities {
		list = append(list, types.ActivityInfo{
			ActivityType:   a.ActivityType,
			Maker:          a.Maker,
			Taker:          a.Taker,
			CollectionId:   a.CollectionId,
			TokenId:        a.TokenId,
			Price:          a.Price,
			RoyaltyAmount:  a.RoyaltyAmount,
			FeeAmount:      a.FeeAmount,
			SellerProceeds: a.SellerProceeds,
			AuctionId:      a.AuctionId,
			OrderId:        a.OrderId,
			EventTime:      a.EventTime,
		})
	}
	return &types.PageResult{List: list, Total: total, Page: param.Page}, nil
}
