package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/kit/validator"
	"github.com/ProjectsTask/EasySwapTrade/base/xhttp"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	service "github.com/ProjectsTask/EasySwapTrade/src/service/v1"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// CreateAuctionHandler 创建英式拍卖，token 当场托管
func CreateAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.CreateAuctionParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		auction, err := service.CreateAuction(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}

// PlaceBidHandler 出价，资金当场锁定
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		var param types.PlaceBidParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		auction, err := service.PlaceBid(c.Request.Context(), svcCtx, auctionId, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}

// SettleAuctionHandler 结算到期拍卖，任何人可触发
func SettleAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		trade, err := service.SettleAuction(c.Request.Context(), svcCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		if trade == nil {
			// 流拍，token 已退回卖家
			xhttp.Ok(c)
			return
		}
		xhttp.OkJson(c, trade)
	}
}

// WithdrawBidHandler 取回被反超的出价资金
func WithdrawBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		var param types.WithdrawBidParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		amount, err := service.WithdrawBid(c.Request.Context(), svcCtx, auctionId, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"amount": amount})
	}
}

// CancelAuctionHandler 卖家取消无出价拍卖
func CancelAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		var param types.CancelAuctionParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.CancelAuction(c.Request.Context(), svcCtx, auctionId, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// GetAuctionHandler 拍卖详情
func GetAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		auction, err := service.GetAuction(c.Request.Context(), svcCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}

// ListAuctionsHandler 拍卖列表
func ListAuctionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.AuctionsQueryParam
		if err := c.ShouldBindQuery(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.ListAuctions(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// ListAuctionBidsHandler 拍卖出价记录
func ListAuctionBidsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		bids, err := service.ListAuctionBids(c.Request.Context(), svcCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, bids)
	}
}
