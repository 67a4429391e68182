package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/kit/validator"
	"github.com/ProjectsTask/EasySwapTrade/base/xhttp"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	service "github.com/ProjectsTask/EasySwapTrade/src/service/v1"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// CreateOrderHandler 挂单/出价入库
// 只校验签名与基础约束，资金与所有权在执行时才检查
func CreateOrderHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.CreateOrderParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		orderId, err := service.CreateOrder(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"order_id": orderId})
	}
}

// ExecuteOrderHandler 买方携款执行卖方订单
func ExecuteOrderHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.ExecuteOrderParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		trade, err := service.ExecuteOrder(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, trade)
	}
}

// ExecuteOfferHandler 卖方接受买方出价，货款走包装资产授权额度
func ExecuteOfferHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.ExecuteOfferParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		trade, err := service.ExecuteOffer(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, trade)
	}
}

// CancelOrderHandler 作废指定 nonce 的签名意图
func CancelOrderHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.CancelOrderParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.CancelOrder(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// QueryOrdersHandler 订单簿查询
func QueryOrdersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.OrdersQueryParam
		if err := c.ShouldBindQuery(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.QueryOrders(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// QueryTradesHandler 成交记录查询
func QueryTradesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page types.PageParam
		if err := c.ShouldBindQuery(&page); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		collectionId, _ := strconv.ParseInt(c.Query("collection_id"), 10, 64)
		account := c.Query("account")

		res, err := service.QueryTrades(c.Request.Context(), svcCtx, collectionId, account, page)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
