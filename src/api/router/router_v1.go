package router

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ProjectsTask/EasySwapTrade/src/api/v1"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
)

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api/v1")

	collections := apiV1.Group("/collections")
	{
		collections.POST("", v1.CreateCollectionHandler(svcCtx))
		collections.GET("", v1.ListCollectionsHandler(svcCtx))
		collections.GET("/:id", v1.GetCollectionHandler(svcCtx))
		collections.POST("/:id/items", v1.MintItemHandler(svcCtx))
		collections.POST("/:id/items/approve", v1.ApproveItemHandler(svcCtx))
		collections.GET("/:id/items/:token_id", v1.GetItemHandler(svcCtx))
	}

	orders := apiV1.Group("/orders")
	{
		orders.POST("", v1.CreateOrderHandler(svcCtx))
		orders.GET("", v1.QueryOrdersHandler(svcCtx))
		orders.POST("/execute", v1.ExecuteOrderHandler(svcCtx))
		orders.POST("/cancel", v1.CancelOrderHandler(svcCtx))
	}
	apiV1.POST("/offers/execute", v1.ExecuteOfferHandler(svcCtx))
	apiV1.GET("/trades", v1.QueryTradesHandler(svcCtx))

	auctions := apiV1.Group("/auctions")
	{
		auctions.POST("", v1.CreateAuctionHandler(svcCtx))
		auctions.GET("", v1.ListAuctionsHandler(svcCtx))
		auctions.GET("/:id", v1.GetAuctionHandler(svcCtx))
		auctions.POST("/:id/bids", v1.PlaceBidHandler(svcCtx))
		auctions.GET("/:id/bids", v1.ListAuctionBidsHandler(svcCtx))
		auctions.POST("/:id/settle", v1.SettleAuctionHandler(svcCtx))
		auctions.POST("/:id/withdraw", v1.WithdrawBidHandler(svcCtx))
		auctions.POST("/:id/cancel", v1.CancelAuctionHandler(svcCtx))
	}

	assets := apiV1.Group("/assets")
	{
		assets.POST("/deposit", v1.DepositHandler(svcCtx))
		assets.POST("/withdraw", v1.WithdrawHandler(svcCtx))
		assets.POST("/approve", v1.ApproveAssetHandler(svcCtx))
		assets.GET("/balances/:account", v1.GetBalancesHandler(svcCtx))
	}
	apiV1.GET("/accounts/:account/items", v1.ListItemsByOwnerHandler(svcCtx))

	apiV1.GET("/activities", v1.QueryActivitiesHandler(svcCtx))

	admin := apiV1.Group("/admin")
	{
		admin.GET("/config", v1.GetMarketConfigHandler(svcCtx))
		admin.POST("/fee", v1.SetFeeHandler(svcCtx))
		admin.POST("/royalty", v1.SetRoyaltyHandler(svcCtx))
		admin.POST("/pause", v1.SetPausedHandler(svcCtx))
	}
}
