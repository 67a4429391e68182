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

// CreateCollectionHandler 工厂注册集合
func CreateCollectionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.CreateCollectionParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		collection, err := service.CreateCollection(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, collection)
	}
}

// GetCollectionHandler 集合详情
func GetCollectionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		collection, err := service.GetCollection(c.Request.Context(), svcCtx, collectionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, collection)
	}
}

// ListCollectionsHandler 集合列表
func ListCollectionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page types.PageParam
		if err := c.ShouldBindQuery(&page); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.ListCollections(c.Request.Context(), svcCtx, page)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// MintItemHandler 在集合下登记 token
func MintItemHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		var param types.MintItemParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		item, err := service.MintItem(c.Request.Context(), svcCtx, collectionId, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, item)
	}
}

// ApproveItemHandler 持有人授权/撤销引擎转移 token
func ApproveItemHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		var param types.ApproveItemParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		param.CollectionId = collectionId
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.ApproveItem(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// GetItemHandler token 详情
func GetItemHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionId, err := pathId(c, "id")
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		tokenId := c.Param("token_id")
		if tokenId == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		item, err := service.GetItem(c.Request.Context(), svcCtx, collectionId, tokenId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, item)
	}
}

// ListItemsByOwnerHandler 账户持仓
func ListItemsByOwnerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := c.Param("account")
		if !validator.IsEvmAddress(account) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		var page types.PageParam
		if err := c.ShouldBindQuery(&page); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.ListItemsByOwner(c.Request.Context(), svcCtx, account, page)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
