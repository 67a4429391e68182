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

// SetFeeHandler 治理层调整平台费，需管理员签名
func SetFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.SetFeeParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.SetFee(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// SetRoyaltyHandler 治理层调整集合版税，需管理员签名
func SetRoyaltyHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.SetRoyaltyParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.SetRoyalty(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// SetPausedHandler 治理层暂停/恢复撮合，需管理员签名
func SetPausedHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.SetPausedParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}

		if err := service.SetPaused(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// GetMarketConfigHandler 当前市场参数
func GetMarketConfigHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := service.GetMarketConfig(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, cfg)
	}
}
