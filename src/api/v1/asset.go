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

// DepositHandler 账户充值
func DepositHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.DepositParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}
		if !param.Amount.IsPositive() {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.Deposit(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// WithdrawHandler 账户提现
func WithdrawHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.WithdrawParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}
		if !param.Amount.IsPositive() {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.Withdraw(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// ApproveAssetHandler 包装资产授权额度，覆盖式更新
func ApproveAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.ApproveAssetParam
		if err := c.ShouldBindJSON(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&param); err != nil {
			xhttp.Error(c, err)
			return
		}
		if param.Amount.IsNegative() {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.ApproveAsset(c.Request.Context(), svcCtx, param); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.Ok(c)
	}
}

// GetBalancesHandler 账户余额
func GetBalancesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := c.Param("account")
		if !validator.IsEvmAddress(account) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		balances, err := service.GetBalances(c.Request.Context(), svcCtx, account)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, balances)
	}
}
