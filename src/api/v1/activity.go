package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/xhttp"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
	service "github.com/ProjectsTask/EasySwapTrade/src/service/v1"
	types "github.com/ProjectsTask/EasySwapTrade/src/types/v1"
)

// QueryActivitiesHandler 活动流水查询
func QueryActivitiesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.ActivityQueryParam
		if err := c.ShouldBindQuery(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.QueryActivities(c.Request.Context(), svcCtx, param)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
