package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/base/xhttp"
)

// RecoverMiddleware 捕获 handler panic，记录堆栈并返回统一错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", p),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				xhttp.Error(c, errcode.ErrUnexpected)
				c.Abort()
			}
		}()
		c.Next()
	}
}
