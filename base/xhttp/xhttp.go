package xhttp

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapTrade/base/errcode"
)

// Response 统一响应结构
type Response struct {
	Code uint32      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson 成功响应
func OkJson(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.ErrOK.Code(),
		Msg:  errcode.ErrOK.Msg(),
		Data: v,
	})
}

// Ok 无数据成功响应
func Ok(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.ErrOK.Code(),
		Msg:  errcode.ErrOK.Msg(),
	})
}

// Error 错误响应，业务错误码放在 body 与网关透传头中
func Error(c *gin.Context, err error) {
	e := errcode.ParseErr(err)
	c.Header("X-GW-Error-Code", fmt.Sprintf("%d", e.Code()))
	c.Header("X-GW-Error-Message", e.Msg())
	c.JSON(http.StatusOK, Response{
		Code: e.Code(),
		Msg:  e.Msg(),
	})
}
