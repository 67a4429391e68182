package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/daemon"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
)

// Platform 平台结构体，作为整个应用程序的容器
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
	settler   *daemon.Settler
}

// NewPlatform 创建一个新的 Platform 实例
func NewPlatform(ctx context.Context, config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	var settler *daemon.Settler
	if config.Settler.Enable {
		settler = daemon.New(ctx, serverCtx, config.Settler)
	}
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
		settler:   settler,
	}, nil
}

// Start 启动平台服务，阻塞监听指定端口
func (p *Platform) Start() {
	if p.settler != nil {
		p.settler.Start()
	}
	xzap.WithContext(context.Background()).Info("EasySwap-Trade run", zap.String("port", p.config.Api.Port))
	if err := p.router.Run(p.config.Api.Port); err != nil {
		panic(err)
	}
}
