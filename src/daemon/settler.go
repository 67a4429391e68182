package daemon

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
)

// Settler 后台结算服务，周期性结算到期拍卖并将过期挂单落库为失效
type Settler struct {
	ctx      context.Context
	svcCtx   *svc.ServerCtx
	interval time.Duration
}

func New(ctx context.Context, svcCtx *svc.ServerCtx, cfg config.SettlerCfg) *Settler {
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Settler{
		ctx:      ctx,
		svcCtx:   svcCtx,
		interval: interval,
	}
}

func (s *Settler) Start() {
	threading.GoSafe(s.settleLoop)
}

func (s *Settler) settleLoop() {
	timer := time.NewTicker(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			xzap.WithContext(s.ctx).Info("settler loop exit")
			return
		case <-timer.C:
			s.runOnce()
		}
	}
}

func (s *Settler) runOnce() {
	settled, err := s.svcCtx.Auction.SettleDue(s.ctx)
	if err != nil {
		xzap.WithContext(s.ctx).Error("failed on settle due auctions", zap.Error(err))
	} else if settled > 0 {
		xzap.WithContext(s.ctx).Info("settled due auctions", zap.Int("count", settled))
	}

	expired, err := s.svcCtx.Settlement.ExpireOrders(s.ctx)
	if err != nil {
		xzap.WithContext(s.ctx).Error("failed on expire orders", zap.Error(err))
	} else if expired > 0 {
		xzap.WithContext(s.ctx).Info("expired stale orders", zap.Int64("count", expired))
	}
}
