package svc

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/base/stores/gdb"
	"github.com/ProjectsTask/EasySwapTrade/base/stores/xkv"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/dao"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/auction"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/eip712"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/fees"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/settlement"
	"github.com/ProjectsTask/EasySwapTrade/src/model"
)

// NewServiceContext 初始化服务上下文，装配日志、存储与结算/拍卖引擎
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	// 1. 日志
	if _, err := xzap.SetUp(c.Log); err != nil {
		return nil, err
	}

	// 2. Redis 缓存
	var kvConf kv.KvConf
	if c.Kv != nil {
		for _, con := range c.Kv.Redis {
			kvConf = append(kvConf, cache.NodeConf{
				RedisConf: redis.RedisConf{
					Host: con.Host,
					Type: con.Type,
					Pass: con.Pass,
				},
				Weight: 1,
			})
		}
	}
	var store *xkv.Store
	if len(kvConf) > 0 {
		store = xkv.NewStore(kvConf)
	}

	// 3. 数据库
	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}
	if err := model.Migrate(db); err != nil {
		return nil, err
	}

	// 4. 引擎装配：签名校验器 domain 绑定链与部署实例
	verifier := eip712.NewVerifier(c.Signing.DomainName, c.Signing.DomainVersion,
		c.Chain.ID, c.Signing.VerifyingContract)
	resolver := fees.NewResolver()
	settlementEngine := settlement.New(db, verifier, resolver)
	auctionEngine := auction.New(db, resolver)

	// 5. 查询层
	d := dao.New(context.Background(), db, store)

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(d),
		WithVerifier(verifier),
		WithSettlement(settlementEngine),
		WithAuction(auctionEngine),
	)
	serverCtx.C = c

	return serverCtx, nil
}
