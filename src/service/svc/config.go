package svc

import (
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/stores/xkv"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/dao"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/auction"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/eip712"
	"github.com/ProjectsTask/EasySwapTrade/src/engine/settlement"
)

// ServerCtx 服务上下文，贯穿 API 与 Service 层
type ServerCtx struct {
	C          *config.Config
	DB         *gorm.DB
	KvStore    *xkv.Store
	Dao        *dao.Dao
	Verifier   *eip712.Verifier
	Settlement *settlement.Engine
	Auction    *auction.Engine
}

// CtxConfig Option 模式构建 ServerCtx
type CtxConfig struct {
	db         *gorm.DB
	kvStore    *xkv.Store
	dao        *dao.Dao
	verifier   *eip712.Verifier
	settlement *settlement.Engine
	auction    *auction.Engine
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:         c.db,
		KvStore:    c.kvStore,
		Dao:        c.dao,
		Verifier:   c.verifier,
		Settlement: c.settlement,
		Auction:    c.auction,
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.kvStore = kv
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithVerifier(v *eip712.Verifier) CtxOption {
	return func(conf *CtxConfig) {
		conf.verifier = v
	}
}

func WithSettlement(e *settlement.Engine) CtxOption {
	return func(conf *CtxConfig) {
		conf.settlement = e
	}
}

func WithAuction(e *auction.Engine) CtxOption {
	return func(conf *CtxConfig) {
		conf.auction = e
	}
}
