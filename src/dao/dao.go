package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapTrade/base/stores/xkv"
)

const (
	CacheCollectionTTL = 60 // 秒
	CacheAuctionTTL    = 5  // 拍卖读多写频，短缓存
)

// Dao 查询层，读多写少的接口走 redis 缓存
type Dao struct {
	ctx     context.Context
	DB      *gorm.DB
	KvStore *xkv.Store
}

func New(ctx context.Context, db *gorm.DB, kvStore *xkv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		DB:      db,
		KvStore: kvStore,
	}
}

// cacheKey 缓存键统一前缀
func cacheKey(parts ...interface{}) string {
	key := "cache:estrade"
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// readCache 缓存读，未配置 KvStore 时直接穿透
func (d *Dao) readCache(key string) (string, bool) {
	if d.KvStore == nil {
		return "", false
	}
	return d.KvStore.Read(key)
}

func (d *Dao) writeCache(key, val string, ttl int) {
	if d.KvStore == nil {
		return
	}
	d.KvStore.Write(key, val, ttl)
}

func (d *Dao) dropCache(keys ...string) {
	if d.KvStore == nil {
		return
	}
	d.KvStore.Delete(keys...)
}
