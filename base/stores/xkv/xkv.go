package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store 封装 go-zero 的 kv.Store，统一缓存读写入口
type Store struct {
	kv.Store
}

func NewStore(c kv.KvConf) *Store {
	return &Store{Store: kv.NewStore(c)}
}

// Read 读取缓存，命中返回 (val, true)
func (s *Store) Read(key string) (string, bool) {
	val, err := s.Get(key)
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

// Write 带过期时间写入缓存，写失败不向上传播
func (s *Store) Write(key, val string, seconds int) {
	if seconds > 0 {
		_ = s.Setex(key, val, seconds)
		return
	}
	_ = s.Set(key, val)
}

// Delete 删除缓存键
func (s *Store) Delete(keys ...string) {
	_, _ = s.Del(keys...)
}
