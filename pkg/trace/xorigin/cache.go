package xorigin

import (
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxCacheSize 决策缓存最大条目数上限。
const maxCacheSize = 1 << 20

// decisionCache 白名单判定结果的备忘缓存。
//
// 设计决策: key 使用 URL 的 xxhash 64 位哈希而非 URL 字符串本身，
// 避免缓存层长期持有任意长度的 URL。64 位哈希的碰撞概率在
// 百万级条目下可以忽略，且碰撞最坏后果只是对个别 URL 返回
// 错误的缓存判定，不影响请求本身的成功与否。
type decisionCache struct {
	lru *expirable.LRU[uint64, bool]
}

func newDecisionCache(size int, ttl time.Duration) (*decisionCache, error) {
	if size <= 0 || size > maxCacheSize {
		return nil, ErrInvalidCacheSize
	}
	if ttl < 0 {
		return nil, ErrInvalidCacheTTL
	}
	return &decisionCache{
		lru: expirable.NewLRU[uint64, bool](size, nil, ttl),
	}, nil
}

func (c *decisionCache) get(rawURL string) (bool, bool) {
	return c.lru.Get(xxhash.Sum64String(rawURL))
}

func (c *decisionCache) put(rawURL string, eligible bool) {
	c.lru.Add(xxhash.Sum64String(rawURL), eligible)
}
