// Package ratelimiter はクライアント単位で操作の頻度を制限します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter は、キーごとの操作の頻度を判定するインターフェースです。
type Limiter interface {
	// Allow は許可する場合trueを、拒否する場合falseと次に許可されるまでの時間を返します。
	Allow(key string) (bool, time.Duration)
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は、固定ウィンドウ方式でキーごとの呼び出し回数を制限します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow はkeyの呼び出し回数が上限に達しているかを確認します。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.sweep(now)
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	w.count++
	return true, 0
}

// sweep は期限切れのウィンドウを破棄します。呼び出し側でロックを保持していること。
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware はクライアントIPごとにリクエストを制限するGinミドルウェアを返します。
// 上限を超えた場合は429とRetry-Afterヘッダーを返します。
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := l.Allow(c.ClientIP())
		if !ok {
			secs := int((wait + time.Second - 1) / time.Second)
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath(), "retry_after", wait)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
