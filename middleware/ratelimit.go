package middleware

import (
	"sync"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a process-wide sliding-window counter keyed by caller.
// Windows are rolled forward lazily on access; there is no background timer.
// Entries are created on first use and kept for the process lifetime.
type RateLimiter struct {
	window  time.Duration
	entries sync.Map // key -> *windowCounter
}

type windowCounter struct {
	mu    sync.Mutex
	start time.Time
	count int
}

func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{window: window}
}

// Check admits or rejects one call for the key. A rejected call does not
// increment the counter, so rejections never push the window further out.
func (l *RateLimiter) Check(key string, limit int) error {
	now := time.Now()
	v, _ := l.entries.LoadOrStore(key, &windowCounter{start: now})
	w := v.(*windowCounter)

	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.start) >= l.window {
		w.start = now
		w.count = 0
	}
	if w.count >= limit {
		return apperrors.RateLimited("too many requests")
	}
	w.count++
	return nil
}

// RateLimit guards an endpoint class with the given ceiling, keyed by client
// address and class so independent callers never contend.
func RateLimit(l *RateLimiter, limit int, class string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := l.Check(c.ClientIP()+":"+class, limit); err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.Next()
	}
}
