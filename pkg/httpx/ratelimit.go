package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// RateLimit is one token bucket profile: Requests per Window, with up to
// Burst spent at once.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// RateLimits are the profiles routes choose from.
type RateLimits struct {
	Login RateLimit // sign-in attempts, per client
	Write RateLimit // role and preference changes
	Read  RateLimit // pages, lists and health checks
}

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Login: RateLimit{Requests: 5, Window: time.Minute, Burst: 5},
		Write: RateLimit{Requests: 20, Window: time.Minute, Burst: 20},
		Read:  RateLimit{Requests: 100, Window: time.Minute, Burst: 100},
	}
}

// WithDefaults fills every unusable profile from DefaultRateLimits, so a
// zero RateLimits behaves like the defaults.
func (l RateLimits) WithDefaults() RateLimits {
	d := DefaultRateLimits()
	if !l.Login.valid() {
		l.Login = d.Login
	}
	if !l.Write.valid() {
		l.Write = d.Write
	}
	if !l.Read.valid() {
		l.Read = d.Read
	}
	return l
}

func (l RateLimit) valid() bool {
	return l.Requests > 0 && l.Window > 0 && l.Burst > 0
}

func (l RateLimit) perSecond() rate.Limit {
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// ClientIP returns the caller's address, preferring the first
// X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// PerIP limits each client address separately.
func (l RateLimit) PerIP() Middleware {
	return l.middleware(ClientIP)
}

// PerUser limits each signed-in user separately, per address. Requests
// without a session share the address bucket.
func (l RateLimit) PerUser() Middleware {
	return l.middleware(func(r *http.Request) string {
		userID, _ := r.Context().Value(CtxKeyUserID).(string)
		if userID == "" {
			return ClientIP(r)
		}
		return userID + ":" + ClientIP(r)
	})
}

// PerIPAndField limits each client address and form value pair, so a
// guessed username cannot lock out everyone behind the same address.
func (l RateLimit) PerIPAndField(field string) Middleware {
	return l.middleware(func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ClientIP(r)
		}
		return ClientIP(r) + ":" + r.FormValue(field)
	})
}

func (l RateLimit) middleware(key func(*http.Request) string) Middleware {
	b := newBuckets(l)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			limiter := b.get(k)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			// Peek at when the next token lands without spending it
			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.Requests))
			w.Header().Set("X-RateLimit-Window", l.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests,
				"rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// idleSweep is how often buckets that refilled completely are dropped.
const idleSweep = 5 * time.Minute

// buckets holds one limiter per key.
type buckets struct {
	limit RateLimit

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastSweep time.Time
}

func newBuckets(l RateLimit) *buckets {
	return &buckets{
		limit:     l,
		limiters:  make(map[string]*rate.Limiter),
		lastSweep: time.Now(),
	}
}

func (b *buckets) get(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.lastSweep) >= idleSweep {
		b.sweep()
	}

	limiter, ok := b.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(b.limit.perSecond(), b.limit.Burst)
		b.limiters[key] = limiter
	}
	return limiter
}

// sweep drops limiters with a full bucket; they have been idle long enough
// to refill and a fresh one behaves the same. Caller holds mu.
func (b *buckets) sweep() {
	b.lastSweep = time.Now()
	for k, limiter := range b.limiters {
		if limiter.Tokens() >= float64(b.limit.Burst) {
			delete(b.limiters, k)
		}
	}
}
