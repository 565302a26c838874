package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: Requests per Window, with up to Burst
// requests allowed at once.
type RateLimitConfig struct {
	Requests int           `envconfig:"REQUESTS"`
	Window   time.Duration `envconfig:"WINDOW"`
	Burst    int           `envconfig:"BURST"`
}

// RateLimits groups the three profiles the router uses. Each can be
// overridden through RATELIMIT_{STRICT,MODERATE,LENIENT}_{REQUESTS,WINDOW,BURST}.
type RateLimits struct {
	// Strict guards the login endpoints against code replay and brute force.
	Strict RateLimitConfig `envconfig:"STRICT"`
	// Moderate applies to authenticated traffic, keyed by user.
	Moderate RateLimitConfig `envconfig:"MODERATE"`
	// Lenient is for health probes.
	Lenient RateLimitConfig `envconfig:"LENIENT"`
}

var (
	StrictLimit   = RateLimitConfig{Requests: 5, Window: time.Minute, Burst: 5}
	ModerateLimit = RateLimitConfig{Requests: 20, Window: time.Minute, Burst: 20}
	LenientLimit  = RateLimitConfig{Requests: 100, Window: time.Minute, Burst: 100}
)

func DefaultRateLimits() RateLimits {
	return RateLimits{Strict: StrictLimit, Moderate: ModerateLimit, Lenient: LenientLimit}
}

// Valid reports whether the bucket can admit any request at all.
func (c RateLimitConfig) Valid() bool {
	return c.Requests > 0 && c.Window > 0 && c.Burst > 0
}

// KeyExtractor picks the bucket a request is counted against.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor uses the first X-Forwarded-For hop, then X-Real-IP, then
// the connection's remote address.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserIDKeyExtractor returns the authenticated user id, or "".
func UserIDKeyExtractor(r *http.Request) string {
	id, _ := UserIDFromContext(r.Context())
	return id
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, ex := range extractors {
			if key := ex(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

const (
	sweepEvery = 5 * time.Minute
	idleAfter  = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= sweepEvery {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) >= idleAfter {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RateLimitMiddleware rejects requests over cfg with 429. Requests with no
// key pass through.
func RateLimitMiddleware(cfg RateLimitConfig, key KeyExtractor) Middleware {
	set := &limiterSet{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			limiter := set.get(k, time.Now())
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			log.Warn("rate limit exceeded", "key", k, "retry_after", retryAfter)
			WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
		})
	}
}

func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser keys on user id plus IP, which degrades to IP alone for
// anonymous requests.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", UserIDKeyExtractor, IPKeyExtractor))
}
