package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"

	_ "github.com/aussiebroadwan/soundbooth/api/soundbooth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	storage storage.Storage

	// Limits are the rate limit profiles. NewRouter sets the defaults.
	Limits httpx.RateLimits

	// MaxUploadBytes caps upload request bodies. Zero disables the cap.
	MaxUploadBytes int64

	AuthURL           AuthURLProvider
	SessionService    *service.SessionService
	AccessGuard       *service.AccessGuard
	AudioService      *service.AudioService
	SupervisorService *service.SupervisorService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	blobs storage.Storage,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		storage:      blobs,
		logger:       logger,
		Limits:       httpx.DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUser()
	r.registerSupervisor()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Soundbooth API
//	@version		0.1.0
//	@description	Yandex sign-in and per-user audio storage, with supervisor tools for managing accounts.
//	@description
//	@description				Session tokens are HMAC-signed JWTs delivered as HttpOnly cookies (access_token, refresh_token) with the value "Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/soundbooth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description				Access token cookie. An Authorization: Bearer header is accepted as well.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Login endpoints - strict rate limit by IP (code replay, provider abuse)
	r.Mux.Handle("GET /api/auth/login/yandex",
		httpx.Chain(&LoginHandler{Provider: r.AuthURL},
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
	r.Mux.Handle("GET /api/auth/yandex/callback",
		httpx.Chain(&CallbackHandler{Sessions: r.SessionService},
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	// POST /refresh - moderate, clients call it every access token lifetime
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(&RefreshHandler{Sessions: r.SessionService},
			httpx.RateLimitByIP(r.Limits.Moderate),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(LogoutHandler(),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
}

func (r *Router) registerUser() {
	audio := &AudioHandler{Audio: r.AudioService, MaxBytes: r.MaxUploadBytes}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			RequireUser(r.AccessGuard),
			httpx.RateLimitByUser(r.Limits.Moderate),
		)
	}

	r.Mux.Handle("GET /api/user/me", secured(&MeHandler{}))
	r.Mux.Handle("GET /api/user/audio", secured(http.HandlerFunc(audio.HandleList)))
	r.Mux.Handle("POST /api/user/upload-audio", secured(http.HandlerFunc(audio.HandleUpload)))
	r.Mux.Handle("DELETE /api/user/delete-audio", secured(http.HandlerFunc(audio.HandleDelete)))
}

func (r *Router) registerSupervisor() {
	h := &SupervisorHandler{Supervisors: r.SupervisorService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			RequireUser(r.AccessGuard),
			RequireSupervisor(r.AccessGuard),
			httpx.RateLimitByUser(r.Limits.Moderate),
		)
	}

	r.Mux.Handle("POST /api/supervisor/activate-user", secured(h.HandleActivate))
	r.Mux.Handle("GET /api/supervisor/{user_id}", secured(h.HandleGet))
	r.Mux.Handle("GET /api/supervisor/{user_id}/audio", secured(h.HandleListAudio))
	r.Mux.Handle("PUT /api/supervisor/{user_id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/supervisor/{user_id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.storage),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
}
