package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe. Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	boothsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, boothsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Pings the database and the blob storage backend.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	boothsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	boothsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, blobs storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &boothsdk.HealthChecks{
			Database: "ok",
			Storage:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
		if err := blobs.Ping(r.Context()); err != nil {
			checks.Storage = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, boothsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
