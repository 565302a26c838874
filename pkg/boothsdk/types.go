package boothsdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// TokenPair is returned by the callback and refresh endpoints. The same
// values are also set as the access_token and refresh_token cookies.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginRedirect is returned by the login endpoint to clients that ask for
// JSON instead of a 302.
type LoginRedirect struct {
	RedirectURL string `json:"redirect_url"`
}

// UserInfo describes a user account.
type UserInfo struct {
	ID           string    `json:"id"`
	YandexID     string    `json:"yandex_id"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Email        *string   `json:"email"`
	IsActive     bool      `json:"is_active"`
	IsSupervisor bool      `json:"is_supervisor"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AudioResponse describes an audio file to its owner.
type AudioResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	UserFilename string `json:"user_filename"`
	ContentType  string `json:"content_type"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// AudioFullInfo is the supervisor view of an audio file.
type AudioFullInfo struct {
	AudioID      string    `json:"audio_id"`
	Filename     string    `json:"filename"`
	UserFilename string    `json:"user_filename"`
	UserID       string    `json:"user_id"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateUserRequest is a partial profile edit. Nil fields are left alone.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}
