package http

import (
	"net/http"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/idx"
)

const maxJSONBody = 64 << 10

type SupervisorHandler struct {
	Supervisors *service.SupervisorService
}

// targetUser reads and checks the user id from the path or query.
func targetUser(w http.ResponseWriter, r *http.Request, raw string) (string, bool) {
	id, err := idx.Parse(raw)
	if err != nil {
		badRequest(w, r, "user_id must be a valid id")
		return "", false
	}
	return id.String(), true
}

// HandleGet returns any user.
//
//	@Summary		Get user
//	@Tags			Supervisor
//	@Security		CookieAuth
//	@Produce		json
//	@Param			user_id	path		string	true	"User id"
//	@Success		200		{object}	boothsdk.UserInfo
//	@Failure		403		{object}	boothsdk.ErrorResponse	"Administrator privileges required"
//	@Failure		404		{object}	boothsdk.ErrorResponse	"User not found"
//	@Router			/api/supervisor/{user_id} [get].
func (h *SupervisorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := targetUser(w, r, r.PathValue("user_id"))
	if !ok {
		return
	}

	u, err := h.Supervisors.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(u))
}

// HandleListAudio returns a user's audio files.
//
//	@Summary		List user audio
//	@Tags			Supervisor
//	@Security		CookieAuth
//	@Produce		json
//	@Param			user_id			path		string	true	"User id"
//	@Param			include_deleted	query		bool	false	"Include soft-deleted files"
//	@Success		200				{array}		boothsdk.AudioFullInfo
//	@Failure		403				{object}	boothsdk.ErrorResponse	"Administrator privileges required"
//	@Failure		404				{object}	boothsdk.ErrorResponse	"User not found"
//	@Router			/api/supervisor/{user_id}/audio [get].
func (h *SupervisorHandler) HandleListAudio(w http.ResponseWriter, r *http.Request) {
	userID, ok := targetUser(w, r, r.PathValue("user_id"))
	if !ok {
		return
	}
	includeDeleted, err := httpx.QueryBool(r, "include_deleted", false)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	files, err := h.Supervisors.ListUserAudio(r.Context(), userID, includeDeleted)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]boothsdk.AudioFullInfo, len(files))
	for i, f := range files {
		out[i] = toAudioFullInfo(f)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate edits a user's profile.
//
//	@Summary		Update user
//	@Tags			Supervisor
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			user_id	path		string						true	"User id"
//	@Param			body	body		boothsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	boothsdk.UserInfo
//	@Failure		400		{object}	boothsdk.ErrorResponse	"Invalid body"
//	@Failure		403		{object}	boothsdk.ErrorResponse	"Administrator privileges required"
//	@Failure		404		{object}	boothsdk.ErrorResponse	"User not found"
//	@Failure		409		{object}	boothsdk.ErrorResponse	"Email already in use"
//	@Router			/api/supervisor/{user_id} [put].
func (h *SupervisorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := targetUser(w, r, r.PathValue("user_id"))
	if !ok {
		return
	}

	var req boothsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(r, &req, maxJSONBody); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	u, err := h.Supervisors.UpdateUser(r.Context(), userID, service.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(u))
}

// HandleDelete deactivates a user, or removes them and their files.
//
//	@Summary		Delete user
//	@Description	Without full_delete the user is deactivated. With it the user, their audio records and stored files are removed.
//	@Tags			Supervisor
//	@Security		CookieAuth
//	@Produce		json
//	@Param			user_id		path		string	true	"User id"
//	@Param			full_delete	query		bool	false	"Remove instead of deactivating"
//	@Success		200			{boolean}	boolean	"true"
//	@Failure		403			{object}	boothsdk.ErrorResponse	"Administrator privileges required"
//	@Failure		404			{object}	boothsdk.ErrorResponse	"User not found"
//	@Router			/api/supervisor/{user_id} [delete].
func (h *SupervisorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := targetUser(w, r, r.PathValue("user_id"))
	if !ok {
		return
	}
	full, err := httpx.QueryBool(r, "full_delete", false)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	if err := h.Supervisors.DeleteUser(r.Context(), userID, full); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, true)
}

// HandleActivate re-enables a deactivated user.
//
//	@Summary		Activate user
//	@Tags			Supervisor
//	@Security		CookieAuth
//	@Produce		json
//	@Param			user_id	query		string	true	"User id"
//	@Success		200		{boolean}	boolean	"true"
//	@Failure		403		{object}	boothsdk.ErrorResponse	"Administrator privileges required"
//	@Failure		404		{object}	boothsdk.ErrorResponse	"User not found"
//	@Router			/api/supervisor/activate-user [post].
func (h *SupervisorHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := targetUser(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	if err := h.Supervisors.ActivateUser(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, true)
}
