package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/idx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

type MeHandler struct{}

// ServeHTTP returns the caller's account.
//
//	@Summary		Current user
//	@Tags			User
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	boothsdk.UserInfo
//	@Failure		401	{object}	boothsdk.ErrorResponse	"Missing or invalid access token"
//	@Failure		403	{object}	boothsdk.ErrorResponse	"User is deactivated"
//	@Router			/api/user/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

type AudioHandler struct {
	Audio *service.AudioService

	// MaxBytes caps the whole multipart request body.
	MaxBytes int64
}

// HandleList returns the caller's audio files.
//
//	@Summary		List my audio
//	@Tags			User
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{array}		boothsdk.AudioResponse
//	@Failure		401	{object}	boothsdk.ErrorResponse	"Missing or invalid access token"
//	@Failure		403	{object}	boothsdk.ErrorResponse	"User is deactivated"
//	@Router			/api/user/audio [get].
func (h *AudioHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	files, err := h.Audio.List(r.Context(), user.ID, false)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]boothsdk.AudioResponse, len(files))
	for i, f := range files {
		out[i] = toAudioResponse(f)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpload stores an uploaded audio file for the caller.
//
//	@Summary		Upload audio
//	@Description	Accepts mp3, wav, ogg, m4a and flac files with an audio/* content type. A missing or generic content type is detected from the file.
//	@Tags			User
//	@Security		CookieAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file_name	query		string					true	"Display name for the file"
//	@Param			file		formData	file					true	"Audio file"
//	@Success		201			{object}	boothsdk.AudioResponse
//	@Failure		400			{object}	boothsdk.ErrorResponse	"Not an audio file or unsupported format"
//	@Failure		401			{object}	boothsdk.ErrorResponse	"Missing or invalid access token"
//	@Failure		413			{object}	boothsdk.ErrorResponse	"File too large"
//	@Failure		500			{object}	boothsdk.ErrorResponse	"Storage failure"
//	@Router			/api/user/upload-audio [post].
func (h *AudioHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			slogx.FromContext(r.Context()).Warn("upload too large", "limit", tooBig.Limit)
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, boothsdk.CodeValidation, "file is too large")
			return
		}
		badRequest(w, r, "expected a multipart form with a file field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "file is required")
		return
	}
	defer file.Close()

	audio, err := h.Audio.Upload(r.Context(), user, service.Upload{
		UserFilename: r.URL.Query().Get("file_name"),
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAudioResponse(audio))
}

// HandleDelete deletes one audio file. Owners may delete their own files;
// supervisors may delete anyone's.
//
//	@Summary		Delete audio
//	@Tags			User
//	@Security		CookieAuth
//	@Produce		json
//	@Param			audio_id	query		string					true	"Audio file id"
//	@Param			full_delete	query		bool					false	"Also remove the stored file"
//	@Success		200			{boolean}	boolean					"true"
//	@Failure		400			{object}	boothsdk.ErrorResponse	"Bad query"
//	@Failure		403			{object}	boothsdk.ErrorResponse	"Not the owner"
//	@Failure		404			{object}	boothsdk.ErrorResponse	"No such file"
//	@Router			/api/user/delete-audio [delete].
func (h *AudioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	raw := strings.TrimSpace(r.URL.Query().Get("audio_id"))
	if raw == "" {
		badRequest(w, r, "audio_id is required")
		return
	}
	audioID, err := idx.Parse(raw)
	if err != nil {
		badRequest(w, r, "audio_id must be a valid id")
		return
	}
	full, err := httpx.QueryBool(r, "full_delete", false)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	if err := h.Audio.Delete(r.Context(), user, audioID.String(), full); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, true)
}
