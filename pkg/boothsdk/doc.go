/*
Package boothsdk is a Go client for the soundbooth API.

# Client vs Session

Client covers the public endpoints: health probes, the Yandex login
redirect, the OAuth callback and token refresh. A successful callback or
refresh returns a Session, which carries the token pair and signs every
request with the access token.

	client := boothsdk.NewClient("https://sound.example.com")

	// Where to send the browser.
	redirect, err := client.LoginURL(ctx)

	// After Yandex redirects back with ?code=...
	session, err := client.Callback(ctx, code)

	me, err := session.Me(ctx)
	audio, err := session.UploadAudio(ctx, "Demo take", "take.mp3", "audio/mpeg", f)

Sessions refresh the access token shortly before it expires, using the
refresh token. Refresh tokens are not rotated by the server.

# Errors

Non-2xx responses are returned as *APIError carrying the status, the error
code and the server's detail message:

	var apiErr *boothsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == boothsdk.CodeForbidden {
		// deactivated or not a supervisor
	}
*/
package boothsdk
