package domain

import "github.com/aussiebroadwan/soundbooth/pkg/jwtx"

// Session is the result of a login or refresh: the resolved user and the
// freshly issued tokens.
type Session struct {
	User   User
	Tokens jwtx.Pair
}
