package http

import (
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
)

func toUserInfo(u domain.User) boothsdk.UserInfo {
	return boothsdk.UserInfo{
		ID:           u.ID,
		YandexID:     u.YandexID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		IsActive:     u.IsActive,
		IsSupervisor: u.IsSupervisor,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toAudioResponse(a domain.AudioFile) boothsdk.AudioResponse {
	return boothsdk.AudioResponse{
		ID:           a.ID,
		Filename:     a.Filename,
		UserFilename: a.UserFilename,
		ContentType:  a.ContentType,
		Path:         a.Path,
		Size:         a.Size,
	}
}

func toAudioFullInfo(a domain.AudioFile) boothsdk.AudioFullInfo {
	return boothsdk.AudioFullInfo{
		AudioID:      a.ID,
		Filename:     a.Filename,
		UserFilename: a.UserFilename,
		UserID:       a.UserID,
		Path:         a.Path,
		Size:         a.Size,
		IsDeleted:    a.IsDeleted,
		CreatedAt:    a.CreatedAt,
	}
}

func tokenPair(s domain.Session) boothsdk.TokenPair {
	return boothsdk.TokenPair{
		AccessToken:  s.Tokens.Access,
		RefreshToken: s.Tokens.Refresh,
	}
}
