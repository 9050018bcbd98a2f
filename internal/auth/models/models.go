package models

import (
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// PublicConfig is what the backend discloses to clients. It must never carry
// the client secret.
type PublicConfig struct {
	ClientID    string `json:"clientId"`
	RedirectURI string `json:"redirectUri"`
}

// TokenRequest is the body of POST /api/linkedin/token
type TokenRequest struct {
	Code string `json:"code"`
}

// TokenResponse is the only token metadata handed back to clients.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

const (
	// NoEmail is shown when the provider did not release an email address.
	NoEmail = "Email not available"

	placeholderAvatar = "https://via.placeholder.com/200x200/0077b5/white?text="
)

// Profile is the subset of the OpenID Connect userinfo claims that gets
// rendered. Raw keeps the payload exactly as the provider returned it.
type Profile struct {
	Name       string
	GivenName  string
	FamilyName string
	Email      string
	Picture    string
	Raw        []byte
}

// ParseProfile reads the userinfo claims from a raw payload. Unknown or
// mistyped fields are ignored.
func ParseProfile(raw []byte) Profile {
	res := gjson.GetManyBytes(raw, "name", "given_name", "family_name", "email", "picture")
	return Profile{
		Name:       res[0].String(),
		GivenName:  res[1].String(),
		FamilyName: res[2].String(),
		Email:      res[3].String(),
		Picture:    res[4].String(),
		Raw:        raw,
	}
}

// DisplayName returns name, falling back to "given family".
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(p.GivenName + " " + p.FamilyName)
}

// DisplayEmail returns the email or NoEmail.
func (p Profile) DisplayEmail() string {
	if p.Email == "" {
		return NoEmail
	}
	return p.Email
}

// Initials of the given and family names.
func (p Profile) Initials() string {
	var b strings.Builder
	for _, part := range []string{p.GivenName, p.FamilyName} {
		if r := []rune(part); len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

// PictureURL returns the picture or a placeholder avatar built from the
// initials.
func (p Profile) PictureURL() string {
	if p.Picture != "" {
		return p.Picture
	}
	return placeholderAvatar + url.QueryEscape(p.Initials())
}
