package client

import (
	"github.com/brizzai/profile-viewer/internal/auth/models"
)

// Kind enumerates the screens the client can show.
type Kind int

const (
	KindLoggedOut Kind = iota
	KindLoading
	KindProfile
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoggedOut:
		return "logged_out"
	case KindLoading:
		return "loading"
	case KindProfile:
		return "profile"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// State is what the UI renders. Profile is set only for KindProfile and
// Message only for KindError.
type State struct {
	Kind    Kind
	Profile models.Profile
	Message string
}

func LoggedOut() State { return State{Kind: KindLoggedOut} }

func Loading() State { return State{Kind: KindLoading} }

func ProfileLoaded(p models.Profile) State { return State{Kind: KindProfile, Profile: p} }

func Failed(message string) State { return State{Kind: KindError, Message: message} }
