package controllers

import (
	"context"
	"net/http"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/api/validators"
	"github.com/examsaathi/examsaathi-web/internal/session"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

type sessionOps interface {
	Snapshot() session.Snapshot
	SendMagicLink(ctx context.Context, email string) error
	CompletePendingSignIn(ctx context.Context, rawURL string) (bool, error)
	SignInWithPassword(ctx context.Context, email, password string) error
	SignInWithGoogle(ctx context.Context, googleIDToken string) error
	SendVerificationEmail(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	LinkPasswordCredential(ctx context.Context, email, password string) error
	SetPassword(ctx context.Context, newPassword string) error
	SignOut(ctx context.Context) error
}

type sessionStateResponse struct {
	SignedIn      bool   `json:"signedIn"`
	Loading       bool   `json:"loading"`
	EmailVerified bool   `json:"emailVerified"`
	UID           string `json:"uid,omitempty"`
	Email         string `json:"email,omitempty"`
}

// SessionState reports the current auth snapshot.
func SessionState(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		snap := store.Snapshot()
		resp := sessionStateResponse{
			SignedIn:      snap.Identity != nil,
			Loading:       snap.Loading,
			EmailVerified: snap.EmailVerified,
		}
		if snap.Identity != nil {
			resp.UID = snap.Identity.UID
			resp.Email = snap.Identity.Email
		}
		responses.WriteSuccess(w, resp)
	}
}

type passwordSignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInPassword signs in with email and password.
func SignInPassword(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req passwordSignInRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SignInWithPassword(r.Context(), req.Email, req.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"redirectTo": "/profile"})
	}
}

type googleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SignInGoogle exchanges a Google OAuth ID token for a session.
func SignInGoogle(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req googleSignInRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SignInWithGoogle(r.Context(), req.IDToken); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"redirectTo": "/profile"})
	}
}

type magicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MagicLinkSend requests a passwordless sign-in email.
func MagicLinkSend(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req magicLinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SendMagicLink(r.Context(), req.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type completeSignInRequest struct {
	URL string `json:"url" validate:"required"`
}

// MagicLinkComplete resolves a landing URL against the pending handshake. A
// URL without one is a successful no-op.
func MagicLinkComplete(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req completeSignInRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		completed, err := store.CompletePendingSignIn(r.Context(), req.URL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"completed": completed})
	}
}

// VerificationSend emails a verification link to the signed-in user.
func VerificationSend(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		if err := store.SendVerificationEmail(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// PasswordReset emails a password reset link.
func PasswordReset(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req magicLinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SendPasswordReset(r.Context(), req.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type passwordLinkRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// PasswordLink attaches a password credential to a passwordless account.
func PasswordLink(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req passwordLinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.LinkPasswordCredential(r.Context(), req.Email, req.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "linked"})
	}
}

type passwordSetRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// PasswordSet changes the signed-in user's password.
func PasswordSet(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var req passwordSetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SetPassword(r.Context(), req.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// SignOut clears the session.
func SignOut(store sessionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		if err := store.SignOut(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"redirectTo": "/"})
	}
}
