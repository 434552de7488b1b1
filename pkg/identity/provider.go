package identity

import "context"

// Identity is the provider's view of the signed-in user.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
}

// Snapshot is one auth-state notification. Identity is nil when signed out.
type Snapshot struct {
	Identity *Identity
}

// Provider abstracts the external identity service so the session store
// depends on a capability, not a vendor SDK. Implementations own the
// process-wide auth state and deliver every change on the Changes stream.
type Provider interface {
	// Changes delivers auth-state notifications for the life of the process.
	// The first notification reflects the initial (signed-out or restored)
	// state.
	Changes() <-chan Snapshot

	// Token mints a short-lived bearer token for the current identity.
	Token(ctx context.Context) (string, error)

	SignInWithPassword(ctx context.Context, email, password string) error
	// SignInWithGoogle exchanges an OAuth ID token obtained from Google for a
	// provider session.
	SignInWithGoogle(ctx context.Context, googleIDToken string) error

	// SendMagicLink requests a passwordless sign-in email whose link returns
	// the user to continueURL.
	SendMagicLink(ctx context.Context, email, continueURL string) error
	// IsMagicLink reports whether link encodes a completed passwordless
	// handshake.
	IsMagicLink(link string) bool
	SignInWithMagicLink(ctx context.Context, email, link string) error

	SendVerificationEmail(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	LinkPasswordCredential(ctx context.Context, email, password string) error
	SetPassword(ctx context.Context, newPassword string) error
	SignOut(ctx context.Context) error
}
