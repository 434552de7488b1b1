package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/examsaathi/examsaathi-web/pkg/config"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/idtoken"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

const changeBuffer = 16

var (
	errAPIKeyRequired = errors.New("identity api key is required")
	errLoggerRequired = errors.New("identity logger is required")
	errNotSignedIn    = pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
)

// Client talks to the identity provider's REST surface and owns the
// process-wide auth state.
type Client struct {
	baseURL    string
	apiKey     string
	authDomain string
	http       *http.Client
	logger     *logger.Logger

	mu           sync.Mutex
	idToken      string
	refreshToken string
	current      *Identity

	emitMu  sync.Mutex
	changes chan Snapshot
}

// NewClient validates the credentials and emits the initial signed-out
// notification so observers can leave their loading state.
func NewClient(ctx context.Context, cfg config.IdentityConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		authDomain: strings.TrimSpace(cfg.AuthDomain),
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     logg,
		changes:    make(chan Snapshot, changeBuffer),
	}
	c.changes <- Snapshot{}

	logg.Info(ctx, "identity client initialized")
	return c, nil
}

func (c *Client) Changes() <-chan Snapshot {
	return c.changes
}

func (c *Client) Token(_ context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idToken == "" {
		return "", errNotSignedIn
	}
	return c.idToken, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	var resp tokenResponse
	err := c.post(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

func (c *Client) SignInWithGoogle(ctx context.Context, googleIDToken string) error {
	var resp tokenResponse
	err := c.post(ctx, "signInWithIdp", map[string]any{
		"postBody":          "id_token=" + googleIDToken + "&providerId=google.com",
		"requestUri":        c.requestURI(),
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

func (c *Client) SendMagicLink(ctx context.Context, email, continueURL string) error {
	return c.post(ctx, "sendOobCode", map[string]any{
		"requestType":        "EMAIL_SIGNIN",
		"email":              email,
		"continueUrl":        continueURL,
		"canHandleCodeInApp": true,
	}, nil)
}

// IsMagicLink checks for the handshake parameters the provider places on the
// emailed link.
func (c *Client) IsMagicLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	query := parsed.Query()
	if query.Get("oobCode") == "" {
		return false
	}
	return query.Get("mode") == "signIn" || query.Get("apiKey") != ""
}

func (c *Client) SignInWithMagicLink(ctx context.Context, email, link string) error {
	parsed, err := url.Parse(link)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sign-in link")
	}
	oobCode := parsed.Query().Get("oobCode")
	if oobCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sign-in link missing code")
	}

	var resp tokenResponse
	err = c.post(ctx, "signInWithEmailLink", map[string]any{
		"email":   email,
		"oobCode": oobCode,
	}, &resp)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

func (c *Client) SendVerificationEmail(ctx context.Context) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}
	return c.post(ctx, "sendOobCode", map[string]any{
		"requestType": "VERIFY_EMAIL",
		"idToken":     token,
	}, nil)
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

func (c *Client) LinkPasswordCredential(ctx context.Context, email, password string) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}
	var resp tokenResponse
	err = c.post(ctx, "update", map[string]any{
		"idToken":           token,
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

func (c *Client) SetPassword(ctx context.Context, newPassword string) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}
	var resp tokenResponse
	err = c.post(ctx, "update", map[string]any{
		"idToken":           token,
		"password":          newPassword,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

func (c *Client) SignOut(_ context.Context) error {
	c.mu.Lock()
	c.idToken = ""
	c.refreshToken = ""
	c.current = nil
	c.mu.Unlock()

	c.emit(Snapshot{})
	return nil
}

type tokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

// adopt decodes the new ID token, replaces the current identity, and notifies
// observers.
func (c *Client) adopt(resp tokenResponse) error {
	claims, err := idtoken.Decode(resp.IDToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provider returned unusable token")
	}

	email := claims.Email
	if email == "" {
		email = resp.Email
	}
	ident := &Identity{
		UID:           claims.UserID,
		Email:         email,
		EmailVerified: claims.EmailVerified,
	}

	c.mu.Lock()
	c.idToken = resp.IDToken
	c.refreshToken = resp.RefreshToken
	c.current = ident
	c.mu.Unlock()

	c.emit(Snapshot{Identity: ident})
	return nil
}

// emit delivers a notification, dropping the oldest buffered one when the
// observer fell behind so the stream converges on the latest state. Emits are
// serialized; an unserialized drain-then-send could interleave with another
// emit and block on a refilled buffer.
func (c *Client) emit(snapshot Snapshot) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	select {
	case c.changes <- snapshot:
	default:
		select {
		case <-c.changes:
		default:
		}
		c.changes <- snapshot
	}
}

func (c *Client) requestURI() string {
	if c.authDomain != "" {
		return "https://" + c.authDomain
	}
	return "http://localhost"
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, action string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode provider request")
	}

	endpoint := fmt.Sprintf("%s/accounts:%s?key=%s", c.baseURL, action, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build provider request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "identity provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var pe providerError
		_ = json.NewDecoder(resp.Body).Decode(&pe)
		message := pe.Error.Message
		if message == "" {
			message = fmt.Sprintf("provider returned status %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
		}
		return pkgerrors.New(pkgerrors.CodeDependency, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode provider response")
	}
	return nil
}
