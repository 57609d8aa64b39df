package auth

import (
	"artdrive/core"
	"artdrive/httpjson"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Manager holds the OAuth configuration and the process credential: the
// Drive-scoped bearer token obtained from the authorization-code exchange.
// At most one credential exists; each successful exchange overwrites it.
type Manager struct {
	config *oauth2.Config
	client *httpjson.Client

	mu    sync.RWMutex
	token string
}

// NewManager builds a Manager from GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
// GOOGLE_REDIRECT_URL against the Google endpoints.
func NewManager(client *httpjson.Client) *Manager {
	config := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"https://www.googleapis.com/auth/drive"},
		Endpoint:     google.Endpoint,
	}
	if config.RedirectURL == "" {
		config.RedirectURL = "http://localhost:3000/oauth2callback"
	}
	if config.ClientID == "" || config.ClientSecret == "" {
		logrus.Warn("Google OAuth credentials are not set. Authentication routes will not work.")
	}
	return NewManagerWithConfig(config, client)
}

// NewManagerWithConfig creates a Manager with an explicit OAuth configuration.
func NewManagerWithConfig(config *oauth2.Config, client *httpjson.Client) *Manager {
	return &Manager{config: config, client: client}
}

// AuthCodeURL returns the authorization redirect target. It is deterministic:
// fixed client id, redirect target and Drive scope, offline access and a
// forced consent prompt, with no state parameter.
func (m *Manager) AuthCodeURL() string {
	return m.config.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange swaps an authorization code for a bearer token and stores it as
// the process credential, overwriting any prior value. On failure the stored
// credential is left unchanged.
func (m *Manager) Exchange(ctx context.Context, code string) error {
	form := url.Values{
		"code":          {code},
		"client_id":     {m.config.ClientID},
		"client_secret": {m.config.ClientSecret},
		"redirect_uri":  {m.config.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	ep := httpjson.Endpoint{
		Method: http.MethodPost,
		URL:    m.config.Endpoint.TokenURL,
		Header: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
	}
	if err := m.client.Do(ctx, ep, []byte(form.Encode()), &resp); err != nil {
		return &core.AuthExchangeError{Err: err}
	}
	if resp.AccessToken == "" {
		return &core.AuthExchangeError{Err: fmt.Errorf("token response missing access_token")}
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	m.mu.Unlock()

	logrus.Info("Access token received")
	return nil
}

// Token returns the stored credential and whether one has been set.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// HandleLogin redirects the user to the Google consent screen.
func HandleLogin(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, m.AuthCodeURL(), http.StatusFound)
	}
}

// HandleCallback exchanges the code Google sent back for the credential.
func HandleCallback(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Exchange(r.Context(), r.FormValue("code")); err != nil {
			logrus.WithError(err).Error("Failed to exchange authorization code")
			render.Status(r, http.StatusInternalServerError)
			render.HTML(w, r, "<h1>Authentication failed. Please try again.</h1>")
			return
		}
		render.HTML(w, r, "<h1>Authenticated! Go back to the original homepage.</h1>")
	}
}
