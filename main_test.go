package main

import (
	"artdrive/drive"
	"artdrive/handlers/auth"
	"artdrive/httpjson"
	"artdrive/met"
	"artdrive/stores/memory"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type gatewayFixture struct {
	server     *httptest.Server
	gatewayURL string
	creds      *auth.Manager

	searchCalls int32
	mu          sync.Mutex
	uploads     []string
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()
	f := &gatewayFixture{}

	imageBytes := []byte{0xff, 0xd8, 0xff, 0xe0}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tok-e2e"}`)
	})
	mux.HandleFunc("/public/collection/v1/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.searchCalls, 1)
		assert.Equal(t, "sunflowers", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"total":1,"objectIDs":[436535]}`)
	})
	mux.HandleFunc("/public/collection/v1/objects/436535", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"objectID":436535,"title":"Wheat Field","artistDisplayName":"Van Gogh","objectDate":"1889","department":"Painting","primaryImageSmall":%q}`, f.server.URL+"/img.jpg")
	})
	mux.HandleFunc("/img.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageBytes)
	})
	mux.HandleFunc("/drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"folder-1"}`)
	})
	mux.HandleFunc("/upload/drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.uploads = append(f.uploads, string(body))
		n := len(f.uploads)
		f.mu.Unlock()
		fmt.Fprintf(w, `{"id":"file-%d"}`, n)
	})

	backends := httptest.NewServer(mux)
	t.Cleanup(backends.Close)
	f.server = backends

	client := httpjson.NewClient(5 * time.Second)
	f.creds = auth.NewManagerWithConfig(&oauth2.Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURL:  "http://localhost:3000/oauth2callback",
		Scopes:       []string{"https://www.googleapis.com/auth/drive"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: backends.URL + "/token",
		},
	}, client)
	finder := met.NewFinder(client, backends.URL)
	uploads := drive.NewService(client, memory.NewStore(), backends.URL)

	gateway := httptest.NewServer(setupRouter(f.creds, finder, uploads))
	t.Cleanup(gateway.Close)
	f.gatewayURL = gateway.URL

	return f
}

func TestSearchRequiresCredential(t *testing.T) {
	f := newGatewayFixture(t)

	resp, err := http.PostForm(f.gatewayURL+"/search", url.Values{"keyword": {"sunflowers"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, atomic.LoadInt32(&f.searchCalls), "no outbound call may happen before authentication")
}

func TestSearchEndToEnd(t *testing.T) {
	f := newGatewayFixture(t)

	resp, err := http.Get(f.gatewayURL + "/oauth2callback?code=abc")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, ok := f.creds.Token()
	require.True(t, ok)
	require.Equal(t, "tok-e2e", token)

	resp, err = http.PostForm(f.gatewayURL+"/search", url.Values{"keyword": {"sunflowers"}})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Wheat Field")
	require.Contains(t, string(body), "Van Gogh")

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.uploads, 2, "image upload then summary upload")
	require.Contains(t, f.uploads[0], `"name":"Wheat Field.jpg"`)
	require.Contains(t, f.uploads[1], `"name":"Wheat Field.txt"`)
	require.Contains(t, f.uploads[1], "Image URL: https://drive.google.com/file/d/file-1/view")
}

func TestHomePageRendersSearchForm(t *testing.T) {
	f := newGatewayFixture(t)

	resp, err := http.Get(f.gatewayURL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `action="/search"`)
	require.Contains(t, string(body), `href="/auth"`)
}

func TestAuthRedirectsToConsentScreen(t *testing.T) {
	f := newGatewayFixture(t)

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(f.gatewayURL + "/auth")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.Contains(t, location, "accounts.google.com")
	require.Contains(t, location, "access_type=offline")
	require.Contains(t, location, "prompt=consent")
}

func TestUnknownRouteReturns404(t *testing.T) {
	f := newGatewayFixture(t)

	resp, err := http.Get(f.gatewayURL + "/definitely/not/here")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
