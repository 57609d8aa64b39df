package met

import (
	"artdrive/core"
	"artdrive/httpjson"
	"context"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://collectionapi.metmuseum.org"

// Finder searches the Met collection API and picks one matching artwork at
// random. Nothing is cached; the same keyword may yield a different artwork
// on every call.
type Finder struct {
	client  *httpjson.Client
	baseURL string

	// randIndex picks a uniform index in [0, n); swapped out in tests.
	randIndex func(n int) int
}

// NewFinder creates a finder. baseURL overrides the Met API host for tests;
// pass "" for the real endpoint.
func NewFinder(client *httpjson.Client, baseURL string) *Finder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Finder{client: client, baseURL: baseURL, randIndex: rand.Intn}
}

type searchResult struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// Find searches for keyword and fetches the full record of one random match.
// An empty result set, a failed search, or a failed detail fetch all collapse
// to not-found; a detail failure is never retried with another candidate id.
func (f *Finder) Find(ctx context.Context, keyword string) (*core.Artwork, bool) {
	log := logrus.WithField("keyword", keyword)

	var result searchResult
	searchEp := httpjson.Endpoint{
		Method: http.MethodGet,
		URL:    f.baseURL + "/public/collection/v1/search?hasImages=true&q=" + url.QueryEscape(keyword),
	}
	if err := f.client.Do(ctx, searchEp, nil, &result); err != nil {
		log.WithError(err).Warn("Met search failed")
		return nil, false
	}
	if result.Total == 0 || len(result.ObjectIDs) == 0 {
		log.Info("No artworks found")
		return nil, false
	}

	objectID := result.ObjectIDs[f.randIndex(len(result.ObjectIDs))]
	log = log.WithField("object_id", objectID)

	var artwork core.Artwork
	objectEp := httpjson.Endpoint{
		Method: http.MethodGet,
		URL:    f.baseURL + "/public/collection/v1/objects/" + strconv.Itoa(objectID),
	}
	if err := f.client.Do(ctx, objectEp, nil, &artwork); err != nil {
		log.WithError(err).Warn("Met object fetch failed")
		return nil, false
	}

	log.WithField("title", artwork.DisplayTitle()).Info("Artwork selected")
	return &artwork, true
}
