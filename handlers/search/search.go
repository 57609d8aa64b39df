package search

import (
	"artdrive/drive"
	"artdrive/handlers/auth"
	"artdrive/met"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// Handle runs the full workflow for one keyword: credential check, artwork
// search, folder resolution, then the two-step Drive upload. Each stage
// failure maps to its own status; a later stage never starts after an
// earlier one failed.
func Handle(creds *auth.Manager, finder *met.Finder, uploads *drive.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := creds.Token()
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.HTML(w, r, `<h1>Please authenticate first: <a href="/auth">Login</a></h1>`)
			return
		}

		keyword := r.PostFormValue("keyword")
		log := logrus.WithField("keyword", keyword)

		artwork, found := finder.Find(r.Context(), keyword)
		if !found {
			render.Status(r, http.StatusNotFound)
			render.HTML(w, r, "<h1>No results found.</h1>")
			return
		}

		folderID, err := uploads.EnsureFolder(r.Context(), token)
		if err != nil {
			log.WithError(err).Error("Failed to resolve Drive folder")
			render.Status(r, http.StatusInternalServerError)
			render.HTML(w, r, "<h1>Failed to ensure folder creation.</h1>")
			return
		}

		if err := uploads.Upload(r.Context(), token, artwork, folderID); err != nil {
			log.WithError(err).Error("Failed to upload artwork to Drive")
			render.Status(r, http.StatusInternalServerError)
			render.HTML(w, r, "<h1>Failed to upload to Google Drive.</h1>")
			return
		}

		render.HTML(w, r, fmt.Sprintf(`<h1>%s</h1>
<p>Artist: %s</p>
<img src="%s" />
<p><strong>Metadata and image uploaded to your Google Drive folder!</strong></p>`,
			artwork.DisplayTitle(), artwork.DisplayArtist(), artwork.PrimaryImageSmall))
	}
}
