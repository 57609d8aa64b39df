package drive

import (
	"artdrive/core"
	"artdrive/httpjson"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://www.googleapis.com"

	folderName     = "MET Artworks"
	folderMimeType = "application/vnd.google-apps.folder"
)

// Service persists artworks into Google Drive: it resolves the destination
// folder and runs the two-step image-then-summary upload workflow.
type Service struct {
	client  *httpjson.Client
	folders core.FolderIDStore
	baseURL string
}

// NewService creates a Drive service. baseURL overrides the Google API host,
// which is mainly useful in tests; pass "" for the real endpoint.
func NewService(client *httpjson.Client, folders core.FolderIDStore, baseURL string) *Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Service{client: client, folders: folders, baseURL: baseURL}
}

type fileResponse struct {
	ID string `json:"id"`
}

// EnsureFolder returns the destination folder id, creating the folder
// remotely on first use and persisting the id for all later calls. Once an id
// is cached no second folder is ever created, even if the remote folder was
// deleted out-of-band.
func (s *Service) EnsureFolder(ctx context.Context, token string) (string, error) {
	id, err := s.folders.Load(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		logrus.WithField("folder_id", id).Debug("Using cached Drive folder")
		return id, nil
	}

	body, err := json.Marshal(FileMetadata{Name: folderName, MimeType: folderMimeType})
	if err != nil {
		return "", err
	}

	var resp fileResponse
	ep := httpjson.Endpoint{
		Method: http.MethodPost,
		URL:    s.baseURL + "/drive/v3/files",
		Header: http.Header{
			"Authorization": {"Bearer " + token},
			"Content-Type":  {"application/json"},
		},
	}
	if err := s.client.Do(ctx, ep, body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", &core.ResponseFormatError{Err: fmt.Errorf("folder create response missing id")}
	}

	if err := s.folders.Save(ctx, resp.ID); err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"folder_id":   resp.ID,
		"folder_name": folderName,
	}).Info("Created Drive folder")
	return resp.ID, nil
}

// Upload downloads the artwork's small image fully into memory, uploads it as
// "<title>.jpg", then uploads a "<title>.txt" summary that references the
// returned file id. The summary upload never starts before the image upload
// has yielded an id; a failure at either step aborts the workflow with no
// rollback of an already-succeeded image upload.
func (s *Service) Upload(ctx context.Context, token string, artwork *core.Artwork, folderID string) error {
	log := logrus.WithFields(logrus.Fields{
		"title":     artwork.DisplayTitle(),
		"folder_id": folderID,
	})

	image, err := s.client.Fetch(ctx, artwork.PrimaryImageSmall)
	if err != nil {
		return &core.UploadError{Stage: "image download", Err: err}
	}
	log.WithField("image_bytes", len(image)).Debug("Downloaded artwork image")

	imageMeta := FileMetadata{
		Name:     artwork.DisplayTitle() + ".jpg",
		MimeType: "image/jpeg",
		Parents:  []string{folderID},
	}
	fileID, err := s.uploadFile(ctx, token, imageMeta, image, "image/jpeg")
	if err != nil {
		return &core.UploadError{Stage: "image upload", Err: err}
	}

	summary := fmt.Sprintf("Title: %s\nArtist: %s\nDate: %s\nDepartment: %s\nImage URL: https://drive.google.com/file/d/%s/view",
		artwork.DisplayTitle(), artwork.DisplayArtist(), artwork.DisplayDate(), artwork.DisplayDepartment(), fileID)
	textMeta := FileMetadata{
		Name:     artwork.DisplayTitle() + ".txt",
		MimeType: "text/plain",
		Parents:  []string{folderID},
	}
	if _, err := s.uploadFile(ctx, token, textMeta, []byte(summary), "text/plain"); err != nil {
		return &core.UploadError{Stage: "summary upload", Err: err}
	}

	log.Info("Artwork uploaded to Drive")
	return nil
}

func (s *Service) uploadFile(ctx context.Context, token string, metadata FileMetadata, content []byte, contentType string) (string, error) {
	body, err := EncodeMultipart(metadata, content, contentType)
	if err != nil {
		return "", err
	}

	var resp fileResponse
	ep := httpjson.Endpoint{
		Method: http.MethodPost,
		URL:    s.baseURL + "/upload/drive/v3/files?uploadType=multipart",
		Header: http.Header{
			"Authorization": {"Bearer " + token},
			"Content-Type":  {RelatedContentType},
		},
	}
	if err := s.client.Do(ctx, ep, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
