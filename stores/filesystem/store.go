package filesystem

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	path string
}

// NewStore creates a store backed by a one-line text file.
func NewStore(path string) *fsStore {
	return &fsStore{path: path}
}

// Load returns the cached folder id, or "" when the file does not exist yet.
func (s *fsStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		logrus.WithError(err).WithField("path", s.path).Error("Failed to read folder id file")
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fsStore) Save(ctx context.Context, id string) error {
	if err := os.WriteFile(s.path, []byte(id), 0644); err != nil {
		logrus.WithError(err).WithField("path", s.path).Error("Failed to write folder id file")
		return err
	}
	logrus.WithFields(logrus.Fields{
		"path":      s.path,
		"folder_id": id,
	}).Info("Folder id persisted")
	return nil
}
