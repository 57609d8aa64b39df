package stores

import (
	"artdrive/core"
	"artdrive/stores/aws"
	"artdrive/stores/filesystem"
	"artdrive/stores/memory"
	"artdrive/stores/sqlite"
	"os"

	"github.com/sirupsen/logrus"
)

// GetFolderStore selects the durable folder-id backend from STORAGE_TYPE.
// The default is the one-line text file next to the binary.
func GetFolderStore() core.FolderIDStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.FolderIDStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "artdrive.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		store = aws.NewStore(bucketName)
	case "memory":
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	default:
		path := os.Getenv("FOLDER_STORE_PATH")
		if path == "" {
			path = "folder_id.txt" // Default path
		}
		storageField["storageType"] = "filesystem"
		storageField["path"] = path
		store = filesystem.NewStore(path)
	}
	logrus.WithFields(storageField).Info("Use folder id storage")
	return store
}
