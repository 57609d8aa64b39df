package core

import "context"

type (
	// Artwork is one record from the Met collection API. Every field is
	// optional on the remote side; absent fields degrade to placeholders
	// via the Display helpers instead of failing the workflow.
	Artwork struct {
		ObjectID          int    `json:"objectID"`
		Title             string `json:"title"`
		ArtistDisplayName string `json:"artistDisplayName"`
		ObjectDate        string `json:"objectDate"`
		Department        string `json:"department"`
		PrimaryImageSmall string `json:"primaryImageSmall"`
	}

	// FolderIDStore persists the identifier of the Drive destination folder
	// across process restarts. Load returns "" when no id has been stored yet.
	FolderIDStore interface {
		Load(ctx context.Context) (string, error)
		Save(ctx context.Context, id string) error
	}
)

// DisplayTitle is also used to derive upload filenames.
func (a *Artwork) DisplayTitle() string {
	if a.Title == "" {
		return "Artwork"
	}
	return a.Title
}

func (a *Artwork) DisplayArtist() string {
	return orUnknown(a.ArtistDisplayName)
}

func (a *Artwork) DisplayDate() string {
	return orUnknown(a.ObjectDate)
}

func (a *Artwork) DisplayDepartment() string {
	return orUnknown(a.Department)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
