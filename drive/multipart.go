package drive

import (
	"bytes"
	"encoding/json"
)

// Boundary is the fixed multipart boundary shared by EncodeMultipart and the
// Content-Type header of every upload request. Keeping both derived from the
// same constant is what prevents an encoder/header mismatch.
const Boundary = "-------314159265358979323846"

// RelatedContentType is the Content-Type header value matching bodies
// produced by EncodeMultipart.
const RelatedContentType = "multipart/related; boundary=" + Boundary

// FileMetadata is the JSON metadata part of a Drive multipart upload.
type FileMetadata struct {
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType"`
	Parents  []string `json:"parents,omitempty"`
}

// EncodeMultipart serializes metadata plus raw content into one
// multipart/related body: opening delimiter, JSON metadata part, delimiter,
// content part with the given content type, closing delimiter. The Drive API
// requires this exact part order and byte layout.
func EncodeMultipart(metadata FileMetadata, content []byte, contentType string) ([]byte, error) {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	delimiter := "\r\n--" + Boundary + "\r\n"
	closeDelimiter := "\r\n--" + Boundary + "--"

	var body bytes.Buffer
	body.WriteString(delimiter)
	body.WriteString("Content-Type: application/json\r\n\r\n")
	body.Write(metaJSON)
	body.WriteString(delimiter)
	body.WriteString("Content-Type: " + contentType + "\r\n\r\n")
	body.Write(content)
	body.WriteString(closeDelimiter)

	return body.Bytes(), nil
}
