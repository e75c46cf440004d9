// utils/files.go - Upload storage helpers
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the upload cap for portfolio documents.
const MaxUploadSize = int64(10 * 1024 * 1024) // 10 MiB

// allowedUploadExtensions is the extension allow-list for portfolio documents.
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// extensionMimeTypes maps allowed extensions to the content type recorded
// when the client did not supply one.
var extensionMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// IsAllowedUploadExtension reports whether the filename's extension is on the
// allow-list.
func IsAllowedUploadExtension(filename string) bool {
	return allowedUploadExtensions[strings.ToLower(filepath.Ext(filename))]
}

// MimeTypeForUpload picks the content type to record: the client-provided one
// when present, otherwise inferred from the extension.
func MimeTypeForUpload(filename, headerContentType string) string {
	if headerContentType != "" {
		return headerContentType
	}
	if mt, ok := extensionMimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// UploadRoot returns the configured upload base directory.
func UploadRoot() string {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	return root
}

// EnsurePortfolioFolder creates (if needed) and returns the storage folder
// for one portfolio, grouped by owner.
func EnsurePortfolioFolder(root string, userID, portfolioID int) (string, error) {
	dir := filepath.Join(root, fmt.Sprintf("user_%d", userID), fmt.Sprintf("portfolio_%d", portfolioID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// GenerateStoredFilename returns a collision-free name that keeps the
// original extension. The display name stays in the database.
func GenerateStoredFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return uuid.NewString() + ext
}
