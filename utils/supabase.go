package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"
)

const uploadBucket = "form-assets"

// UploadImage stores a question image in the Supabase bucket and returns a
// stable public URL; the caller keeps only the URL string.
func UploadImage(fh *multipart.FileHeader, fileID string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	client := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	objectPath := fmt.Sprintf("questions/%s%s", fileID, filepath.Ext(fh.Filename))

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := client.UploadFile(uploadBucket, objectPath, f, options); err != nil {
		return "", err
	}

	publicURL := client.GetPublicUrl(uploadBucket, objectPath)
	return publicURL.SignedURL, nil
}
