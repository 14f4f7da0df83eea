package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/sangamlabs/sangam/internal/netx"
)

// UploadPhoto requests a presigned URL and pushes the file straight to
// object storage.
func (a *App) UploadPhoto(ctx context.Context, path string) {
	payload, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Could not read %s: %s\n", path, err.Error())
		return
	}

	target, err := a.api.PhotoUploadURL(ctx)
	if err != nil {
		fmt.Printf("Could not get upload URL: %s\n", err.Error())
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if err := netx.UploadToPresignedURL(ctx, target.URL, payload, contentType); err != nil {
		fmt.Printf("Upload failed: %s\n", err.Error())
		return
	}

	fmt.Println("Profile photo uploaded")
}
