package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// saveListingImage stores one uploaded image under dir with a generated
// filename and returns that filename. Only whitelisted extensions up to
// 5MB are accepted.
func saveListingImage(dir string, file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := primitive.NewObjectID().Hex() + extension

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveListingImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveListingImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveListingImage: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveListingImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filename, nil
}

// safeDeleteUpload removes a stored upload when its listing no longer
// references it. The placeholder reference names no file on disk, and
// anything resolving outside the uploads directory is refused.
func safeDeleteUpload(dir, filename string) error {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" || trimmed == placeholderImageName {
		return nil
	}

	cleanBase := filepath.Clean(dir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(trimmed))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget == cleanBase || !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside uploads dir: %s", filename)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
