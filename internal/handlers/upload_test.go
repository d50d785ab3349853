package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func uploadFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/listings", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	file, err := c.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file
}

func TestSaveListingImage_StoresWhitelistedFile(t *testing.T) {
	dir := t.TempDir()
	file := uploadFileHeader(t, "cabin.png", "not-really-a-png")

	filename, err := saveListingImage(dir, file)
	if err != nil {
		t.Fatalf("saveListingImage returned error: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Fatalf("expected generated .png filename, got %s", filename)
	}

	stored, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(stored) != "not-really-a-png" {
		t.Fatalf("stored content mismatch: %q", stored)
	}
}

func TestSaveListingImage_RejectsUnsupportedExtension(t *testing.T) {
	file := uploadFileHeader(t, "script.exe", "nope")

	if _, err := saveListingImage(t.TempDir(), file); err == nil {
		t.Fatal("expected error for .exe upload")
	}
}

func TestSaveListingImage_RejectsMissingExtension(t *testing.T) {
	file := uploadFileHeader(t, "noext", "nope")

	if _, err := saveListingImage(t.TempDir(), file); err == nil {
		t.Fatal("expected error for extensionless upload")
	}
}

func TestSaveListingImage_RejectsOversizedFile(t *testing.T) {
	file := &multipart.FileHeader{Filename: "big.jpg", Size: maxImageSize + 1}

	if _, err := saveListingImage(t.TempDir(), file); err == nil {
		t.Fatal("expected error for oversized upload")
	}
}

func TestSafeDeleteUpload_RemovesStoredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.jpg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(dir, "old.jpg"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUpload_SkipsPlaceholder(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), placeholderImageName); err != nil {
		t.Fatalf("placeholder delete should be a no-op, got %v", err)
	}
}

func TestSafeDeleteUpload_RefusesTraversal(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "../secrets.txt"); err == nil {
		t.Fatal("expected traversal to be refused")
	}
}

func TestSafeDeleteUpload_MissingFileIsNotAnError(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "gone.jpg"); err != nil {
		t.Fatalf("missing file should be tolerated, got %v", err)
	}
}
