package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListingForm carries the parsed fields of a create/edit listing
// submission. ImageFilename is set only when a new file was uploaded.
type ListingForm struct {
	Title         string
	Description   string
	Price         int64
	Location      string
	Country       string
	ImageFilename string
	ImageSet      bool
}

// parseListingForm reads the multipart listing form and, when a file is
// present under "image", stores it in uploadDir. A missing file is not
// an error; the caller falls back to the placeholder image.
func parseListingForm(c *gin.Context, uploadDir string) (ListingForm, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return ListingForm{}, err
	}

	form := ListingForm{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Location:    strings.TrimSpace(c.PostForm("location")),
		Country:     strings.TrimSpace(c.PostForm("country")),
	}

	if value := strings.TrimSpace(c.PostForm("price")); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return ListingForm{}, err
		}
		form.Price = parsed
	}

	file, err := c.FormFile("image")
	if err == nil {
		filename, err := saveListingImage(uploadDir, file)
		if err != nil {
			return ListingForm{}, err
		}
		form.ImageFilename = filename
		form.ImageSet = true
	} else {
		// tolerate the different "no file" errors across gin versions
		if !errors.Is(err, http.ErrMissingFile) &&
			!errors.Is(err, http.ErrNotMultipart) &&
			!strings.Contains(err.Error(), "no such file") {
			return ListingForm{}, err
		}
	}

	return form, nil
}
