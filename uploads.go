package hobbies

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// maxPhotoSize is the upload cap for profile photos
const maxPhotoSize = 2048 << 10

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// UploadName builds the stored filename from the original upload name and the
// given time, keeping the extension and suffixing the stem with a unix
// timestamp.
func UploadName(original string, at time.Time) string {
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s_%d%s", stem, at.Unix(), ext)
}

// ValidatePhoto checks the upload against the allowed extensions and size cap
func ValidatePhoto(file *multipart.FileHeader) error {
	if file == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		return errors.New("user_photo: must be a file of type jpg, png, jpeg, gif, svg", errors.CategoryValidation).
			WithTextCode("INVALID_PHOTO_TYPE").
			WithCode(fiber.StatusUnprocessableEntity)
	}

	if file.Size > maxPhotoSize {
		return errors.New("user_photo: may not be greater than 2048 kilobytes", errors.CategoryValidation).
			WithTextCode("PHOTO_TOO_LARGE").
			WithCode(fiber.StatusUnprocessableEntity)
	}

	return nil
}

// PhotoStore saves validated photo uploads under a base directory
type PhotoStore struct {
	Dir string
}

// Save validates the upload and writes it under the store directory, returning
// the stored filename.
func (s PhotoStore) Save(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if err := ValidatePhoto(file); err != nil {
		return "", err
	}

	name := UploadName(file.Filename, time.Now())
	if err := c.SaveFile(file, filepath.Join(s.Dir, name)); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to store photo upload")
	}

	return name, nil
}
