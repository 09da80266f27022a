package http

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

// maxImageWidth is the widest stored catalog image; anything larger is
// downscaled to keep the storefront payloads reasonable.
const maxImageWidth = 1600

var allowedImageExts = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// storeUploadedImage saves an optional "image" form file under a uuid name
// and returns its public path. Missing file is fine (empty path, ok=true);
// oversized or disallowed files respond 400 and return ok=false.
func (h *Handler) storeUploadedImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		if strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
			return "", false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload"})
		return "", false
	}

	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	wantMIME, ok := allowedImageExts[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image type must be jpeg, jpg, png, gif or webp"})
		return "", false
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != wantMIME && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload is not an image"})
		return "", false
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.serverError(c, err)
		return "", false
	}

	name := uuid.New().String() + ext
	dest := filepath.Join(h.uploadDir, name)

	if err := h.saveImage(file, dest, ext); err != nil {
		h.serverError(c, err)
		return "", false
	}
	return "/uploads/" + name, true
}

// saveImage writes the upload to dest, downscaling jpeg/png wider than
// maxImageWidth. gif and webp are stored as received; Go has no stdlib
// encoder for them.
func (h *Handler) saveImage(file *multipart.FileHeader, dest, ext string) error {
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return saveRaw(file, dest)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		// Not decodable despite the extension; keep the bytes as-is.
		return saveRaw(file, dest)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if ext == ".png" {
		return png.Encode(out, img)
	}
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 85})
}

func saveRaw(file *multipart.FileHeader, dest string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error("upload failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
