package handlers

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"petcare-app-server/internal/config"
	"petcare-app-server/internal/utils"
)

// storeUploadedImage validates the "file" multipart field and writes it to
// local disk under <upload dir>/<subdir>, returning the public path. It
// writes the error response itself when it cannot.
func storeUploadedImage(c *gin.Context, cfg *config.Config, log *zap.Logger, subdir, prefix string) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "No file provided")
		return "", false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.BadRequest(c, "Only image files are allowed")
		return "", false
	}

	if fileHeader.Size > cfg.Upload.MaxSizeBytes {
		utils.BadRequest(c, fmt.Sprintf("Image too large (max %d bytes)", cfg.Upload.MaxSizeBytes))
		return "", false
	}

	uploadDir := filepath.Join(cfg.Upload.Dir, subdir)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.InternalServerError(c, "Failed to prepare upload directory: "+err.Error())
		return "", false
	}

	fileName := fmt.Sprintf("%s-%d-%06d%s", prefix, time.Now().UnixMilli(), rand.Intn(1000000), safeExtension(fileHeader.Filename))
	destination := filepath.Join(uploadDir, fileName)

	if err := c.SaveUploadedFile(fileHeader, destination); err != nil {
		log.Error("image upload failed", zap.String("subdir", subdir), zap.Error(err))
		utils.InternalServerError(c, "Upload failed")
		return "", false
	}

	return "/images/" + subdir + "/" + fileName, true
}

// safeExtension keeps only alphanumeric extension characters, defaulting to
// .jpg, so uploaded names cannot influence the path.
func safeExtension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if cleaned == "" {
		cleaned = "jpg"
	}
	return "." + cleaned
}
