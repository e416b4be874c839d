package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/nemosite/internal/upload"
)

// UploadImage stores an editor upload and answers with the URL the editor
// should embed. Requests without a file get a 400 with a JSON error.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}

	saved, err := a.uploads.Save(file)
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
			return
		}
		log.Error("image upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store the file."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": saved.URL})
}
