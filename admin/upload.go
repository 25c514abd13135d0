package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"factionhub/catalog"
	"factionhub/storage"
)

// apiError is the single error contract for JSON endpoints, regardless of
// which call site failed.
type apiError struct {
	Kind    string `json:"kind"` // unavailable, validation, remote, not_found
	Message string `json:"message"`
}

// uploadGalleryImage stores one image under the faction's gallery path and
// returns the public URL for the gallery form.
func (a *AdminModule) uploadGalleryImage(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	if a.store == nil {
		c.JSON(http.StatusServiceUnavailable, apiError{Kind: "unavailable", Message: "storage not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "no file provided"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "could not read file"})
		return
	}
	defer file.Close()

	key := storage.GalleryKey(faction.ID, header.Filename)
	url, err := a.store.Put(c.Request.Context(), key, file, storage.ContentTypeForKey(key))
	if err != nil {
		log.Printf("Error uploading gallery image for %s: %v", faction.ID, err)
		c.JSON(http.StatusInternalServerError, apiError{Kind: "remote", Message: "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// uploadMarkdownImage stores an image for the inline markdown editor under
// the flat uploads path.
func (a *AdminModule) uploadMarkdownImage(c *gin.Context) {
	if a.store == nil {
		c.JSON(http.StatusServiceUnavailable, apiError{Kind: "unavailable", Message: "storage not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "no file provided"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "could not read file"})
		return
	}
	defer file.Close()

	key := storage.UploadKey(header.Filename)
	url, err := a.store.Put(c.Request.Context(), key, file, storage.ContentTypeForKey(key))
	if err != nil {
		log.Printf("Error uploading markdown image: %v", err)
		c.JSON(http.StatusInternalServerError, apiError{Kind: "remote", Message: "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
