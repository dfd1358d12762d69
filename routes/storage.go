package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/storage"
)

const maxUploadBytes = 10 << 20

// StorageRoutes serves avatar and room image uploads. Reads are public so the
// returned URL can be used directly as avatar_url or image_url.
func StorageRoutes(api *gin.RouterGroup, objects storage.ObjectStore, auth gin.HandlerFunc) {
	files := api.Group("/storage")
	{
		files.POST("/:bucket", auth, UploadObject(objects))
		files.GET("/:bucket/:id", DownloadObject(objects))
	}
}

// UploadObject stores the multipart "file" field and returns {id, url}.
func UploadObject(objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		bucket := c.Param("bucket")
		if !storage.ValidBucket(bucket) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown bucket"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open file"})
			return
		}
		defer f.Close()

		// The declared part type is ignored; both buckets hold images only.
		contentType, body, err := storage.SniffImage(f)
		if err != nil {
			if errors.Is(err, storage.ErrNotImage) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read file"})
			return
		}
		id, err := objects.Put(c.Request.Context(), bucket, storage.ObjectName(userID, fh.Filename), contentType, body)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file: " + err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id, "url": "/api/storage/" + bucket + "/" + id})
	}
}

func DownloadObject(objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := c.Param("bucket")
		if !storage.ValidBucket(bucket) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown bucket"})
			return
		}
		obj, err := objects.Get(c.Request.Context(), bucket, c.Param("id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		contentType := obj.ContentType
		if !storage.IsImage(contentType) {
			contentType = "application/octet-stream"
			c.Header("Content-Disposition", "attachment")
		}
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, contentType, obj.Data)
	}
}
