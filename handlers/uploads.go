package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"blog-api/initializers"
	"blog-api/repository"
	"blog-api/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type UploadsHandler struct {
	uploads *repository.UploadsRepository
	auth    *AuthHandler
}

func NewUploadsHandler(uploads *repository.UploadsRepository, auth *AuthHandler) *UploadsHandler {
	return &UploadsHandler{uploads: uploads, auth: auth}
}

// UploadFile accepts a multipart image, sniffs its real MIME type,
// validates it against the upload policy, stores the object and records
// it. The returned id can be fetched through GetFile, which is what post
// authors reference in <img> tags.
func (h *UploadsHandler) UploadFile(c *gin.Context) {
	user, err := h.auth.CurrentUser(c)
	if err != nil {
		log.Printf("upload: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, types.ErrorBody("Authentication required"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, initializers.UploadsConf.MaxSize)

	file, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, types.ErrorBody("File size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.ErrorBody("File is required"))
		return
	}

	// Detect the MIME type from content, not from the client header.
	sniff, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Cannot open uploaded file"))
		return
	}
	mt, err := mimetype.DetectReader(sniff)
	sniff.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Failed to detect file type"))
		return
	}
	contentType := strings.Split(mt.String(), ";")[0]

	if err := initializers.CheckFileAllowed(file.Size, contentType); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody(err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Cannot open uploaded file"))
		return
	}
	defer src.Close()

	id := uuid.NewString()
	_, err = initializers.MinioClient.PutObject(
		c.Request.Context(),
		initializers.UploadsConf.Bucket,
		id,
		src,
		file.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		log.Printf("upload: storing object: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	upload, err := h.uploads.CreateUpload(id, user.ID, file.Filename, contentType, file.Size)
	if err != nil {
		log.Printf("upload: recording upload: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.JSON(http.StatusCreated, upload)
}

// GetFile redirects to a presigned URL for the stored object.
func (h *UploadsHandler) GetFile(c *gin.Context) {
	id := c.Param("id")
	upload, err := h.uploads.GetUploadByID(id)
	if err != nil {
		log.Printf("get upload: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	if upload == nil {
		c.JSON(http.StatusNotFound, types.ErrorBody("Upload not found"))
		return
	}

	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", `inline; filename="`+sanitizeFilename(upload.Filename)+`"`)
	presigned, err := initializers.MinioClient.PresignedGetObject(
		context.Background(),
		initializers.UploadsConf.Bucket,
		upload.ID,
		initializers.UploadsConf.Expiry,
		reqParams,
	)
	if err != nil {
		log.Printf("get upload: presigning: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, presigned.String())
}

func sanitizeFilename(name string) string {
	cleaned := strings.NewReplacer(`"`, "", `\`, "", "/", "", "..", "").Replace(name)
	b := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if r < 32 || r == 127 {
			continue
		}
		b = append(b, r)
	}
	s := strings.Join(strings.Fields(string(b)), " ")
	if s == "" {
		s = "file"
	}
	return s
}
