package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

const MaxImageBytes = 5 << 20

type SalonHandler struct {
	repo        domain.Repository
	createSalon *ucSalon.CreateSalon
	uploadImage *ucSalon.UploadSalonImage
}

func NewSalonHandler(
	repo domain.Repository,
	createSalon *ucSalon.CreateSalon,
	uploadImage *ucSalon.UploadSalonImage,
) *SalonHandler {
	return &SalonHandler{
		repo:        repo,
		createSalon: createSalon,
		uploadImage: uploadImage,
	}
}

func (h *SalonHandler) List(c *gin.Context) {
	salons, err := h.repo.ListSalons(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSalonReadList(salons))
}

func (h *SalonHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "Salon")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	salon, err := h.repo.GetSalonByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSalonRead(salon))
}

func (h *SalonHandler) Create(c *gin.Context) {
	salon, err := h.createSalon.Execute(c.Request.Context(), jsonPayload[dto.SalonWrite](c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSalonRead(salon))
}

// UploadImage handles PUT /api/salons/:id/image with a multipart "image"
// field.
func (h *SalonHandler) UploadImage(c *gin.Context) {
	id, err := pathID(c, "id", "Salon")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var file multipart.File
	defer func() {
		if file != nil {
			_ = file.Close()
		}
	}()

	payload := func() (io.Reader, error) {
		// headroom for multipart framing
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)

		f, header, err := c.Request.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, imageTooLarge()
			}
			return nil, httperr.MissingFieldError{Field: "image"}
		}
		file = f

		if header.Size > MaxImageBytes {
			return nil, imageTooLarge()
		}
		return f, nil
	}

	salon, err := h.uploadImage.Execute(c.Request.Context(), id, payload)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSalonRead(salon))
}

func imageTooLarge() error {
	return httperr.ValidationError{Violations: []httperr.Violation{
		{Field: "image", Message: "The file is too large. Allowed maximum size is 5 MiB."},
	}}
}
