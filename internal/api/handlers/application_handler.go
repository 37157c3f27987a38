package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/services"
	"github.com/yoockh/internhub/internal/utils"
)

const maxUploadBytes = 10 << 20

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	// resume is optional at apply time
	var resume *services.FileInput
	if fh, err := c.FormFile("resume"); err == nil {
		in, closeFn, err := openPDFUpload("ApplicationHandler.Apply", fh)
		if err != nil {
			writeError(c, err)
			return
		}
		defer closeFn()
		resume = in
	}

	app, err := h.svc.Apply(c.Request.Context(), caller, c.Param("id"), resume)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	views, err := h.svc.ListMine(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *ApplicationHandler) ListForInternship(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	views, err := h.svc.ListForInternship(c.Request.Context(), caller, c.Param("internshipId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), caller, c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UploadCertificate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("certificate")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UploadCertificate", "missing multipart field 'certificate'", err))
		return
	}

	in, closeFn, err := openPDFUpload("ApplicationHandler.UploadCertificate", fh)
	if err != nil {
		writeError(c, err)
		return
	}
	defer closeFn()

	app, err := h.svc.UploadCertificate(c.Request.Context(), caller, c.Param("id"), *in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

type VerifyCertificateRequest struct {
	Status string `json:"status" binding:"required"` // verified|rejected
}

func (h *ApplicationHandler) VerifyCertificate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req VerifyCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.VerifyCertificate", "invalid request body", err))
		return
	}

	app, err := h.svc.VerifyCertificate(c.Request.Context(), caller, c.Param("id"), models.CertificateStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// openPDFUpload validates a multipart upload (pdf only, size capped, content
// sniffed) and returns a FileInput whose reader replays the sniffed head.
func openPDFUpload(op string, fh *multipart.FileHeader) (*services.FileInput, func(), error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "only .pdf is allowed", nil)
	}
	if fh.Size <= 0 || fh.Size > maxUploadBytes {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}

	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	if http.DetectContentType(head) != "application/pdf" {
		_ = file.Close()
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil)
	}

	in := &services.FileInput{
		FileName:    fh.Filename,
		ContentType: "application/pdf",
		Reader:      io.MultiReader(bytes.NewReader(head), file),
	}
	return in, func() { _ = file.Close() }, nil
}
