package controllers

import (
	"errors"
	"net/http"

	"github.com/poofware/buyer-leads-service/internal/services"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

const (
	maxUploadMemory = 10 << 20
	// maxUploadBytes caps the whole multipart request body on import.
	maxUploadBytes  = 5 << 20
	exportFilename  = "buyers.csv"
)

type BuyerCSVController struct {
	importService *services.ImportService
	exportService *services.ExportService
}

func NewBuyerCSVController(importService *services.ImportService, exportService *services.ExportService) *BuyerCSVController {
	return &BuyerCSVController{
		importService: importService,
		exportService: exportService,
	}
}

// GET /api/v1/buyers/export
func (c *BuyerCSVController) ExportHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.exportService.ExportCSV(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithAttachment(w, "text/csv; charset=utf-8", exportFilename, out)
}

// POST /api/v1/buyers/import (multipart: file, ownerId)
func (c *BuyerCSVController) ImportHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "ImportHandler")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondErrorWithCode(w, http.StatusRequestEntityTooLarge, utils.ErrCodePayloadTooLarge, "Upload exceeds size limit", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "No file uploaded", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not read uploaded file", nil, err)
		return
	}
	defer file.Close()

	logger.Debugf("Importing %s (%d bytes)", header.Filename, header.Size)

	resp, err := c.importService.ImportCSV(r.Context(), file, r.FormValue("ownerId"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
