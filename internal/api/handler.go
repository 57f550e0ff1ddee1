// Package api exposes the extraction engine over HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scraper/internal/engine"
	"github.com/insightdelivered/statement-scraper/internal/extractor"
	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
	"github.com/insightdelivered/statement-scraper/internal/writer"
)

const version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success       bool             `json:"success"`
	Error         string           `json:"error,omitempty"`
	Bank          string           `json:"bank,omitempty"`
	Profile       string           `json:"profile,omitempty"`
	JobID         string           `json:"jobId,omitempty"`
	Filename      string           `json:"filename,omitempty"`
	Records       []models.Record  `json:"records"`
	Count         int              `json:"count"`
	CSV           string           `json:"csv,omitempty"`
	TotalWithdraw string           `json:"totalWithdraw,omitempty"`
	TotalDeposit  string           `json:"totalDeposit,omitempty"`
	Version       string           `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Log       *zap.Logger
	UploadDir string
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Get("/api/banks", h.HandleBanks)
	app.Post("/api/convert", h.HandleConvert)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleBanks lists the supported bank profiles.
func (h *Handler) HandleBanks(c *fiber.Ctx) error {
	type bank struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	banks := make([]bank, 0, len(layout.IDs()))
	for _, id := range layout.IDs() {
		p, err := layout.New(id)
		if err != nil {
			continue
		}
		banks = append(banks, bank{Key: string(id), Name: p.FriendlyName})
	}
	return c.JSON(fiber.Map{"banks": banks})
}

// HandleConvert is the unified upload + extract + result endpoint.
// Multipart fields: file (required PDF), bank (required profile key),
// password (optional).
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	bankKey := c.FormValue("bank")
	if bankKey == "" {
		return writeError(c, fiber.StatusBadRequest, "Missing 'bank' form field. See /api/banks for supported keys.")
	}
	password := c.FormValue("password")

	eng, err := engine.New(models.ProfileID(bankKey), engine.WithLogger(h.Log))
	if err != nil {
		if errors.Is(err, layout.ErrUnknownProfile) {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown bank %q. See /api/banks for supported keys.", bankKey))
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Stage the upload under a job id; remove it on every exit path.
	jobID := uuid.NewString()
	uploadDir := h.UploadDir
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	stagedPath := filepath.Join(uploadDir, jobID+".pdf")
	if err := c.SaveFile(fileHeader, stagedPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}
	defer os.Remove(stagedPath)

	h.Log.Info("extraction started",
		zap.String("jobId", jobID),
		zap.String("bank", bankKey),
		zap.String("filename", fileHeader.Filename),
	)

	records, err := eng.Extract(stagedPath, password)
	if err != nil {
		var openErr *extractor.OpenError
		if errors.As(err, &openErr) {
			return writeError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Could not open document: %v. Wrong password or corrupt file.", openErr.Err))
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := eng.Profile()
	st := &models.Statement{
		Bank:    p.FriendlyName,
		Profile: p.ID,
		Columns: p.OutputColumns(),
		Records: records,
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := csvWriter.Write(&csvBuf, st); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	withdraw, deposit := writer.Totals(st)

	h.Log.Info("extraction complete",
		zap.String("jobId", jobID),
		zap.Int("records", len(records)),
	)

	// nil marshals to JSON null, not []
	if records == nil {
		records = []models.Record{}
	}

	return c.JSON(ConvertResponse{
		Success:       true,
		Bank:          p.FriendlyName,
		Profile:       string(p.ID),
		JobID:         jobID,
		Filename:      fileHeader.Filename,
		Records:       records,
		Count:         len(records),
		CSV:           csvBuf.String(),
		TotalWithdraw: withdraw.StringFixed(2),
		TotalDeposit:  deposit.StringFixed(2),
		Version:       version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
		Records: []models.Record{},
	})
}
