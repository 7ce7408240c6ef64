package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-parser/internal/buildinfo"
	"github.com/insightdelivered/statement-parser/internal/config"
	"github.com/insightdelivered/statement-parser/internal/layout"
	"github.com/insightdelivered/statement-parser/internal/parser"
	"github.com/insightdelivered/statement-parser/internal/writer"
)

// PageBreak separates pages in client-extracted text.
const PageBreak = "\n---PAGE_BREAK---\n"

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*writer.Report
	CSV string `json:"csv,omitempty"`
	// RawText is the text the statement was parsed from, pages joined by
	// PageBreak, to help diagnose statements that yield nothing.
	RawText string `json:"rawText,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Config *config.Config
	Logger *zap.Logger
	// Clock picks the anchor year when neither the request nor the config sets one.
	Clock func() time.Time
}

// NewApp returns a fiber app with every route registered.
func NewApp(h *Handler) *fiber.App {
	if h.Config == nil {
		h.Config = config.Default()
	}
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	if h.Clock == nil {
		h.Clock = time.Now
	}

	app := fiber.New(fiber.Config{
		AppName:               "statement-parser",
		BodyLimit:             h.Config.Server.MaxUploadMiB << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(h.logRequests)
	app.Use(cors.New(cors.Config{
		AllowOrigins: h.Config.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)

	if dir := h.Config.Server.StaticDir; dir != "" {
		app.Static("/", dir)
		// Client-side routes fall back to the SPA entry point.
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(filepath.Join(dir, "index.html"))
		})
	}
	return app
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.Logger.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return err
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
		"engine":  "fiber",
	})
}

// HandleParse extracts debits and credits from an uploaded statement. The
// form carries either a PDF in "file" or pre-extracted page text in
// "extractedText", plus optional "bank", "year" and "header" fields.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	var opts []parser.Option
	opts = append(opts, parser.WithLogger(h.Logger), parser.WithClock(h.Clock))

	bank := c.FormValue("bank", h.Config.Bank)
	if bank != "" {
		bankType, err := parser.ParseBankType(bank)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown bank: %q. Supported: %v", bank, parser.SupportedBanks()))
		}
		variant, err := parser.New(bankType)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		opts = append(opts, parser.WithVariant(variant))
	}

	year := h.Config.Year
	if y := c.FormValue("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1 {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid year %q", y))
		}
		year = parsed
	}
	if year != 0 {
		opts = append(opts, parser.WithAnchorYear(year))
	}

	doc, status, err := h.loadDocument(c)
	if err != nil {
		return writeError(c, status, err.Error())
	}

	stmt, err := parser.NewStatement(doc, opts...)
	if errors.Is(err, parser.ErrBankNotDetected) {
		return writeError(c, fiber.StatusUnprocessableEntity,
			fmt.Sprintf("%v. Set the 'bank' form field to one of %v.", err, parser.SupportedBanks()))
	}
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	info, err := stmt.Info()
	if err != nil {
		h.Logger.Warn("statement rejected", zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, parser.ErrFormatViolation) {
			status = fiber.StatusUnprocessableEntity
		}
		return writeError(c, status, fmt.Sprintf("Parsing failed: %v", err))
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := csvWriter.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	report := writer.NewReport(info)
	return c.JSON(ParseResponse{
		Success: true,
		Report:  &report,
		CSV:     csvBuf.String(),
		RawText: strings.Join(doc.PageTexts(), PageBreak),
	})
}

func (h *Handler) loadDocument(c *fiber.Ctx) (*layout.Document, int, error) {
	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		return layout.FromText(strings.Split(text, PageBreak)), 0, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, fiber.StatusBadRequest, errors.New("Only PDF files are supported.")
	}

	f, err := header.Open()
	if err != nil {
		return nil, fiber.StatusInternalServerError, errors.New("Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fiber.StatusInternalServerError, errors.New("Failed to read uploaded file.")
	}

	doc, err := layout.LoadBytes(data, h.Config.Layout)
	if err != nil {
		return nil, fiber.StatusUnprocessableEntity, fmt.Errorf("PDF extraction failed: %v", err)
	}
	return doc, 0, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success: false,
		Error:   msg,
	})
}
