package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jo-hoe/colorstash/internal/common"
	"github.com/jo-hoe/colorstash/internal/core"
)

const (
	probePath   = "/probe"
	metricsPath = "/metrics"

	statusSuccess = "success"
	statusError   = "error"
)

type APIService struct {
	coreService *core.CoreService
}

// ColorRequest fields are pointers so that a missing channel can be told
// apart from a zero value.
type ColorRequest struct {
	R *int `json:"r" validate:"required,min=0,max=255"`
	G *int `json:"g" validate:"required,min=0,max=255"`
	B *int `json:"b" validate:"required,min=0,max=255"`
}

func (r ColorRequest) Color() common.Color {
	return common.NewColor(uint8(*r.R), uint8(*r.G), uint8(*r.B))
}

type SwatchResponse struct {
	Status string  `json:"status"`
	URL    *string `json:"url"`
}

type CountResponse struct {
	Status     string `json:"status"`
	Relational *int   `json:"relational,omitempty"`
	Document   *int   `json:"document,omitempty"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.POST("/", s.createSwatchHandler)
	e.GET("/colors", s.countColorHandler)

	// Set probe route
	e.GET(probePath, func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
}

func (s *APIService) createSwatchHandler(ctx echo.Context) error {
	color, err := s.parseColorRequest(ctx)
	if err != nil {
		slog.Info("createSwatchHandler: rejected request body",
			"status", http.StatusBadRequest, "error", err)
		return writePretty(ctx, http.StatusBadRequest, SwatchResponse{Status: statusError})
	}

	url, err := s.coreService.CreateSwatch(ctx.Request().Context(), color)
	if err != nil {
		slog.Error("createSwatchHandler: failed to create swatch",
			"status", http.StatusInternalServerError,
			"kind", common.KindOf(err).String(),
			"color", color.String(),
			"error", err)
		return writePretty(ctx, http.StatusInternalServerError, SwatchResponse{Status: statusError})
	}

	return writePretty(ctx, http.StatusOK, SwatchResponse{Status: statusSuccess, URL: &url})
}

func (s *APIService) countColorHandler(ctx echo.Context) error {
	var r, g, b int
	err := echo.QueryParamsBinder(ctx).
		MustInt("r", &r).
		MustInt("g", &g).
		MustInt("b", &b).
		BindError()
	if err == nil {
		err = ctx.Validate(&ColorRequest{R: &r, G: &g, B: &b})
	}
	if err != nil {
		slog.Info("countColorHandler: invalid query",
			"status", http.StatusBadRequest, "error", err)
		return writePretty(ctx, http.StatusBadRequest, CountResponse{Status: statusError})
	}

	counts, err := s.coreService.CountColor(ctx.Request().Context(), common.NewColor(uint8(r), uint8(g), uint8(b)))
	if err != nil {
		slog.Error("countColorHandler: failed to count color",
			"status", http.StatusInternalServerError,
			"kind", common.KindOf(err).String(),
			"error", err)
		return writePretty(ctx, http.StatusInternalServerError, CountResponse{Status: statusError})
	}

	return writePretty(ctx, http.StatusOK, CountResponse{
		Status:     statusSuccess,
		Relational: &counts.Relational,
		Document:   &counts.Document,
	})
}

func (s *APIService) parseColorRequest(ctx echo.Context) (common.Color, error) {
	mediaType, _, err := mime.ParseMediaType(ctx.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return common.Color{}, common.E(common.KindInput, "parse request",
			fmt.Errorf("unsupported content type %q", ctx.Request().Header.Get(echo.HeaderContentType)))
	}

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return common.Color{}, common.E(common.KindInput, "parse request", fmt.Errorf("failed to read body: %w", err))
	}

	var req ColorRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return common.Color{}, common.E(common.KindInput, "parse request", fmt.Errorf("failed to parse json: %w", err))
	}
	if err := ctx.Validate(&req); err != nil {
		return common.Color{}, err
	}
	return req.Color(), nil
}

// writePretty writes v as JSON indented by two spaces, without a trailing
// newline.
func writePretty(ctx echo.Context, status int, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return ctx.JSONBlob(status, body)
}
