// Package api exposes endpoint extraction over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/woozymasta/bc1ep"
	"github.com/woozymasta/bc1ep/internal/logger"
)

// DefaultMaxBodyBytes caps uploaded textures.
const DefaultMaxBodyBytes = 64 << 20

// HeaderRequestID carries the id assigned to each extraction request.
const HeaderRequestID = "X-Request-Id"

// Server holds the handler dependencies.
type Server struct {
	log          logger.Logger
	maxBodyBytes int64
	defaults     bc1ep.Options
}

// Config configures a Server.
type Config struct {
	Logger       logger.Logger
	MaxBodyBytes int64
	// Defaults apply when a request omits the corresponding query parameter.
	Defaults bc1ep.Options
}

// NewServer creates a Server.
func NewServer(cfg Config) *Server {
	s := &Server{
		log:          cfg.Logger,
		maxBodyBytes: cfg.MaxBodyBytes,
		defaults:     cfg.Defaults,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	return s
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/endpoints", s.handleExtract)
	e.POST("/v1/header", s.handleHeader)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HeaderInfo is the response of /v1/header.
type HeaderInfo struct {
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	FourCC      string `json:"fourcc"`
	DXGIFormat  uint32 `json:"dxgi_format,omitempty"`
	SRGB        bool   `json:"srgb"`
	MipMapCount uint32 `json:"mipmap_count"`
	DataOffset  int    `json:"data_offset"`
	BlocksX     int    `json:"blocks_x"`
	BlocksY     int    `json:"blocks_y"`
}

func (s *Server) handleHeader(c *echo.Context) error {
	body, herr := s.readBody(c)
	if herr != nil {
		return herr.write(c)
	}
	hdr, err := bc1ep.ParseHeader(body)
	if err != nil {
		return writeExtractError(c, err)
	}
	grid := bc1ep.NewGrid(int(hdr.Width), int(hdr.Height))
	return c.JSON(http.StatusOK, HeaderInfo{
		Width:       hdr.Width,
		Height:      hdr.Height,
		FourCC:      hdr.FourCCString(),
		DXGIFormat:  hdr.DXGIFormat,
		SRGB:        hdr.SRGB(),
		MipMapCount: hdr.Mipmaps(),
		DataOffset:  hdr.DataOffset,
		BlocksX:     grid.BlocksX,
		BlocksY:     grid.BlocksY,
	})
}

func (s *Server) handleExtract(c *echo.Context) error {
	id := uuid.NewString()
	c.Response().Header().Set(HeaderRequestID, id)
	log := s.log.With("request_id", id)

	opts, err := s.options(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if opts.Source == "" {
		opts.Source = "upload:" + id
	}

	body, herr := s.readBody(c)
	if herr != nil {
		return herr.write(c)
	}

	ext, err := bc1ep.Extract(body, opts)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return writeExtractError(c, err)
	}

	data, err := bc1ep.Marshal(ext.Dataset, bc1ep.EncodingJSON)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	log.Info("extracted",
		"width", ext.Header.Width,
		"height", ext.Header.Height,
		"container", ext.Container.String(),
		"kept", ext.Dataset.Len(),
		"total", ext.Grid.Total(),
	)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func (s *Server) options(c *echo.Context) (bc1ep.Options, error) {
	opts := s.defaults
	opts.Source = c.QueryParam("source")

	boolParam := func(name string, dst *bool) error {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("invalid boolean for " + name + ": " + raw)
		}
		*dst = v
		return nil
	}
	if err := boolParam("keep_only_ordered", &opts.KeepOnlyOrdered); err != nil {
		return opts, err
	}
	if err := boolParam("include_meta", &opts.IncludeMeta); err != nil {
		return opts, err
	}
	if err := boolParam("rgb888", &opts.IncludeRGB888); err != nil {
		return opts, err
	}

	container, err := bc1ep.ParseContainer(c.QueryParam("container"))
	if err != nil {
		return opts, err
	}
	opts.Container = container

	return opts, nil
}

// readBody returns the request body, bounded by maxBodyBytes.
func (s *Server) readBody(c *echo.Context) ([]byte, *httpError) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, &httpError{status: http.StatusBadRequest, typ: "invalid_request_error", msg: "reading body: " + err.Error()}
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, &httpError{
			status: http.StatusRequestEntityTooLarge,
			typ:    "too_large",
			msg:    "request body exceeds " + strconv.FormatInt(s.maxBodyBytes, 10) + " bytes",
		}
	}
	return body, nil
}
