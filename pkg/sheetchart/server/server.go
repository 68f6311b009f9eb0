// Package server exposes a chart session over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/export"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/session"
)

type ServerConfig struct {
	Port uint
}

// Server serves a single session. Every handler goes through the session,
// whose lock serializes concurrent requests.
type Server struct {
	config  ServerConfig
	session *session.Session
	opts    sheetchart.Options
	log     *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type seriesResponse struct {
	Series *models.Series `json:"series"`
}

// NewServer returns a server for sess.
func NewServer(config ServerConfig, sess *session.Session, opts sheetchart.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		config:  config,
		session: sess,
		opts:    opts,
		log:     log,
	}
}

// Router returns the request router.
func (server *Server) Router() *router.Router {
	r := router.New()
	r.GET("/health", healthHandler)

	api := r.Group("/api/v1")
	{
		api.GET("/dataset", server.apiGetDatasetHandler)
		api.POST("/dataset", server.apiPostDatasetHandler)

		api.GET("/selection", server.apiGetSelectionHandler)
		api.POST("/selection", server.apiPostSelectionHandler)
		api.POST("/preview", server.apiPostPreviewHandler)
		api.DELETE("/preview", server.apiDeletePreviewHandler)

		api.GET("/series", server.apiGetSeriesHandler)
		api.GET("/chart", server.apiGetChartHandler)
		api.GET("/data", server.apiGetDataHandler)
	}

	return r
}

// ListenAndServe serves on the configured port until the listener fails.
func (server *Server) ListenAndServe() error {
	serverLogger, err := zap.NewStdLogAt(server.log, zap.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	fastServer := &fasthttp.Server{
		Handler: server.Router().Handler,
		Logger:  serverLogger,
	}

	addr := fmt.Sprintf(":%d", server.config.Port)
	server.log.Info("listening", zap.String("addr", addr))
	return fastServer.ListenAndServe(addr)
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	fmt.Fprintf(ctx, "ok")
}

func (server *Server) apiGetDatasetHandler(ctx *fasthttp.RequestCtx) {
	if server.session.Dataset() == nil {
		ctx.Response.SetStatusCode(http.StatusNotFound)
		return
	}
	writeJSON(ctx, http.StatusOK, server.session.Summary())
}

func (server *Server) apiPostDatasetHandler(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("name"))
	if name == "" {
		writeJSON(ctx, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	load := server.session.BeginLoad()
	wb, err := sheetchart.Decode(ctx.Request.Body(), name, server.opts)
	if err != nil {
		load.Abandon()
		server.log.Warn("dataset upload rejected", zap.String("name", name), zap.Error(err))
		writeJSON(ctx, http.StatusBadRequest, errorResponse{Error: sheetchart.UserMessage(err)})
		return
	}
	if !load.Complete(wb.Dataset) {
		writeJSON(ctx, http.StatusConflict, errorResponse{Error: "superseded by a newer upload"})
		return
	}

	writeJSON(ctx, http.StatusCreated, server.session.Summary())
}

func (server *Server) apiGetSelectionHandler(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, http.StatusOK, server.session.Selection().Snapshot())
}

func (server *Server) apiPostSelectionHandler(ctx *fasthttp.RequestCtx) {
	x, y, kind, err := selectionArgs(ctx)
	if err != nil {
		writeJSON(ctx, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	m := server.session.Selection()
	if x != "" {
		m.SetXColumn(x)
	}
	if y != "" {
		m.SetYColumn(y)
	}
	if kind != "" {
		m.SetChartKind(kind)
	}

	writeJSON(ctx, http.StatusOK, m.Snapshot())
}

func (server *Server) apiPostPreviewHandler(ctx *fasthttp.RequestCtx) {
	x, y, kind, err := selectionArgs(ctx)
	if err != nil {
		writeJSON(ctx, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	m := server.session.Selection()
	if x != "" {
		m.PreviewX(x)
	}
	if y != "" {
		m.PreviewY(y)
	}
	if kind != "" {
		m.PreviewChartKind(kind)
	}

	writeJSON(ctx, http.StatusOK, m.Snapshot())
}

func (server *Server) apiDeletePreviewHandler(ctx *fasthttp.RequestCtx) {
	m := server.session.Selection()
	m.ClearPreview()
	writeJSON(ctx, http.StatusOK, m.Snapshot())
}

func (server *Server) apiGetSeriesHandler(ctx *fasthttp.RequestCtx) {
	var resp seriesResponse
	if series, ok := server.session.Series(); ok {
		resp.Series = &series
	}
	writeJSON(ctx, http.StatusOK, resp)
}

func (server *Server) apiGetChartHandler(ctx *fasthttp.RequestCtx) {
	format := export.FormatImage
	if arg := ctx.QueryArgs().Peek("format"); len(arg) > 0 {
		f, err := export.ParseFormat(string(arg))
		if err != nil {
			writeJSON(ctx, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		format = f
	}

	surface, err := server.session.Surface()
	if err != nil {
		server.log.Error("failed to render chart", zap.Error(err))
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.WriteChart(&buf, surface, format); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	name := format.FileName(string(ctx.QueryArgs().Peek("name")))
	ctx.Response.Header.SetContentType(format.ContentType())
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Response.SetBody(buf.Bytes())
}

func (server *Server) apiGetDataHandler(ctx *fasthttp.RequestCtx) {
	ds := server.session.Dataset()
	if ds == nil {
		ctx.Response.SetStatusCode(http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteData(&buf, ds); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	name := export.DataFileName(string(ctx.QueryArgs().Peek("name")))
	ctx.Response.Header.SetContentType(export.DataContentType)
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Response.SetBody(buf.Bytes())
}

// selectionArgs reads the optional x, y and kind query arguments.
func selectionArgs(ctx *fasthttp.RequestCtx) (x, y string, kind models.ChartKind, err error) {
	args := ctx.QueryArgs()
	x = string(args.Peek("x"))
	y = string(args.Peek("y"))
	if k := args.Peek("kind"); len(k) > 0 {
		kind, err = models.ParseChartKind(string(k))
	}
	return x, y, kind, err
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}
	ctx.Response.SetStatusCode(status)
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(data)
}
