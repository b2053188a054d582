package server

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"github.com/arvidhagen/replaykit/internal/archive"
	"github.com/arvidhagen/replaykit/internal/metrics/inmemory"
	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/replay"
)

type replayLoader interface {
	Load(ctx context.Context, req replay.Request) (model.Snapshot, error)
}

// Handler serves aggregated replay timelines over HTTP.
type Handler struct {
	Loader  replayLoader
	Archive archive.Store      // nil: archive routes report not configured
	Stats   *inmemory.Recorder // nil: stats route reports not configured
}

// RegisterRoutes attaches the API routes and CORS middleware.
func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	api := s.Group("/api")
	api.GET("/replays/:org/:slug/timeline", h.timeline)
	api.GET("/archive", h.archiveList)
	api.GET("/archive/:id", h.archiveGet)
	api.GET("/stats", h.stats)
}

func (h Handler) timeline(c context.Context, ctx *app.RequestContext) {
	org := ctx.Param("org")
	slug := ctx.Param("slug")

	snap, err := h.Loader.Load(c, replay.Request{Organization: org, EventSlug: slug})
	if err != nil {
		writeLoadError(ctx, err)
		return
	}

	if h.Archive != nil && string(ctx.Query("archive")) == "1" {
		rec := archive.Record{
			ID:           uuid.NewString(),
			Organization: org,
			EventSlug:    slug,
			FetchedAt:    time.Now().UTC(),
			Snapshot:     snap,
		}
		if err := h.Archive.Save(c, rec); err != nil {
			// The aggregation itself succeeded; archival is best-effort.
			slog.Warn("archive save failed", "slug", slug, "error", err)
		} else {
			ctx.Response.Header.Set("X-Replaykit-Archive-ID", rec.ID)
		}
	}

	ctx.JSON(consts.StatusOK, snap)
}

func (h Handler) archiveList(c context.Context, ctx *app.RequestContext) {
	if h.Archive == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "archive not configured")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	recs, err := h.Archive.List(c, limit)
	if err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "archive_error", err.Error())
		return
	}
	ctx.JSON(consts.StatusOK, recs)
}

func (h Handler) archiveGet(c context.Context, ctx *app.RequestContext) {
	if h.Archive == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "archive not configured")
		return
	}
	rec, err := h.Archive.Get(c, ctx.Param("id"))
	if errors.Is(err, archive.ErrNotFound) {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "archive_error", err.Error())
		return
	}
	ctx.JSON(consts.StatusOK, rec)
}

func (h Handler) stats(_ context.Context, ctx *app.RequestContext) {
	if h.Stats == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "stats recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Stats.Snapshot())
}

// writeLoadError maps load failures onto HTTP statuses: invalid slugs
// are the caller's fault, everything else is an upstream failure.
func writeLoadError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, replay.ErrBadSlug):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_slug", err.Error())
	case errors.Is(err, replay.ErrSuperseded):
		writeErrorBody(ctx, consts.StatusConflict, "superseded", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusBadGateway, "upstream_error", err.Error())
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error":   code,
		"message": message,
	})
}
