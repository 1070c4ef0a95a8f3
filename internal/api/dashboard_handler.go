package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"askai/client/internal/controller"
	app_errors "askai/client/internal/errors"
	"askai/client/internal/interfaces"
	"askai/client/internal/navigation"
	"askai/client/internal/service"
)

const defaultHeartbeat = 15 * time.Second

// DashboardHandler exposes a view's query controller over HTTP. Every
// dashboard request enters the view through the session guard first.
type DashboardHandler struct {
	views     interfaces.ViewService
	heartbeat time.Duration
}

func NewDashboardHandler(views interfaces.ViewService) *DashboardHandler {
	return &DashboardHandler{views: views, heartbeat: defaultHeartbeat}
}

// HandleEnter godoc
// @Summary      Enter the dashboard
// @Description  Runs the session guard and reconciles the query carried by the q parameter. Repeating the same q does not re-issue the query.
// @Tags         Dashboard
// @Produce      json
// @Param        q     query     string  false  "External query"
// @Param        wait  query     bool    false  "Wait for outstanding work to finish"
// @Success      200   {object}  DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) HandleEnter(w http.ResponseWriter, r *http.Request) {
	view, ok := h.enter(w, r)
	if !ok {
		return
	}
	view.Controller.ObserveExternal(r.Context(), r.URL.Query().Get(navigation.QueryParam))
	h.respond(w, r, view, http.StatusOK)
}

// HandleAsk godoc
// @Summary      Submit a query
// @Description  Submits a typed query. A newer query supersedes any that is still outstanding. Empty queries are ignored.
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Param        query  body      QueryRequest  true  "Query"
// @Param        wait   query     bool          false  "Wait for the answer"
// @Success      200    {object}  DashboardResponse
// @Success      202    {object}  DashboardResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /v1/dashboard/ask [post]
func (h *DashboardHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	view, ok := h.enter(w, r)
	if !ok {
		return
	}

	code := http.StatusOK
	if view.Controller.Submit(r.Context(), req.Query) {
		code = http.StatusAccepted
	}
	h.respond(w, r, view, code)
}

// HandleNewChat godoc
// @Summary      Start a new chat
// @Description  Clears the current query and answer. History is kept.
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  DashboardResponse
// @Router       /v1/dashboard/new-chat [post]
func (h *DashboardHandler) HandleNewChat(w http.ResponseWriter, r *http.Request) {
	view, ok := h.enter(w, r)
	if !ok {
		return
	}
	view.Controller.NewChat()
	h.respond(w, r, view, http.StatusOK)
}

// HandleSelectHistory godoc
// @Summary      Show a history entry
// @Description  Displays a stored answer without asking again.
// @Tags         Dashboard
// @Produce      json
// @Param        entryID  path      string  true  "History entry ID"
// @Success      200      {object}  DashboardResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/dashboard/history/{entryID}/select [post]
func (h *DashboardHandler) HandleSelectHistory(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	view, ok := h.enter(w, r)
	if !ok {
		return
	}
	if !view.Controller.SelectHistory(entryID) {
		respondWithError(w, fmt.Errorf("%w: history entry %s", app_errors.ErrNotFound, entryID))
		return
	}
	h.respond(w, r, view, http.StatusOK)
}

// HandleEvents godoc
// @Summary      Dashboard events
// @Description  Server-Sent Events stream. A signed-out view gets a single "navigate" event to the login page. "snapshot" events carry the dashboard state after each change; "navigate" events carry a redirect.
// @Tags         Dashboard
// @Produce      text/event-stream
// @Success      200  {object}  controller.Snapshot
// @Router       /v1/dashboard/events [get]
func (h *DashboardHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID := ViewIDFromContext(ctx)
	view := h.views.Get(viewID)
	mounted := view.Controller.Mount(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if !mounted {
		route, ok := view.Nav.Take()
		if !ok {
			route = navigation.Login()
		}
		_ = writeStreamEvent(w, "navigate", NavigationResponse{Redirect: route.String()})
		return
	}

	updates, unsubscribe := view.Controller.Subscribe()
	defer unsubscribe()

	if route, ok := view.Nav.Take(); ok {
		_ = writeStreamEvent(w, "navigate", NavigationResponse{Redirect: route.String()})
		return
	}
	if err := writeStreamEvent(w, "snapshot", view.Controller.Snapshot()); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Dashboard event stream closed by client", "view", viewID)
			return
		case snap, ok := <-updates:
			if !ok {
				sendStreamError(w, "The dashboard view was closed.")
				return
			}
			if err := writeStreamEvent(w, "snapshot", snap); err != nil {
				slog.Debug("Dashboard event stream write failed", "view", viewID, "error", err)
				return
			}
		case <-view.Nav.Notify():
			if route, ok := view.Nav.Take(); ok {
				_ = writeStreamEvent(w, "navigate", NavigationResponse{Redirect: route.String()})
				return
			}
		case <-heartbeat.C:
			h.views.Get(viewID)
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// enter runs the guard for the request's view. When it fails the redirect is
// written and false returned.
func (h *DashboardHandler) enter(w http.ResponseWriter, r *http.Request) (*service.View, bool) {
	view := h.views.Get(ViewIDFromContext(r.Context()))
	if view.Controller.Mount(r.Context()) {
		return view, true
	}
	var resp DashboardResponse
	if route, ok := view.Nav.Take(); ok {
		resp.Redirect = route.String()
	} else {
		resp.Redirect = navigation.Login().String()
	}
	respondWithJSON(w, http.StatusOK, resp)
	return nil, false
}

// respond writes the view's state, or its pending redirect. With wait=true it
// first lets outstanding work finish, bounded by the request context.
func (h *DashboardHandler) respond(w http.ResponseWriter, r *http.Request, view *service.View, code int) {
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		waitSettled(r.Context(), view.Controller)
		code = http.StatusOK
	}

	if route, ok := view.Nav.Take(); ok {
		respondWithJSON(w, http.StatusOK, DashboardResponse{Redirect: route.String()})
		return
	}
	snap := view.Controller.Snapshot()
	respondWithJSON(w, code, DashboardResponse{Dashboard: &snap})
}

func waitSettled(ctx context.Context, c *controller.Controller) {
	select {
	case <-c.Settled():
	case <-ctx.Done():
	}
}
