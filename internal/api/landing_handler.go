package api

import (
	"net/http"

	"askai/client/internal/interfaces"
)

// LandingHandler serves the pre-login query box.
type LandingHandler struct {
	landing interfaces.LandingService
	views   interfaces.ViewService
}

func NewLandingHandler(landing interfaces.LandingService, views interfaces.ViewService) *LandingHandler {
	return &LandingHandler{landing: landing, views: views}
}

// HandleSubmit godoc
// @Summary      Submit a landing query
// @Description  Forwards a non-empty query to the dashboard as its external query. Empty queries are ignored.
// @Tags         Landing
// @Accept       json
// @Produce      json
// @Param        query  body      QueryRequest  true  "Query"
// @Success      200    {object}  NavigationResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /v1/landing [post]
func (h *LandingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	view := h.views.Get(ViewIDFromContext(r.Context()))
	var resp NavigationResponse
	if h.landing.Submit(view.Nav, req.Query) {
		if route, ok := view.Nav.Take(); ok {
			resp.Redirect = route.String()
		}
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// HandleSuggestions godoc
// @Summary      Landing suggestions
// @Description  Lists the quick-start labels shown under the landing query box.
// @Tags         Landing
// @Produce      json
// @Success      200  {object}  SuggestionsResponse
// @Router       /v1/landing/suggestions [get]
func (h *LandingHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: h.landing.Suggestions()})
}
