package api

import (
	"log/slog"
	"net/http"

	"askai/client/internal/interfaces"
	"askai/client/internal/model"
)

// AuthHandler handles login, signup and logout for browser views.
type AuthHandler struct {
	auth  interfaces.AuthService
	views interfaces.ViewService
}

func NewAuthHandler(auth interfaces.AuthService, views interfaces.ViewService) *AuthHandler {
	return &AuthHandler{auth: auth, views: views}
}

// HandleLogin godoc
// @Summary      Log in
// @Description  Exchanges email and password for a session credential held by the server for this view.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      model.Credentials  true  "Credentials"
// @Success      200          {object}  AuthResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  AuthResponse
// @Router       /v1/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondWithError(w, err)
		return
	}

	view := h.views.Get(ViewIDFromContext(r.Context()))
	result, err := h.auth.Login(r.Context(), view.Session, view.Nav, creds)
	if err != nil {
		respondWithError(w, err)
		return
	}

	resp := AuthResponse{Success: result.Success, Message: result.Message}
	if route, ok := view.Nav.Take(); ok {
		resp.Redirect = route.String()
	}
	code := http.StatusOK
	if !result.Success {
		code = http.StatusUnauthorized
	}
	respondWithJSON(w, code, resp)
}

// HandleSignup godoc
// @Summary      Sign up
// @Description  Registers a new account. The user still has to log in afterwards.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      model.Credentials  true  "Credentials"
// @Success      200          {object}  AuthResponse
// @Failure      400          {object}  AuthResponse
// @Router       /v1/signup [post]
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.auth.Signup(r.Context(), creds)
	if err != nil {
		respondWithError(w, err)
		return
	}

	code := http.StatusOK
	if !result.Success {
		code = http.StatusBadRequest
	}
	respondWithJSON(w, code, AuthResponse{Success: result.Success, Message: result.Message})
}

// HandleLogout godoc
// @Summary      Log out
// @Description  Clears this view's session credential. Outstanding queries are abandoned.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  NavigationResponse
// @Router       /v1/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	view := h.views.Get(ViewIDFromContext(r.Context()))
	if err := view.Controller.Logout(r.Context()); err != nil {
		slog.Error("Failed to clear session credential on logout", "view", view.ID, "error", err)
	}

	var resp NavigationResponse
	if route, ok := view.Nav.Take(); ok {
		resp.Redirect = route.String()
	}
	respondWithJSON(w, http.StatusOK, resp)
}
