package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"snatchup/globals"
	"snatchup/kv"
	"snatchup/middleware"
	"snatchup/mq"
	"snatchup/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const sessionTTL = 12 * time.Hour

// Handler owns the session lifecycle: Anonymous until login/register issues
// a token, Authenticated while the bearer token validates, Anonymous again
// after logout.
type Handler struct {
	Identity Identity
	Sessions kv.Store
	Events   *mq.Emitter
}

func (h *Handler) issueToken(ctx context.Context, userID, email string) (string, error) {
	claims := &middleware.Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		return "", err
	}

	if err := h.Sessions.Set(ctx, globals.SessionKey(userID), []byte(tokenString)); err != nil {
		log.Printf("Failed to store session token: %v", err)
	}
	return tokenString, nil
}

// Login validates credentials against the identity backend and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Identity.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := h.issueToken(r.Context(), user.UserID, user.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"token": tokenString,
		"user":  user,
	}, "Login successful", nil)
}

// Register creates an account and logs it straight in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Identity.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			http.Error(w, "Email already exists", http.StatusConflict)
			return
		}
		log.Printf("Registration failed for %s: %v", input.Email, err)
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	tokenString, err := h.issueToken(r.Context(), user.UserID, user.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.Events.Emit(r.Context(), "user-registered", user.UserID, "")

	utils.SendResponse(w, http.StatusCreated, map[string]any{
		"token": tokenString,
		"user":  user,
	}, "Registration successful", nil)
}

// Logout revokes the stored session token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Sessions.Delete(r.Context(), globals.SessionKey(userID)); err != nil {
		log.Printf("Error removing session token: %v", err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	h.Events.Emit(r.Context(), "user-loggedout", userID, "")

	utils.SendResponse(w, http.StatusOK, nil, "User logged out successfully", nil)
}

// Me resolves the bearer token back into a user record; an unrecognized
// user means the stored token should be discarded client-side.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Identity.Resolve(r.Context(), userID)
	if err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile merges the submitted fields into the current user.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := h.Identity.Update(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			http.Error(w, "Unknown user", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	utils.SendResponse(w, http.StatusOK, user, "Profile updated", nil)
}
