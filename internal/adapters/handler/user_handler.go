package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/muhammadMilon/BloodBridge/internal/adapters/middleware"
	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{userService: users}
}

func callerEmail(r *http.Request) string {
	email, _ := r.Context().Value(middleware.EmailKey).(string)
	return email
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: failed to write response: %v", err)
	}
}

// AddUser registers an account on first sign-in. Existing accounts are
// not an error; their login counter is incremented instead.
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var user domain.Donor
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.userService.RegisterUser(r.Context(), user)
	if err != nil {
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"msg": "user already exist"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"msg": "user created"})
}

func (h *UserHandler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserByEmail(r.Context(), callerEmail(r))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"msg":    "ok",
		"role":   string(user.Role),
		"status": string(user.Status),
	})
}

func (h *UserHandler) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserByEmail(r.Context(), callerEmail(r))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(user.Status)})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserByEmail(r.Context(), callerEmail(r))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var user domain.Donor
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), id, user); err != nil {
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "user updated"})
}

// GetUsers lists every account except the caller's, for moderation views.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context(), callerEmail(r))
	if err != nil {
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type UpdateRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateRole(r.Context(), req.Email, domain.Role(req.Role)); err != nil {
		http.Error(w, "role update failed", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "role updated"})
}

type UpdateStatusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateStatus(r.Context(), req.Email, domain.AccountStatus(req.Status)); err != nil {
		http.Error(w, "status update failed", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "status updated"})
}
