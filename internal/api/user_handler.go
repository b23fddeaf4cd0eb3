package api

import (
	"encoding/json"
	"net/http"

	"hosteria/internal/auth"
	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepository
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{Users: users}
}

func toUserResponse(u *db.User) entities.UserResponse {
	return entities.UserResponse{
		IDUsuario:     u.ID,
		Email:         u.Email,
		Nombre:        u.Name,
		IDTipoUsuario: u.RoleID,
		Verificado:    u.Verified,
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.UserResponse{}
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	user, err := h.Users.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// CurrentUser returns the authenticated caller's own record.
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.ErrUnauthorized("No autenticado"))
		return
	}
	user, err := h.Users.GetByID(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok && userID == id {
		respondError(w, apperrors.NewValidationError("No puede eliminar su propio usuario"))
		return
	}
	if err := h.Users.DeleteUser(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Usuario eliminado"})
}

func toRoleResponse(role *db.Role) entities.RoleResponse {
	permisos := role.Permissions
	if len(permisos) == 0 {
		permisos = []byte("{}")
	}
	return entities.RoleResponse{
		IDTipoUsuario: role.ID,
		Nombre:        role.Name,
		Descripcion:   role.Description,
		Permisos:      permisos,
		EsSistema:     role.IsSystem,
		Activo:        role.Active,
		Prioridad:     role.Priority,
	}
}

func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Users.ListRoles()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.RoleResponse{}
	for i := range roles {
		resp = append(resp, toRoleResponse(&roles[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	role, err := h.Users.GetRoleByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRoleResponse(role))
}

// UpdateRolePermissions replaces a role's permission blob. The payload goes
// through the typed PermissionSet decode, so unknown shapes are rejected
// instead of stored.
func (h *UserHandler) UpdateRolePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	role, err := h.Users.GetRoleByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if role.IsSystem && role.Name == "sysadmin" {
		respondError(w, apperrors.NewValidationError("No se pueden modificar los permisos de sysadmin"))
		return
	}
	var req struct {
		Permisos json.RawMessage `json:"permisos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	set, err := auth.ParsePermissions(req.Permisos)
	if err != nil {
		respondError(w, apperrors.NewValidationError("Permisos inválidos"))
		return
	}
	if err := h.Users.UpdateRolePermissions(id, set); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Permisos actualizados"})
}
