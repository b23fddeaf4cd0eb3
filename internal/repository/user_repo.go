package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hosteria/internal/auth"
	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
)

// UserRepository covers user accounts (usuarios) and their roles
// (tipos_usuario) including the JSONB permission blobs.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(`
		SELECT id, email, nombre, clave, id_tipo_usuario, verificado, verify_token, verify_token_expira
		FROM usuarios WHERE email = $1`, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.Verified,
		&u.VerifyToken, &u.VerifyTokenExpires,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(`
		SELECT id, email, nombre, clave, id_tipo_usuario, verificado, verify_token, verify_token_expira
		FROM usuarios WHERE id = $1`, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.Verified,
		&u.VerifyToken, &u.VerifyTokenExpires,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe usuario")
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) ListUsers() ([]db.User, error) {
	rows, err := r.DB.Query(`
		SELECT id, email, nombre, clave, id_tipo_usuario, verificado, verify_token, verify_token_expira
		FROM usuarios ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.Verified,
			&u.VerifyToken, &u.VerifyTokenExpires); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) DeleteUser(id int) error {
	result, err := r.DB.Exec(`DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe usuario")
	}
	return nil
}

func (r *UserRepository) CreateUser(u *db.User) error {
	err := r.DB.QueryRow(`
		INSERT INTO usuarios (email, nombre, clave, id_tipo_usuario, verificado, verify_token, verify_token_expira)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		u.Email, u.Name, u.PasswordHash, u.RoleID, u.Verified, u.VerifyToken, u.VerifyTokenExpires,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// MarkVerified consumes a verification token, activating the account.
func (r *UserRepository) MarkVerified(token string, now time.Time) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(`
		UPDATE usuarios
		SET verificado = TRUE, verify_token = NULL, verify_token_expira = NULL
		WHERE verify_token = $1 AND verify_token_expira > $2
		RETURNING id, email, nombre, clave, id_tipo_usuario, verificado, verify_token, verify_token_expira`,
		token, now).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.Verified,
		&u.VerifyToken, &u.VerifyTokenExpires,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewValidationError("Token de verificación inválido o expirado")
		}
		return nil, fmt.Errorf("error verifying user: %w", err)
	}
	return &u, nil
}

// PermissionsForUser loads the caller's role permissions. Inactive roles deny
// everything.
func (r *UserRepository) PermissionsForUser(userID int) (auth.PermissionSet, error) {
	var raw []byte
	var active bool
	err := r.DB.QueryRow(`
		SELECT t.permisos, t.activo
		FROM usuarios u
		JOIN tipos_usuario t ON t.id = u.id_tipo_usuario
		WHERE u.id = $1`, userID).Scan(&raw, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe usuario")
		}
		return nil, fmt.Errorf("error querying permissions for user %d: %w", userID, err)
	}
	if !active {
		return auth.PermissionSet{}, nil
	}
	return auth.ParsePermissions(raw)
}

// ---- tipos_usuario ----

func (r *UserRepository) ListRoles() ([]db.Role, error) {
	rows, err := r.DB.Query(`
		SELECT id, nombre, descripcion, permisos, es_sistema, activo, prioridad
		FROM tipos_usuario ORDER BY prioridad`)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %w", err)
	}
	defer rows.Close()

	var roles []db.Role
	for rows.Next() {
		var role db.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
			&role.IsSystem, &role.Active, &role.Priority); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *UserRepository) GetRoleByID(id int) (*db.Role, error) {
	var role db.Role
	err := r.DB.QueryRow(`
		SELECT id, nombre, descripcion, permisos, es_sistema, activo, prioridad
		FROM tipos_usuario WHERE id = $1`, id).Scan(
		&role.ID, &role.Name, &role.Description, &role.Permissions,
		&role.IsSystem, &role.Active, &role.Priority,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe tipo de usuario")
		}
		return nil, fmt.Errorf("error querying role %d: %w", id, err)
	}
	return &role, nil
}

func (r *UserRepository) GetRoleByName(name string) (*db.Role, error) {
	var role db.Role
	err := r.DB.QueryRow(`
		SELECT id, nombre, descripcion, permisos, es_sistema, activo, prioridad
		FROM tipos_usuario WHERE nombre = $1`, name).Scan(
		&role.ID, &role.Name, &role.Description, &role.Permissions,
		&role.IsSystem, &role.Active, &role.Priority,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe tipo de usuario")
		}
		return nil, fmt.Errorf("error querying role %q: %w", name, err)
	}
	return &role, nil
}

func (r *UserRepository) UpdateRolePermissions(roleID int, set auth.PermissionSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("error encoding permissions: %w", err)
	}
	result, err := r.DB.Exec(`UPDATE tipos_usuario SET permisos = $1 WHERE id = $2`, raw, roleID)
	if err != nil {
		return fmt.Errorf("error updating role %d permissions: %w", roleID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe tipo de usuario")
	}
	return nil
}

// EnsureDefaultRoles seeds the system roles on boot.
func (r *UserRepository) EnsureDefaultRoles() error {
	all := auth.AllActions()
	read := auth.ReadOnly()

	sysadmin := auth.PermissionSet{
		auth.ResourceUsuario: all, auth.ResourceTipoHabitacion: all,
		auth.ResourceHabitacion: all, auth.ResourceReserva: all,
		auth.ResourceHuesped: all, auth.ResourceEstadoReserva: all,
		auth.ResourceEstadoHabitacion: all, auth.ResourceAuditoria: all,
		auth.ResourceDashboard: all,
	}
	admin := auth.PermissionSet{
		auth.ResourceUsuario: read, auth.ResourceTipoHabitacion: all,
		auth.ResourceHabitacion: all, auth.ResourceReserva: all,
		auth.ResourceHuesped: all, auth.ResourceEstadoReserva: all,
		auth.ResourceEstadoHabitacion: all, auth.ResourceAuditoria: read,
		auth.ResourceDashboard: read,
	}
	reader := auth.PermissionSet{
		auth.ResourceUsuario: read, auth.ResourceTipoHabitacion: read,
		auth.ResourceHabitacion: read, auth.ResourceReserva: read,
		auth.ResourceHuesped: read, auth.ResourceEstadoReserva: read,
		auth.ResourceEstadoHabitacion: read, auth.ResourceAuditoria: read,
		auth.ResourceDashboard: read,
	}

	defaults := []struct {
		name, description string
		perms             auth.PermissionSet
		priority          int
	}{
		{"sysadmin", "Superusuario del sistema", sysadmin, 1},
		{"admin", "Administrador", admin, 10},
		{"reader", "Acceso de sólo lectura", reader, 100},
	}

	for _, role := range defaults {
		raw, err := json.Marshal(role.perms)
		if err != nil {
			return fmt.Errorf("error encoding permissions for role %q: %w", role.name, err)
		}
		_, err = r.DB.Exec(`
			INSERT INTO tipos_usuario (nombre, descripcion, permisos, es_sistema, activo, prioridad)
			VALUES ($1, $2, $3, TRUE, TRUE, $4)
			ON CONFLICT (nombre) DO NOTHING`,
			role.name, role.description, raw, role.priority,
		)
		if err != nil {
			return fmt.Errorf("error seeding role %q: %w", role.name, err)
		}
	}
	return nil
}
