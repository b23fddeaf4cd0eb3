package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hosteria/internal/auth"
	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
)

// VerificationSender sends the account verification mail. Nil disables it and
// new accounts must be verified by hand.
type VerificationSender interface {
	SendVerificationEmail(toEmail, toName, token string)
}

type AuthService struct {
	users  *repository.UserRepository
	sender VerificationSender
}

func NewAuthService(users *repository.UserRepository, sender VerificationSender) *AuthService {
	return &AuthService{users: users, sender: sender}
}

func userResponse(u *db.User) entities.UserResponse {
	return entities.UserResponse{
		IDUsuario:     u.ID,
		Email:         u.Email,
		Nombre:        u.Name,
		IDTipoUsuario: u.RoleID,
		Verificado:    u.Verified,
	}
}

// Login checks the credentials and returns an access token plus a refresh
// token for the cookie. Unknown email and wrong password are the same error
// so the endpoint does not leak which accounts exist.
func (s *AuthService) Login(email, password string) (*entities.LoginResponse, string, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.ErrUnauthorized("Credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrUnauthorized("Credenciales inválidas")
	}
	if !user.Verified {
		return nil, "", apperrors.NewHTTPError(http.StatusForbidden, "La cuenta no está verificada")
	}

	now := time.Now()
	access, err := auth.NewAccessToken(user.ID, user.Email, now)
	if err != nil {
		return nil, "", fmt.Errorf("error signing access token: %w", err)
	}
	refresh, err := auth.NewRefreshToken(user.ID, now)
	if err != nil {
		return nil, "", fmt.Errorf("error signing refresh token: %w", err)
	}

	resp := &entities.LoginResponse{Token: access, Usuario: userResponse(user)}
	return resp, refresh, nil
}

// Refresh mints a new access token from a valid refresh token.
func (s *AuthService) Refresh(refreshToken string) (*entities.LoginResponse, error) {
	userID, err := auth.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized("Sesión expirada")
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized("Sesión expirada")
	}
	access, err := auth.NewAccessToken(user.ID, user.Email, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error signing access token: %w", err)
	}
	return &entities.LoginResponse{Token: access, Usuario: userResponse(user)}, nil
}

// Register creates an unverified account and mails its verification token.
func (s *AuthService) Register(req *entities.RegisterRequest) (*entities.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Clave == "" || req.Nombre == "" {
		return nil, apperrors.NewValidationError("Email, nombre y clave son obligatorios")
	}
	if len(req.Clave) < 8 {
		return nil, apperrors.NewValidationError("La clave debe tener al menos 8 caracteres")
	}
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Ya existe un usuario con ese email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Clave), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	token, err := newVerifyToken()
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Email:        email,
		Name:         req.Nombre,
		PasswordHash: string(hash),
		RoleID:       req.IDTipoUsuario,
		VerifyToken:  sql.NullString{String: token, Valid: true},
		VerifyTokenExpires: sql.NullTime{
			Time:  time.Now().Add(48 * time.Hour),
			Valid: true,
		},
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}
	if s.sender != nil {
		s.sender.SendVerificationEmail(user.Email, user.Name, token)
	}
	resp := userResponse(user)
	return &resp, nil
}

// Verify consumes a verification token and activates the account.
func (s *AuthService) Verify(token string) (*entities.UserResponse, error) {
	if token == "" {
		return nil, apperrors.NewValidationError("Falta el token de verificación")
	}
	user, err := s.users.MarkVerified(token, time.Now())
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// EnsureAdminUser seeds the initial sysadmin account on boot when it does
// not exist yet. The account is created already verified.
func (s *AuthService) EnsureAdminUser(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	role, err := s.users.GetRoleByName("sysadmin")
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user := &db.User{
		Email:        email,
		Name:         "Administrador",
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Verified:     true,
	}
	return s.users.CreateUser(user)
}

func newVerifyToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
