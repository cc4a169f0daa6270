package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/jwt"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout, sesión y autorización por sección.
type AuthUseCase struct {
	docs   ports.DocumentRunner
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(docs ports.DocumentRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{docs: docs, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash: %w", err)
	}
	return string(hash), nil
}

// checkPassword compara contra el hash; si el usuario viene de un documento antiguo con
// contraseña en texto plano, la acepta y la migra a bcrypt (devuelve true en migrated).
func checkPassword(u *entity.User, password string) (ok, migrated bool, err error) {
	if u.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, false, nil
	}
	if u.Password == "" || u.Password != password {
		return false, false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, false, err
	}
	u.PasswordHash = hash
	u.Password = ""
	return true, true, nil
}

// Login verifica usuario/contraseña, guarda la sesión y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)

	var user entity.User
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindUser(username)
		if idx < 0 {
			return domain.ErrUnauthorized
		}
		u := &doc.Users[idx]
		ok, migrated, err := checkPassword(u, password)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUnauthorized
		}
		if migrated {
			uc.log.Info().Str("username", u.Username).Msg("contraseña migrada a bcrypt")
		}
		name := u.Username
		doc.Session.Username = &name
		user = u.Clone()
		return nil
	})
	if err != nil {
		uc.log.Warn().Str("username", username).Err(err).Msg("login rechazado")
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", user.Username).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:   token,
		User:    ToUserResponse(user),
		Landing: Landing(user),
	}, nil
}

// Logout limpia la sesión persistida.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.docs.Update(ctx, func(doc *entity.Document) error {
		doc.Session.Username = nil
		return nil
	})
}

// CurrentUser usuario de la sesión persistida o nil si no hay sesión.
func (uc *AuthUseCase) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		if doc.Session.Username == nil {
			return nil
		}
		if idx := doc.FindUser(*doc.Session.Username); idx >= 0 {
			resp := ToUserResponse(doc.Users[idx])
			out = &resp
		}
		return nil
	})
	return out, err
}

// CanAccess autoriza la sección para el usuario: admin siempre, user solo si está en su lista.
// Un usuario inexistente (eliminado después de emitir su token) no accede a nada.
func (uc *AuthUseCase) CanAccess(ctx context.Context, username, section string) (bool, error) {
	allowed := false
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		if idx := doc.FindUser(username); idx >= 0 {
			allowed = doc.Users[idx].CanAccess(section)
		}
		return nil
	})
	return allowed, err
}

// IsAdmin indica si el usuario, según el documento vigente, tiene rol admin.
// Un usuario degradado o eliminado deja de ser admin aunque su token diga lo contrario.
func (uc *AuthUseCase) IsAdmin(ctx context.Context, username string) (bool, error) {
	admin := false
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		if idx := doc.FindUser(username); idx >= 0 {
			admin = doc.Users[idx].Role == entity.RoleAdmin
		}
		return nil
	})
	return admin, err
}

// Landing primera sección a mostrar tras el login.
func Landing(u entity.User) string {
	if u.Role == entity.RoleAdmin || len(u.Access) == 0 {
		return entity.SectionConfig
	}
	return u.Access[0]
}

// ToUserResponse convierte la entidad a DTO (sin credenciales).
func ToUserResponse(u entity.User) dto.UserResponse {
	access := append([]string(nil), u.Access...)
	if u.Role == entity.RoleAdmin {
		access = append([]string(nil), entity.Sections...)
	}
	return dto.UserResponse{Username: u.Username, Role: u.Role, Access: access}
}
