package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/sistema-facturador/internal/application/auth"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios (solo admin).
type UserUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso sobre el documento raíz.
func NewUserUseCase(docs ports.DocumentRunner, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{docs: docs, log: log.Component("users")}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.UserResponse, 0, len(doc.Users))
		for _, u := range doc.Users {
			out = append(out, auth.ToUserResponse(u))
		}
		return nil
	})
	return out, err
}

type userInput struct {
	username string
	password string
	role     string
	access   []string
}

// validateUser valida la entrada; requirePassword es falso en edición (vacío = conservar).
func validateUser(in dto.SaveUserRequest, requirePassword bool) (userInput, error) {
	v := userInput{
		username: strings.TrimSpace(in.Username),
		password: strings.TrimSpace(in.Password),
		role:     strings.TrimSpace(in.Role),
	}
	if v.role == "" {
		v.role = entity.RoleUser
	}
	if v.username == "" {
		return v, domain.Invalid("username", "Usuario requerido.")
	}
	if requirePassword && v.password == "" {
		return v, domain.Invalid("password", "Contraseña requerida.")
	}
	switch v.role {
	case entity.RoleAdmin:
		v.access = append([]string(nil), entity.Sections...)
	case entity.RoleUser:
		for _, s := range in.Access {
			if !entity.IsSection(s) {
				return v, domain.Invalid("access", "Sección desconocida: "+s)
			}
			v.access = append(v.access, s)
		}
		if len(v.access) == 0 {
			return v, domain.Invalid("access", "Selecciona al menos un acceso.")
		}
	default:
		return v, domain.Invalid("role", "Rol inválido (admin o user).")
	}
	return v, nil
}

// Create da de alta un usuario. El nombre de usuario es único.
func (uc *UserUseCase) Create(ctx context.Context, in dto.SaveUserRequest) (*dto.UserResponse, error) {
	v, err := validateUser(in, true)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(v.password)
	if err != nil {
		return nil, err
	}
	user := entity.User{Username: v.username, PasswordHash: hash, Role: v.role, Access: v.access}
	err = uc.docs.Update(ctx, func(doc *entity.Document) error {
		if doc.FindUser(v.username) >= 0 {
			return domain.Duplicate("username", "Ese usuario ya existe.")
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("usuario creado")
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Update edita el usuario indicado. El admin base no se renombra ni deja de ser admin.
func (uc *UserUseCase) Update(ctx context.Context, username string, in dto.SaveUserRequest) (*dto.UserResponse, error) {
	v, err := validateUser(in, false)
	if err != nil {
		return nil, err
	}
	var hash string
	if v.password != "" {
		if hash, err = auth.HashPassword(v.password); err != nil {
			return nil, err
		}
	}

	var updated entity.User
	err = uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindUser(username)
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		if username == entity.BaseAdmin {
			if v.username != entity.BaseAdmin {
				return domain.Invalid("username", "No puedes renombrar el usuario admin base.")
			}
			if v.role != entity.RoleAdmin {
				return domain.Invalid("role", "El usuario admin base debe conservar el rol admin.")
			}
		}
		if v.username != username && doc.FindUser(v.username) >= 0 {
			return domain.Duplicate("username", "Ese usuario ya existe.")
		}
		u := &doc.Users[idx]
		u.Username = v.username
		u.Role = v.role
		u.Access = v.access
		if hash != "" {
			u.PasswordHash = hash
			u.Password = ""
		}
		if doc.Session.Username != nil && *doc.Session.Username == username {
			name := v.username
			doc.Session.Username = &name
		}
		updated = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", updated.Username).Msg("usuario actualizado")
	resp := auth.ToUserResponse(updated)
	return &resp, nil
}

// Delete elimina el usuario; el admin base no se puede eliminar.
func (uc *UserUseCase) Delete(ctx context.Context, username string) error {
	if username == entity.BaseAdmin {
		return domain.Invalid("username", "No se puede eliminar el usuario admin base.")
	}
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindUser(username)
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		doc.Users = append(doc.Users[:idx], doc.Users[idx+1:]...)
		if doc.Session.Username != nil && *doc.Session.Username == username {
			doc.Session.Username = nil
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("username", username).Msg("usuario eliminado")
	return nil
}
