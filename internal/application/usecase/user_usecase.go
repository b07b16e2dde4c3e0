package usecase

import (
	"time"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/internal/domain/validation"
)

// UserUseCase administración de usuarios. El registro y el login viven en
// el paquete auth; aquí va la gestión posterior (perfil, listados, bajas).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetByID obtiene un usuario. Cualquier usuario puede ver su propio perfil;
// el resto requiere administrador.
func (uc *UserUseCase) GetByID(actor auth.Actor, id string) (*dto.UserResponse, error) {
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update modifica el perfil. El propio usuario edita nombre y email; solo
// un administrador puede cambiar Active. Username y Kind son inmutables.
func (uc *UserUseCase) Update(actor auth.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := validation.Email(*in.Email); err != nil {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Active != nil {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Deactivate borra lógicamente un usuario. Solo administradores; un
// administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) Deactivate(actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if actor.UserID == id {
		return domain.ErrConflict
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Active = false
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// List lista usuarios paginados, opcionalmente filtrando por tipo. Solo
// administradores.
func (uc *UserUseCase) List(actor auth.Actor, page dto.PageRequest, kind string) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if kind != "" && kind != entity.UserKindAdministrator && kind != entity.UserKindExternal {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	var (
		users []*entity.User
		err   error
	)
	if kind != "" {
		users, err = uc.userRepo.ListByKind(kind, page.Limit, page.Offset)
	} else {
		users, err = uc.userRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
