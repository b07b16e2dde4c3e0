package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/internal/domain/validation"
	"github.com/litethinking/gestion-api/pkg/jwt"
)

// UseCase maneja registro, login y renovación de tokens.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtConfig   jwt.Config
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtConfig jwt.Config) *UseCase {
	return &UseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtConfig:   jwtConfig,
	}
}

// Register crea un usuario y devuelve el par de tokens. Los usuarios
// externos deben indicar una empresa existente; los administradores pueden
// omitirla. Email y username deben ser únicos.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	v := validation.NewValidationError()
	v.AddErr("email", validation.Email(in.Email))
	v.AddErr("username", validation.TextLength(in.Username, "username", 3, 150))
	if len(in.Password) < 8 {
		v.Add("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if in.Password != in.PasswordConfirm {
		v.Add("password_confirm", "las contraseñas no coinciden")
	}

	kind := in.Kind
	if kind == "" {
		kind = entity.UserKindExternal
	}
	if kind != entity.UserKindAdministrator && kind != entity.UserKindExternal {
		v.Add("kind", "tipo de usuario inválido")
	}
	if kind == entity.UserKindExternal && in.CompanyID == "" {
		v.Add("company_id", "los usuarios externos requieren una empresa")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if in.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil || !company.Active {
			return nil, domain.ErrNotFound
		}
	}

	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Kind:         kind,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	return uc.authResponse(user)
}

// Login verifica las credenciales y registra el último acceso.
// Todo fallo de credenciales responde ErrUnauthorized sin distinguir si el
// email existe; una cuenta desactivada responde ErrForbidden.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	user.LastAccessAt = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	return uc.authResponse(user)
}

// Refresh emite un nuevo par de tokens a partir de un refresh token válido.
// Relee el usuario para que cuentas desactivadas no puedan renovar.
func (uc *UseCase) Refresh(in dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	claims, err := jwt.ParseRefresh(uc.jwtConfig.Secret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	pair, err := jwt.GeneratePair(uc.jwtConfig, user.ID, user.CompanyID, user.Kind)
	if err != nil {
		return nil, err
	}
	return toTokenPairResponse(pair), nil
}

// ChangePassword cambia la contraseña del usuario autenticado, verificando
// primero la actual.
func (uc *UseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func (uc *UseCase) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	pair, err := jwt.GeneratePair(uc.jwtConfig, user.ID, user.CompanyID, user.Kind)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:   *ToUserResponse(user),
		Tokens: *toTokenPairResponse(pair),
	}, nil
}

func toTokenPairResponse(pair *jwt.Pair) *dto.TokenPairResponse {
	return &dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}

// ToUserResponse mapea la entidad al DTO de salida, sin el hash de contraseña.
func ToUserResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           user.ID,
		CompanyID:    user.CompanyID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		FullName:     user.FullName(),
		Kind:         user.Kind,
		Active:       user.Active,
		LastAccessAt: user.LastAccessAt,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
