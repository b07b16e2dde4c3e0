package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/internal/domain/validation"
	"github.com/litethinking/gestion-api/pkg/nit"
)

// CompanyUseCase CRUD de empresas. Crear, actualizar y desactivar son
// operaciones de administrador; los externos solo leen su propia empresa.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una empresa. El NIT se normaliza (sin puntos ni guiones)
// antes de validar y persistir; NIT y email deben ser únicos.
func (uc *CompanyUseCase) Create(actor auth.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	v := validation.NewValidationError()
	v.AddErr("nit", validation.NIT(in.NIT))
	v.AddErr("name", validation.TextLength(in.Name, "name", 1, 200))
	v.AddErr("address", validation.TextLength(in.Address, "address", 1, 300))
	v.AddErr("phone", validation.Phone(in.Phone))
	v.AddErr("email", validation.Email(in.Email))
	cleanNIT := validation.CleanNIT(in.NIT)
	if len(cleanNIT) == 10 {
		// NIT de 10 dígitos: el último es dígito de verificación DIAN
		if err := nit.ValidateVerificationDigit(cleanNIT); err != nil {
			v.Add("nit", err.Error())
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.companyRepo.GetByNIT(cleanNIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	existing, err = uc.companyRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		NIT:       cleanNIT,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa. Los externos solo pueden ver la propia.
func (uc *CompanyUseCase) GetByID(actor auth.Actor, id string) (*dto.CompanyResponse, error) {
	if !actor.CanAccessCompany(id) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// GetByNIT busca una empresa por NIT (normalizado). Solo administradores.
func (uc *CompanyUseCase) GetByNIT(actor auth.Actor, rawNIT string) (*dto.CompanyResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByNIT(validation.CleanNIT(rawNIT))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update modifica los campos editables de la empresa. El NIT es inmutable.
func (uc *CompanyUseCase) Update(actor auth.Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	v := validation.NewValidationError()
	if in.Name != nil {
		v.AddErr("name", validation.TextLength(*in.Name, "name", 1, 200))
	}
	if in.Phone != nil {
		v.AddErr("phone", validation.Phone(*in.Phone))
	}
	if in.Email != nil {
		v.AddErr("email", validation.Email(*in.Email))
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != company.Email {
		other, err := uc.companyRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != company.ID {
			return nil, domain.ErrDuplicate
		}
		company.Email = *in.Email
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	company.UpdatedAt = time.Now()

	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Deactivate marca la empresa como inactiva (borrado lógico). Sus productos
// y usuarios se conservan; desactivar dos veces no es error.
func (uc *CompanyUseCase) Deactivate(actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	company.Deactivate(time.Now())
	return uc.companyRepo.Update(company)
}

// Activate reactiva una empresa desactivada.
func (uc *CompanyUseCase) Activate(actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	company.Activate(time.Now())
	return uc.companyRepo.Update(company)
}

// List lista empresas paginadas. Solo administradores; activeOnly filtra
// las desactivadas.
func (uc *CompanyUseCase) List(actor auth.Actor, page dto.PageRequest, activeOnly bool) (*dto.CompanyListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()

	var (
		companies []*entity.Company
		err       error
	)
	if activeOnly {
		companies, err = uc.companyRepo.ListByActive(true, page.Limit, page.Offset)
	} else {
		companies, err = uc.companyRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		NIT:       c.NIT,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
