package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
)

func adminActor() auth.Actor {
	return auth.Actor{UserID: "admin-1", Kind: entity.UserKindAdministrator}
}

func externalActor(companyID string) auth.Actor {
	return auth.Actor{UserID: "ext-1", CompanyID: companyID, Kind: entity.UserKindExternal}
}

func sampleCompany() *entity.Company {
	now := time.Now()
	return &entity.Company{
		ID:        "comp-1",
		NIT:       "900123456",
		Name:      "Acme S.A.S.",
		Address:   "Calle 100 # 10-20, Bogotá",
		Phone:     "6015551234",
		Email:     "contacto@acme.com",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validCompanyRequest() dto.CreateCompanyRequest {
	return dto.CreateCompanyRequest{
		NIT:     "901.234.567",
		Name:    "Nueva Empresa S.A.S.",
		Address: "Carrera 7 # 71-21, Bogotá",
		Phone:   "601 555 9876",
		Email:   "info@nuevaempresa.com",
	}
}

func TestCompanyCreate_NormalizaElNIT(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo())

	res, err := uc.Create(adminActor(), validCompanyRequest())
	require.NoError(t, err)

	// Persiste sin puntos ni guiones
	assert.Equal(t, "901234567", res.NIT)
	assert.True(t, res.Active)
}

func TestCompanyCreate_NITDuplicado(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo(sampleCompany()))

	req := validCompanyRequest()
	req.NIT = "900.123.456" // mismo NIT con otro formato
	_, err := uc.Create(adminActor(), req)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCompanyCreate_EmailDuplicado(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo(sampleCompany()))

	req := validCompanyRequest()
	req.Email = "contacto@acme.com"
	_, err := uc.Create(adminActor(), req)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCompanyCreate_NITInvalido(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo())

	cases := []struct {
		name string
		nit  string
	}{
		{"muy corto", "12345678"},
		{"muy largo", "1234567890123456"},
		{"con letras", "90012345A"},
		{"vacío", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCompanyRequest()
			req.NIT = tc.nit
			_, err := uc.Create(adminActor(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "nit")
		})
	}
}

func TestCompanyCreate_DigitoVerificacionDIAN(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo())

	// 900123456 tiene DV 8: 9001234568 es válido, 9001234567 no
	req := validCompanyRequest()
	req.NIT = "900123456-8"
	_, err := uc.Create(adminActor(), req)
	require.NoError(t, err)

	req = validCompanyRequest()
	req.NIT = "900123456-7"
	req.Email = "otro@correo.com"
	_, err = uc.Create(adminActor(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nit")
}

func TestCompanyCreate_AcumulaTodasLasViolaciones(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo())

	_, err := uc.Create(adminActor(), dto.CreateCompanyRequest{
		NIT:   "abc",
		Email: "no-es-email",
		Phone: "12",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nit")
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "name")
}

func TestCompanyCreate_ExternoRecibeForbidden(t *testing.T) {
	uc := NewCompanyUseCase(newMemCompanyRepo())

	_, err := uc.Create(externalActor("comp-1"), validCompanyRequest())
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCompanyGetByID_ExternoSoloVeLaPropia(t *testing.T) {
	company := sampleCompany()
	uc := NewCompanyUseCase(newMemCompanyRepo(company))

	res, err := uc.GetByID(externalActor(company.ID), company.ID)
	require.NoError(t, err)
	assert.Equal(t, company.NIT, res.NIT)

	_, err = uc.GetByID(externalActor("comp-otra"), company.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCompanyUpdate_ElNITNoCambia(t *testing.T) {
	company := sampleCompany()
	uc := NewCompanyUseCase(newMemCompanyRepo(company))

	newName := "Acme Renombrada S.A.S."
	res, err := uc.Update(adminActor(), company.ID, dto.UpdateCompanyRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, res.Name)
	assert.Equal(t, company.NIT, res.NIT)
}

func TestCompanyDeactivate_EsIdempotente(t *testing.T) {
	company := sampleCompany()
	repo := newMemCompanyRepo(company)
	uc := NewCompanyUseCase(repo)

	require.NoError(t, uc.Deactivate(adminActor(), company.ID))
	stored, _ := repo.GetByID(company.ID)
	assert.False(t, stored.Active)

	// Desactivar dos veces no es error
	require.NoError(t, uc.Deactivate(adminActor(), company.ID))

	// Y se puede reactivar
	require.NoError(t, uc.Activate(adminActor(), company.ID))
	stored, _ = repo.GetByID(company.ID)
	assert.True(t, stored.Active)
}

func TestCompanyList_FiltraPorActivas(t *testing.T) {
	active := sampleCompany()
	inactive := sampleCompany()
	inactive.ID = "comp-2"
	inactive.NIT = "901999888"
	inactive.Email = "otro@acme.com"
	inactive.Active = false
	uc := NewCompanyUseCase(newMemCompanyRepo(active, inactive))

	res, err := uc.List(adminActor(), dto.PageRequest{}, true)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, active.ID, res.Items[0].ID)

	res, err = uc.List(adminActor(), dto.PageRequest{}, false)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}
