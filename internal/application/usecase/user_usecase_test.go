package usecase

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := map[string]*entity.User{}
	for _, u := range users {
		cp := *u
		m[u.ID] = &cp
	}
	return &memUserRepo{users: m}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) sorted() []*entity.User {
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return paginate(r.sorted(), limit, offset), nil
}

func (r *memUserRepo) ListByKind(kind string, limit, offset int) ([]*entity.User, error) {
	var filtered []*entity.User
	for _, u := range r.sorted() {
		if u.Kind == kind {
			filtered = append(filtered, u)
		}
	}
	return paginate(filtered, limit, offset), nil
}

func sampleUser(id, kind, companyID string) *entity.User {
	now := time.Now()
	return &entity.User{
		ID:           id,
		CompanyID:    companyID,
		Username:     "usuario-" + id,
		Email:        id + "@acme.com",
		PasswordHash: "$2a$04$hash",
		FirstName:    "Ana",
		LastName:     "García",
		Kind:         kind,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func strPtr(s string) *string { return &s }

func TestUserGetByID_CadaUnoVeSuPropioPerfil(t *testing.T) {
	repo := newMemUserRepo(sampleUser("ext-1", entity.UserKindExternal, "comp-1"))
	uc := NewUserUseCase(repo)

	res, err := uc.GetByID(externalActor("comp-1"), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", res.ID)
	assert.Equal(t, entity.UserKindExternal, res.Kind)
}

func TestUserGetByID_ExternoNoVeOtrosPerfiles(t *testing.T) {
	repo := newMemUserRepo(
		sampleUser("ext-1", entity.UserKindExternal, "comp-1"),
		sampleUser("ext-2", entity.UserKindExternal, "comp-1"),
	)
	uc := NewUserUseCase(repo)

	_, err := uc.GetByID(externalActor("comp-1"), "ext-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserGetByID_AdminVeCualquierPerfil(t *testing.T) {
	repo := newMemUserRepo(sampleUser("ext-1", entity.UserKindExternal, "comp-1"))
	uc := NewUserUseCase(repo)

	res, err := uc.GetByID(adminActor(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", res.ID)
}

func TestUserUpdate_EmailDuplicadoRechazado(t *testing.T) {
	repo := newMemUserRepo(
		sampleUser("ext-1", entity.UserKindExternal, "comp-1"),
		sampleUser("ext-2", entity.UserKindExternal, "comp-1"),
	)
	uc := NewUserUseCase(repo)

	actor := auth.Actor{UserID: "ext-1", CompanyID: "comp-1", Kind: entity.UserKindExternal}
	_, err := uc.Update(actor, "ext-1", dto.UpdateUserRequest{Email: strPtr("ext-2@acme.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_SoloAdminCambiaActive(t *testing.T) {
	repo := newMemUserRepo(sampleUser("ext-1", entity.UserKindExternal, "comp-1"))
	uc := NewUserUseCase(repo)

	inactive := false
	actor := auth.Actor{UserID: "ext-1", CompanyID: "comp-1", Kind: entity.UserKindExternal}
	_, err := uc.Update(actor, "ext-1", dto.UpdateUserRequest{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	res, err := uc.Update(adminActor(), "ext-1", dto.UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, res.Active)
}

func TestUserDeactivate_AdminNoPuedeDesactivarseASiMismo(t *testing.T) {
	repo := newMemUserRepo(sampleUser("admin-1", entity.UserKindAdministrator, ""))
	uc := NewUserUseCase(repo)

	err := uc.Deactivate(adminActor(), "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserDeactivate_AdminDesactivaOtroUsuario(t *testing.T) {
	repo := newMemUserRepo(sampleUser("ext-1", entity.UserKindExternal, "comp-1"))
	uc := NewUserUseCase(repo)

	require.NoError(t, uc.Deactivate(adminActor(), "ext-1"))
	stored, _ := repo.GetByID("ext-1")
	assert.False(t, stored.Active)
}

func TestUserList_SoloAdmins(t *testing.T) {
	repo := newMemUserRepo(sampleUser("ext-1", entity.UserKindExternal, "comp-1"))
	uc := NewUserUseCase(repo)

	_, err := uc.List(externalActor("comp-1"), dto.PageRequest{}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserList_FiltraPorTipo(t *testing.T) {
	repo := newMemUserRepo(
		sampleUser("admin-1", entity.UserKindAdministrator, ""),
		sampleUser("ext-1", entity.UserKindExternal, "comp-1"),
		sampleUser("ext-2", entity.UserKindExternal, "comp-2"),
	)
	uc := NewUserUseCase(repo)

	res, err := uc.List(adminActor(), dto.PageRequest{}, entity.UserKindExternal)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	_, err = uc.List(adminActor(), dto.PageRequest{}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
