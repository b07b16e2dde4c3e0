package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

// Repos en memoria compartidos por los tests del paquete.

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func newMemCompanyRepo(companies ...*entity.Company) *memCompanyRepo {
	m := map[string]*entity.Company{}
	for _, c := range companies {
		cp := *c
		m[c.ID] = &cp
	}
	return &memCompanyRepo{companies: m}
}

func (r *memCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.NIT == nit {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) GetByEmail(email string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) Update(c *entity.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIT < out[j].NIT })
	return paginate(out, limit, offset), nil
}

func (r *memCompanyRepo) ListByActive(active bool, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		if c.Active == active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIT < out[j].NIT })
	return paginate(out, limit, offset), nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := map[string]*entity.Product{}
	for _, p := range products {
		cp := *p
		m[p.ID] = &cp
	}
	return &memProductRepo{products: m}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), nil
}

func (r *memProductRepo) LastCodeWithPrefix(prefix string) (string, error) {
	last := ""
	for _, p := range r.products {
		if strings.HasPrefix(p.Code, prefix) && p.Code > last {
			last = p.Code
		}
	}
	return last, nil
}

type memInventoryRepo struct {
	items map[string]*entity.Inventory
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: map[string]*entity.Inventory{}}
}

func (r *memInventoryRepo) Create(inv *entity.Inventory) error {
	for _, existing := range r.items {
		if existing.ProductID == inv.ProductID {
			return nil // idempotente
		}
	}
	cp := *inv
	r.items[inv.ID] = &cp
	return nil
}

func (r *memInventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	for _, inv := range r.items {
		if inv.ProductID == productID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	return r.GetByID(id)
}

func (r *memInventoryRepo) UpdateQuantities(inv *entity.Inventory) error {
	stored, ok := r.items[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Quantity = inv.Quantity
	stored.Reserved = inv.Reserved
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *memInventoryRepo) UpdateLocation(id, location string) error {
	stored, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Location = location
	return nil
}

func (r *memInventoryRepo) ListByCompany(string, int, int) ([]*repository.InventoryRow, error) {
	return nil, nil
}

func (r *memInventoryRepo) ListAll(int, int) ([]*repository.InventoryRow, error) {
	return nil, nil
}

// memCatalogTxRunner ejecuta el closure sin transacción; si falla, revierte
// las inserciones hechas dentro (simula el rollback).
type memCatalogTxRunner struct {
	productRepo *memProductRepo
	invRepo     *memInventoryRepo
}

func (r *memCatalogTxRunner) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.InventoryRepository) error) error {
	prodSnapshot := map[string]*entity.Product{}
	for id, p := range r.productRepo.products {
		cp := *p
		prodSnapshot[id] = &cp
	}
	invSnapshot := map[string]*entity.Inventory{}
	for id, inv := range r.invRepo.items {
		cp := *inv
		invSnapshot[id] = &cp
	}
	if err := fn(r.productRepo, r.invRepo); err != nil {
		r.productRepo.products = prodSnapshot
		r.invRepo.items = invSnapshot
		return err
	}
	return nil
}

type memConversationRepo struct {
	convs    map[string]*entity.Conversation
	messages []*entity.Message
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{convs: map[string]*entity.Conversation{}}
}

func (r *memConversationRepo) Create(conv *entity.Conversation) error {
	cp := *conv
	r.convs[conv.ID] = &cp
	return nil
}

func (r *memConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	c, ok := r.convs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memConversationRepo) Update(conv *entity.Conversation) error {
	if _, ok := r.convs[conv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *conv
	r.convs[conv.ID] = &cp
	return nil
}

func (r *memConversationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.convs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memConversationRepo) ListAll(limit, offset int) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.convs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memConversationRepo) CreateMessage(msg *entity.Message) error {
	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *memConversationRepo) ListMessages(conversationID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeLLM devuelve una respuesta fija y guarda el historial recibido en
// cada llamada, para verificar orden y contenido.
type fakeLLM struct {
	reply string
	err   error
	calls [][]ports.ChatTurn
}

func (f *fakeLLM) Complete(_ context.Context, history []ports.ChatTurn) (string, error) {
	turns := make([]ports.ChatTurn, len(history))
	copy(turns, history)
	f.calls = append(f.calls, turns)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
