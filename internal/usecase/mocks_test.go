package usecase_test

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/infra/mailer"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// UserRepository
// =====================

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.UserRepository = (*MockUserRepository)(nil)

// =====================
// ResetTokenRepository / Mailer
// =====================

type MockResetTokens struct{ mock.Mock }

func (m *MockResetTokens) Save(ctx context.Context, token string, userID int64) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *MockResetTokens) Lookup(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResetTokens) Consume(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMedia struct{ mock.Mock }

func (m *MockMedia) ResolveURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// =====================
// AddressRepository
// =====================

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(model.Address)
	return out, args.Error(1)
}

func (m *MockAddressRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Address)
	return out, args.Error(1)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id int64) (model.Address, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Address)
	return out, args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, a model.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Catalog
// =====================

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) List(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	args := m.Called(ctx, activeOnly)
	out, _ := args.Get(0).([]model.Category)
	return out, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Cart / Order / Audit
// =====================

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Cart)
	return out, args.Error(1)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id int64) (model.Cart, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Cart)
	return out, args.Error(1)
}

func (m *MockCartRepository) AddOrIncrement(ctx context.Context, userID int64, productID int64, qty int64) (model.Cart, error) {
	args := m.Called(ctx, userID, productID, qty)
	out, _ := args.Get(0).(model.Cart)
	return out, args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, id int64, qty int64) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Get(1).(int64), args.Error(2)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.AuditLog)
	return out, args.Error(1)
}

// =====================
// Marketing
// =====================

type MockCarouselRepository struct{ mock.Mock }

func (m *MockCarouselRepository) List(ctx context.Context, status model.CarouselStatus) ([]model.Carousel, error) {
	args := m.Called(ctx, status)
	out, _ := args.Get(0).([]model.Carousel)
	return out, args.Error(1)
}

func (m *MockCarouselRepository) FindByID(ctx context.Context, id int64) (model.Carousel, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Carousel)
	return out, args.Error(1)
}

func (m *MockCarouselRepository) Create(ctx context.Context, c model.Carousel) (model.Carousel, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Carousel)
	return out, args.Error(1)
}

func (m *MockCarouselRepository) Update(ctx context.Context, c model.Carousel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarouselRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubscribeRepository struct{ mock.Mock }

func (m *MockSubscribeRepository) Create(ctx context.Context, s model.Subscribe) (model.Subscribe, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(model.Subscribe)
	return out, args.Error(1)
}

func (m *MockSubscribeRepository) List(ctx context.Context, limit int, offset int) ([]model.Subscribe, error) {
	args := m.Called(ctx, limit, offset)
	out, _ := args.Get(0).([]model.Subscribe)
	return out, args.Error(1)
}

// =====================
// TxManager / TxRepos
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	carts     repo.CartRepository
	addresses repo.AddressRepository
	auditLogs repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) Carts() repo.CartRepository         { return r.carts }
func (r *TxReposMock) Addresses() repo.AddressRepository  { return r.addresses }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

var (
	_ repo.AddressRepository    = (*MockAddressRepository)(nil)
	_ repo.CategoryRepository   = (*MockCategoryRepository)(nil)
	_ repo.ProductRepository    = (*MockProductRepository)(nil)
	_ repo.CartRepository       = (*MockCartRepository)(nil)
	_ repo.OrderRepository      = (*MockOrderRepository)(nil)
	_ repo.AuditLogRepository   = (*MockAuditRepository)(nil)
	_ repo.CarouselRepository   = (*MockCarouselRepository)(nil)
	_ repo.SubscribeRepository  = (*MockSubscribeRepository)(nil)
	_ repo.ResetTokenRepository = (*MockResetTokens)(nil)
	_ repo.TransactionManager   = (*TxManagerMock)(nil)
)
