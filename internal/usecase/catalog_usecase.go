package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
)

type CategoryDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageRef    string    `json:"image_ref"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductDTO struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	SKU               string          `json:"sku"`
	ShortDescription  string          `json:"short_description"`
	DetailDescription string          `json:"detail_description"`
	ImageRef          string          `json:"image_ref"`
	ImageURL          string          `json:"image_url"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        int64           `json:"category_id"`
	IsActive          bool            `json:"is_active"`
	IsFeatured        bool            `json:"is_featured"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ProductListOutput struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// GET /productsの入力
type ListProductsInput struct {
	Page     int
	Limit    int
	Category string // カテゴリのslug
	Featured bool
}

type (
	CategoryInput = validator.Category
	ProductInput  = validator.Product
)

type CatalogUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
	auditRepo  repo.AuditLogRepository
	media      MediaResolver

	categoryForm *validator.CategoryValidator
	productForm  *validator.ProductValidator
}

// DI
func NewCatalogUsecase(
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	media MediaResolver,
) *CatalogUsecase {
	return &CatalogUsecase{
		categories: categories,
		products:   products,
		auditRepo:  auditRepo,
		media:      media,

		categoryForm: validator.NewCategoryValidator(),
		productForm:  validator.NewProductValidator(),
	}
}

// ---- 公開 ----

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	return u.listCategories(ctx, true)
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, slug string) (CategoryDTO, error) {
	c, err := u.categories.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return CategoryDTO{}, dbError(err)
	}
	if !c.IsActive {
		return CategoryDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return u.toCategoryDTO(ctx, c)
}

func (u *CatalogUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if err := pageParams(in.Page, in.Limit); err != nil {
		return ProductListOutput{}, err
	}

	slug := strings.TrimSpace(in.Category)
	if slug != "" {
		//非公開カテゴリは存在しない扱い
		c, err := u.categories.FindBySlug(ctx, slug)
		if err != nil {
			return ProductListOutput{}, dbError(err)
		}
		if !c.IsActive {
			return ProductListOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
	}

	return u.listProducts(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		CategorySlug: slug,
		FeaturedOnly: in.Featured,
	})
}

func (u *CatalogUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	if !p.IsActive {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return u.toProductDTO(ctx, p)
}

// ---- 管理者 ----

func (u *CatalogUsecase) AdminListCategories(ctx context.Context) ([]CategoryDTO, error) {
	return u.listCategories(ctx, false)
}

func (u *CatalogUsecase) AdminCreateCategory(ctx context.Context, in CategoryInput) (CategoryDTO, error) {
	in, err := u.categoryForm.Validate(in)
	if err != nil {
		return CategoryDTO{}, validationFailed(err)
	}

	c, err := u.categories.Create(ctx, model.Category{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		ImageRef:    in.ImageRef,
		IsActive:    in.IsActive,
		IsFeatured:  in.IsFeatured,
	})
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return CategoryDTO{}, fieldConflict("slug", "Category with this Slug already exists.")
	}
	if err != nil {
		return CategoryDTO{}, dbError(err)
	}
	return u.toCategoryDTO(ctx, c)
}

func (u *CatalogUsecase) AdminUpdateCategory(ctx context.Context, categoryID int64, in CategoryInput) (CategoryDTO, error) {
	if categoryID <= 0 {
		return CategoryDTO{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	in, err := u.categoryForm.Validate(in)
	if err != nil {
		return CategoryDTO{}, validationFailed(err)
	}

	c, err := u.categories.FindByID(ctx, categoryID)
	if err != nil {
		return CategoryDTO{}, dbError(err)
	}
	c.Title, c.Slug, c.Description, c.ImageRef = in.Title, in.Slug, in.Description, in.ImageRef
	c.IsActive, c.IsFeatured = in.IsActive, in.IsFeatured

	err = u.categories.Update(ctx, c)
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return CategoryDTO{}, fieldConflict("slug", "Category with this Slug already exists.")
	}
	if err != nil {
		return CategoryDTO{}, dbError(err)
	}
	return u.toCategoryDTO(ctx, c)
}

// カテゴリを消すと配下の商品もCASCADEで消える
func (u *CatalogUsecase) AdminDeleteCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err := u.categories.Delete(ctx, categoryID); err != nil {
		return dbError(err)
	}
	return nil
}

// 非公開も含めて返す
func (u *CatalogUsecase) AdminListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if err := pageParams(in.Page, in.Limit); err != nil {
		return ProductListOutput{}, err
	}
	return u.listProducts(ctx, repo.ProductListQuery{
		Page:            in.Page,
		Limit:           in.Limit,
		CategorySlug:    strings.TrimSpace(in.Category),
		FeaturedOnly:    in.Featured,
		IncludeInactive: true,
	})
}

func (u *CatalogUsecase) AdminGetProduct(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	return u.toProductDTO(ctx, p)
}

func (u *CatalogUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in ProductInput) (ProductDTO, error) {
	if adminUserID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	in, err := u.productForm.Validate(in)
	if err != nil {
		return ProductDTO{}, validationFailed(err)
	}
	if err := u.requireCategory(ctx, in.CategoryID); err != nil {
		return ProductDTO{}, err
	}

	exists, err := u.products.ExistsBySKU(ctx, in.SKU)
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	if exists {
		return ProductDTO{}, skuConflict()
	}

	p, err := u.products.Create(ctx, applyProduct(in, model.Product{}))
	//チェック後に同じSKUが入った場合も409
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return ProductDTO{}, skuConflict()
	}
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	return u.toProductDTO(ctx, p)
}

func (u *CatalogUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in ProductInput) (ProductDTO, error) {
	if adminUserID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	in, err := u.productForm.Validate(in)
	if err != nil {
		return ProductDTO{}, validationFailed(err)
	}

	current, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	if err := u.requireCategory(ctx, in.CategoryID); err != nil {
		return ProductDTO{}, err
	}
	if in.SKU != current.SKU {
		exists, err := u.products.ExistsBySKU(ctx, in.SKU)
		if err != nil {
			return ProductDTO{}, dbError(err)
		}
		if exists {
			return ProductDTO{}, skuConflict()
		}
	}

	p := applyProduct(in, current)
	err = u.products.Update(ctx, p)
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return ProductDTO{}, skuConflict()
	}
	if err != nil {
		return ProductDTO{}, dbError(err)
	}
	return u.toProductDTO(ctx, p)
}

// 削除は監査ログに残す
func (u *CatalogUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		return dbError(err)
	}
	if err := u.products.Delete(ctx, productID); err != nil {
		return dbError(err)
	}

	before, _ := json.Marshal(map[string]any{"sku": p.SKU, "title": p.Title, "price": p.Price})
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionDeleteProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(before),
		AfterJSON:    "{}",
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) requireCategory(ctx context.Context, categoryID int64) error {
	if _, err := u.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return dbError(err)
	}
	return nil
}

func (u *CatalogUsecase) listCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	list, err := u.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]CategoryDTO, 0, len(list))
	for _, c := range list {
		dto, err := u.toCategoryDTO(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (u *CatalogUsecase) listProducts(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, dbError(err)
	}

	out := make([]ProductDTO, 0, len(items))
	for _, p := range items {
		dto, err := u.toProductDTO(ctx, p)
		if err != nil {
			return ProductListOutput{}, err
		}
		out = append(out, dto)
	}
	return ProductListOutput{Items: out, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *CatalogUsecase) imageURL(ctx context.Context, ref string) (string, error) {
	if u.media == nil || ref == "" {
		return "", nil
	}
	url, err := u.media.ResolveURL(ctx, ref)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "media error")
	}
	return url, nil
}

func (u *CatalogUsecase) toCategoryDTO(ctx context.Context, c model.Category) (CategoryDTO, error) {
	url, err := u.imageURL(ctx, c.ImageRef)
	if err != nil {
		return CategoryDTO{}, err
	}
	return CategoryDTO{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		ImageRef:    c.ImageRef,
		ImageURL:    url,
		IsActive:    c.IsActive,
		IsFeatured:  c.IsFeatured,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func (u *CatalogUsecase) toProductDTO(ctx context.Context, p model.Product) (ProductDTO, error) {
	url, err := u.imageURL(ctx, p.ImageRef)
	if err != nil {
		return ProductDTO{}, err
	}
	return ProductDTO{
		ID:                p.ID,
		Title:             p.Title,
		Slug:              p.Slug,
		SKU:               p.SKU,
		ShortDescription:  p.ShortDescription,
		DetailDescription: p.DetailDescription,
		ImageRef:          p.ImageRef,
		ImageURL:          url,
		Price:             p.Price,
		CategoryID:        p.CategoryID,
		IsActive:          p.IsActive,
		IsFeatured:        p.IsFeatured,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

func skuConflict() error {
	return fieldConflict("sku", "Product with this SKU already exists.")
}

// 入力値をモデルに写す（ID・作成日時は残す）
func applyProduct(in ProductInput, p model.Product) model.Product {
	p.Title = in.Title
	p.Slug = in.Slug
	p.SKU = in.SKU
	p.ShortDescription = in.ShortDescription
	p.DetailDescription = in.DetailDescription
	p.ImageRef = in.ImageRef
	p.Price = in.Price.Decimal
	p.CategoryID = in.CategoryID
	p.IsActive = in.IsActive
	p.IsFeatured = in.IsFeatured
	return p
}
