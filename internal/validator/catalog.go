package validator

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

const msgPrice = "Enter a price between 0 and 999999.99 with at most 2 decimal places."

// ---- カテゴリ ----

type Category struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
	IsActive    bool   `json:"is_active"`
	IsFeatured  bool   `json:"is_featured"`
}

type CategoryValidator struct {
	fields fieldSet
}

func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{fields: newFieldSet(
		FieldSpec{Name: "title", Label: "Title", Required: true, MaxLength: 50, Strip: true},
		FieldSpec{Name: "slug", Label: "Slug", Required: true, MaxLength: 55, Slug: true, Strip: true},
		FieldSpec{Name: "image_ref", Label: "Image", MaxLength: 255, Strip: true},
	)}
}

// 前後の空白を落とした値を返す
func (v *CategoryValidator) Validate(in Category) (Category, error) {
	errs := newValidationError()
	f := v.fields.clean(Input{"title": in.Title, "slug": in.Slug, "image_ref": in.ImageRef}, errs)
	if err := errs.orNil(); err != nil {
		return Category{}, err
	}
	in.Title, in.Slug, in.ImageRef = f["title"], f["slug"], f["image_ref"]
	return in, nil
}

// ---- 商品 ----

// Priceは省略とnullを区別せず必須扱い
type Product struct {
	Title             string              `json:"title"`
	Slug              string              `json:"slug"`
	SKU               string              `json:"sku"`
	ShortDescription  string              `json:"short_description"`
	DetailDescription string              `json:"detail_description"`
	ImageRef          string              `json:"image_ref"`
	Price             decimal.NullDecimal `json:"price"`
	CategoryID        int64               `json:"category_id"`
	IsActive          bool                `json:"is_active"`
	IsFeatured        bool                `json:"is_featured"`
}

type ProductValidator struct {
	fields fieldSet
}

func NewProductValidator() *ProductValidator {
	return &ProductValidator{fields: newFieldSet(
		FieldSpec{Name: "title", Label: "Title", Required: true, MaxLength: 150, Strip: true},
		FieldSpec{Name: "slug", Label: "Slug", Required: true, MaxLength: 160, Slug: true, Strip: true},
		FieldSpec{Name: "sku", Label: "SKU", Required: true, MaxLength: 255, Strip: true},
		FieldSpec{Name: "short_description", Label: "Short description", Required: true, Strip: true},
		FieldSpec{Name: "image_ref", Label: "Image", MaxLength: 255, Strip: true},
	)}
}

func (v *ProductValidator) Validate(in Product) (Product, error) {
	errs := newValidationError()
	f := v.fields.clean(Input{
		"title":             in.Title,
		"slug":              in.Slug,
		"sku":               in.SKU,
		"short_description": in.ShortDescription,
		"image_ref":         in.ImageRef,
	}, errs)

	switch {
	case !in.Price.Valid:
		errs.Add("price", msgRequired)
	case !model.ValidPrice(in.Price.Decimal):
		errs.Add("price", msgPrice)
	}
	if in.CategoryID <= 0 {
		errs.Add("category_id", msgRequired)
	}

	if err := errs.orNil(); err != nil {
		return Product{}, err
	}
	in.Title, in.Slug, in.SKU = f["title"], f["slug"], f["sku"]
	in.ShortDescription, in.ImageRef = f["short_description"], f["image_ref"]
	return in, nil
}

// ---- カルーセル ----

// Statusが空なら呼び出し側で現状維持
type Carousel struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status"`
}

type CarouselValidator struct {
	fields fieldSet
}

func NewCarouselValidator() *CarouselValidator {
	return &CarouselValidator{fields: newFieldSet(
		FieldSpec{Name: "title", Label: "Title", MaxLength: 200, Strip: true},
		FieldSpec{Name: "subtitle", Label: "Subtitle", MaxLength: 200, Strip: true},
		FieldSpec{Name: "cover_image", Label: "Cover image", MaxLength: 255, Strip: true},
		FieldSpec{Name: "status", Label: "Status", Strip: true, Choices: []string{
			string(model.CarouselStatusDraft),
			string(model.CarouselStatusPublished),
			string(model.CarouselStatusDeleted),
		}},
	)}
}

func (v *CarouselValidator) Validate(in Carousel) (Carousel, error) {
	errs := newValidationError()
	f := v.fields.clean(Input{
		"title":       in.Title,
		"subtitle":    in.Subtitle,
		"cover_image": in.CoverImage,
		"status":      in.Status,
	}, errs)
	if err := errs.orNil(); err != nil {
		return Carousel{}, err
	}
	return Carousel{Title: f["title"], Subtitle: f["subtitle"], CoverImage: f["cover_image"], Status: f["status"]}, nil
}
