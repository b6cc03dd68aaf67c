package model

import "time"

type CarouselStatus string

const (
	CarouselStatusDraft     CarouselStatus = "draft"
	CarouselStatusPublished CarouselStatus = "published"
	CarouselStatusDeleted   CarouselStatus = "deleted"
)

func ParseCarouselStatus(s string) (CarouselStatus, bool) {
	switch CarouselStatus(s) {
	case CarouselStatusDraft, CarouselStatusPublished, CarouselStatusDeleted:
		return CarouselStatus(s), true
	}
	return "", false
}

// トップページのバナー
type Carousel struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string         `gorm:"type:varchar(200)" json:"title"`
	Subtitle   string         `gorm:"type:varchar(200)" json:"subtitle"`
	CoverImage string         `gorm:"type:varchar(255)" json:"cover_image"`
	Status     CarouselStatus `gorm:"type:varchar(10);not null;default:'draft';index" json:"status"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// メールマガジン購読
type Subscribe struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(254);not null" json:"email"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
