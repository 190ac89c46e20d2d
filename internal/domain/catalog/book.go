package catalog

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Book is the aggregate root for a title sold in the store
type Book struct {
	shared.BaseAggregateRoot
	Title       string          `gorm:"type:varchar(300);not null;index"`
	Author      string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Genre       Genre           `gorm:"type:varchar(30);not null;index"`
	Condition   Condition       `gorm:"type:varchar(20);not null;default:'new'"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Cover       string          `gorm:"type:text;not null"` // storage key or URL of the cover image
	Rating      float64         `gorm:"not null;default:0"` // 0 to 5, averaged over reviews
	RatingCount int             `gorm:"not null;default:0"`
	Publisher   string          `gorm:"type:varchar(200)"`
	PublishDate *time.Time
	Pages       int    `gorm:"not null;default:0"`
	ISBN        string `gorm:"type:varchar(20);index"`
	Language    string `gorm:"type:varchar(40);default:'English'"`
	Featured    bool   `gorm:"not null;default:false"`
	InStock     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Book) TableName() string {
	return "books"
}

// NewBook creates a catalog entry. Title, author, description, genre, a
// positive price and a cover are all required; the storefront shows nothing
// without them.
func NewBook(title, author, description string, genre Genre, price valueobject.Money, cover string) (*Book, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if author == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author is required")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if !genre.IsValid() {
		return nil, shared.NewDomainError("INVALID_GENRE", "Unknown genre: "+genre.String())
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if cover == "" {
		return nil, shared.NewDomainError("INVALID_COVER", "Cover image is required")
	}

	book := &Book{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Author:            author,
		Description:       description,
		Genre:             genre,
		Condition:         ConditionNew,
		Price:             price.Amount(),
		Cover:             cover,
		Language:          "English",
		InStock:           true,
	}

	book.AddDomainEvent(NewBookAddedEvent(book))
	return book, nil
}

// SetDetails fills the optional bibliographic fields
func (b *Book) SetDetails(publisher string, publishDate *time.Time, pages int, isbn, language string) {
	b.Publisher = publisher
	b.PublishDate = publishDate
	b.Pages = pages
	b.ISBN = isbn
	if language != "" {
		b.Language = language
	}
	b.UpdatedAt = time.Now()
}

// SetCondition records the physical grade of a used copy
func (b *Book) SetCondition(condition Condition) error {
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Unknown condition: "+condition.String())
	}
	b.Condition = condition
	b.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the selling price
func (b *Book) UpdatePrice(price valueobject.Money) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	b.Price = price.Amount()
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// AddRating folds a new review score into the running average
func (b *Book) AddRating(score float64) error {
	if score < 0 || score > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	total := b.Rating*float64(b.RatingCount) + score
	b.RatingCount++
	b.Rating = total / float64(b.RatingCount)
	b.UpdatedAt = time.Now()
	return nil
}

// MarkFeatured puts the book on the storefront's featured shelf
func (b *Book) MarkFeatured(featured bool) {
	b.Featured = featured
	b.UpdatedAt = time.Now()
}

// MarkOutOfStock hides the book from purchase without deleting it
func (b *Book) MarkOutOfStock() {
	b.InStock = false
	b.UpdatedAt = time.Now()
}

// GetPriceMoney returns the price as a Money value object
func (b *Book) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(b.Price)
}
