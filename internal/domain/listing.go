package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing type tags shared by search result variants and booking references.
const (
	ListingTypeHomestay = "homestay"
	ListingTypeGuide    = "guide"
	ListingTypeProduct  = "product"
)

// HomestayStatus represents homestay listing status.
type HomestayStatus string

const (
	HomestayStatusActive   HomestayStatus = "active"
	HomestayStatusInactive HomestayStatus = "inactive"
	HomestayStatusPending  HomestayStatus = "pending"
)

// Homestay is a homestay listing document.
type Homestay struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HostID        string             `bson:"host_id" json:"host_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description,omitempty"`
	District      string             `bson:"district" json:"district"`
	Address       string             `bson:"address" json:"address,omitempty"`
	PricePerNight float64            `bson:"price_per_night" json:"price_per_night"`
	Images        []string           `bson:"images" json:"images,omitempty"`
	Amenities     []string           `bson:"amenities" json:"amenities,omitempty"`
	MaxGuests     int                `bson:"max_guests" json:"max_guests"`
	Rating        float64            `bson:"rating" json:"rating"`
	Status        HomestayStatus     `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Guide is a tour guide listing document.
type Guide struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Name            string             `bson:"name" json:"name"`
	Bio             string             `bson:"bio" json:"bio,omitempty"`
	Specializations []string           `bson:"specializations" json:"specializations,omitempty"`
	District        string             `bson:"district" json:"district"`
	Languages       []string           `bson:"languages" json:"languages,omitempty"`
	PricePerDay     float64            `bson:"price_per_day" json:"price_per_day"`
	Images          []string           `bson:"images" json:"images,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Product is a local product listing document.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerID    string             `bson:"seller_id" json:"seller_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Images      []string           `bson:"images" json:"images,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// firstImage returns the representative image for a result projection.
func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// HomestayResult is the homestay projection returned by unified search.
type HomestayResult struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	District      string  `json:"district"`
	PricePerNight float64 `json:"price_per_night"`
	Rating        float64 `json:"rating"`
	Image         string  `json:"image,omitempty"`
}

// GuideResult is the guide projection returned by unified search.
type GuideResult struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Bio         string  `json:"bio,omitempty"`
	District    string  `json:"district"`
	PricePerDay float64 `json:"price_per_day"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image,omitempty"`
}

// ProductResult is the product projection returned by unified search.
type ProductResult struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// ToResult converts a Homestay to its search projection.
func (h *Homestay) ToResult() HomestayResult {
	return HomestayResult{
		ID:            h.ID.Hex(),
		Type:          ListingTypeHomestay,
		Title:         h.Title,
		Description:   h.Description,
		District:      h.District,
		PricePerNight: h.PricePerNight,
		Rating:        h.Rating,
		Image:         firstImage(h.Images),
	}
}

// ToResult converts a Guide to its search projection.
func (g *Guide) ToResult() GuideResult {
	return GuideResult{
		ID:          g.ID.Hex(),
		Type:        ListingTypeGuide,
		Name:        g.Name,
		Bio:         g.Bio,
		District:    g.District,
		PricePerDay: g.PricePerDay,
		Rating:      g.Rating,
		Image:       firstImage(g.Images),
	}
}

// ToResult converts a Product to its search projection.
func (p *Product) ToResult() ProductResult {
	return ProductResult{
		ID:          p.ID.Hex(),
		Type:        ListingTypeProduct,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Image:       firstImage(p.Images),
	}
}
