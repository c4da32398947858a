package types

import (
	"time"
)

// Condition describes the physical state of the item being auctioned.
type Condition string

const (
	ConditionNew       Condition = "NEW"
	ConditionLikeNew   Condition = "LIKE_NEW"
	ConditionGood      Condition = "GOOD"
	ConditionFair      Condition = "FAIR"
	ConditionPoor      Condition = "POOR"
	ConditionExcellent Condition = "EXCELLENT"
)

// Valid reports whether c is one of the known condition values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor, ConditionExcellent:
		return true
	}
	return false
}

type Listing struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	CategoryID     string            `json:"categoryId"`
	Condition      Condition         `json:"condition"`
	Images         []string          `json:"images"`
	StartingPrice  float64           `json:"startingPrice"`
	CurrentBid     float64           `json:"currentBid,omitempty"`
	BidsCount      int               `json:"bidsCount,omitempty"`
	ReservePrice   float64           `json:"reservePrice,omitempty"`
	BuyNowPrice    float64           `json:"buyNowPrice,omitempty"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	SellerID       string            `json:"sellerId"`
	SellerName     string            `json:"sellerName"`
	SellerRating   float64           `json:"sellerRating"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	Specifications map[string]string `json:"specifications,omitempty"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Price labels shown next to the effective price.
const (
	PriceLabelCurrentBid    = "Current Bid"
	PriceLabelStartingPrice = "Starting Price"
)

// EffectivePrice resolves the price shown to users: the current bid when one
// exists, otherwise the starting price.
func (l Listing) EffectivePrice() (float64, string) {
	if l.CurrentBid > 0 {
		return l.CurrentBid, PriceLabelCurrentBid
	}
	return l.StartingPrice, PriceLabelStartingPrice
}

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Icon   string `json:"icon,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// CategoryTree is a category together with its direct subcategories, as
// returned by the slug lookup endpoint.
type CategoryTree struct {
	Category
	Subcategories []Category `json:"subcategories"`
}
