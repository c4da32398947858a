package catalog

import (
	"time"

	"github.com/bidora/storefront-server/pkg/types"
)

// SeedCategories is the storefront's demo category tree.
func SeedCategories() []types.Category {
	return []types.Category{
		{ID: "electronics", Name: "Electronics", Slug: "electronics"},
		{ID: "smartphones", Name: "Smartphones", Slug: "smartphones", Parent: "electronics"},
		{ID: "laptops", Name: "Laptops", Slug: "laptops", Parent: "electronics"},
		{ID: "tablets", Name: "Tablets", Slug: "tablets", Parent: "electronics"},
		{ID: "smartwatches", Name: "Smart Watches", Slug: "smartwatches", Parent: "electronics"},
		{ID: "audio", Name: "Audio & Headphones", Slug: "audio", Parent: "electronics"},
		{ID: "gaming", Name: "Gaming", Slug: "gaming"},
		{ID: "cameras", Name: "Cameras", Slug: "cameras", Parent: "electronics"},
		{ID: "accessories", Name: "Accessories", Slug: "accessories"},
	}
}

// SeedListings builds the demo catalog with auction windows anchored to the
// given instant, so every lifecycle phase is represented whenever the server
// starts.
func SeedListings(now time.Time) []types.Listing {
	return []types.Listing{
		{
			ID:            "1",
			Title:         "iPhone 14 - Unlocked - Purple - 128 GB",
			Description:   "Excellent condition iPhone 14 with minimal signs of use. All functions work perfectly.",
			CategoryID:    "smartphones",
			Condition:     types.ConditionLikeNew,
			Images:        []string{"https://images.unsplash.com/photo-1592286927505-1dad139508b7?w=400&h=400&fit=crop"},
			StartingPrice: 399.99,
			CurrentBid:    549.99,
			BidsCount:     12,
			ReservePrice:  500,
			BuyNowPrice:   649.99,
			StartDate:     now.Add(-12 * time.Hour),
			EndDate:       now.Add(2 * time.Hour),
			SellerID:      "seller-1",
			SellerName:    "TechHub Electronics",
			SellerRating:  4.8,
			Rating:        4.5,
			ReviewCount:   247,
			Specifications: map[string]string{
				"Storage": "128GB", "Color": "Purple", "Battery Health": "92%",
				"Screen Condition": "Perfect", "Warranty": "None",
			},
			IsActive:  true,
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:            "2",
			Title:         `MacBook Air M1 (13", 2020) - Space Gray`,
			Description:   "Barely used MacBook Air M1 with original box and charger. Like new condition.",
			CategoryID:    "laptops",
			Condition:     types.ConditionNew,
			Images:        []string{"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=400&fit=crop"},
			StartingPrice: 699.99,
			CurrentBid:    899.99,
			BidsCount:     8,
			ReservePrice:  850,
			BuyNowPrice:   999.99,
			StartDate:     now.Add(-24 * time.Hour),
			EndDate:       now.Add(5 * time.Hour),
			SellerID:      "seller-2",
			SellerName:    "Premium Refurbished",
			SellerRating:  4.9,
			Rating:        4.8,
			ReviewCount:   582,
			Specifications: map[string]string{
				"Processor": "Apple M1", "RAM": "8GB", "Storage": "256GB SSD",
				"Display": `13" Retina`, "Condition": "Like New",
			},
			IsActive:  true,
			CreatedAt: now.Add(-12 * time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
		{
			ID:            "3",
			Title:         "iPad 9 (2021, 3rd Series) - Silver",
			Description:   "Good condition iPad with minor scratches on back. Fully functional.",
			CategoryID:    "tablets",
			Condition:     types.ConditionGood,
			Images:        []string{"https://images.unsplash.com/photo-1544716278-ca5e3af4abd8?w=400&h=400&fit=crop"},
			StartingPrice: 199.99,
			CurrentBid:    249.99,
			BidsCount:     5,
			BuyNowPrice:   299.99,
			StartDate:     now.Add(2 * time.Hour),
			EndDate:       now.Add(18 * time.Hour),
			SellerID:      "seller-3",
			SellerName:    "CityTech Store",
			SellerRating:  4.6,
			Rating:        4.3,
			ReviewCount:   156,
			Specifications: map[string]string{
				"Storage": "64GB", "Color": "Silver", "Screen Size": `10.2"`,
				"Battery Health": "88%",
			},
			IsActive:  true,
			CreatedAt: now.Add(-8 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:            "4",
			Title:         "Nintendo Switch OLED - White",
			Description:   "Excellent condition Nintendo Switch OLED with all accessories and original packaging.",
			CategoryID:    "gaming",
			Condition:     types.ConditionExcellent,
			Images:        []string{"https://images.unsplash.com/photo-1578303512597-81e6cc155b3e?w=400&h=400&fit=crop"},
			StartingPrice: 279.99,
			CurrentBid:    379.99,
			BidsCount:     15,
			ReservePrice:  350,
			BuyNowPrice:   449.99,
			StartDate:     now.Add(-8 * time.Hour),
			EndDate:       now.Add(3 * time.Hour),
			SellerID:      "seller-4",
			SellerName:    "GameStop Seller",
			SellerRating:  4.7,
			Rating:        4.6,
			ReviewCount:   324,
			Specifications: map[string]string{
				"Model": "OLED", "Color": "White", "Storage": "64GB",
			},
			IsActive:  true,
			CreatedAt: now.Add(-6 * time.Hour),
			UpdatedAt: now.Add(-45 * time.Minute),
		},
		{
			ID:            "5",
			Title:         "Apple Watch Series 7 - 41mm Space Black",
			Description:   "Like new Apple Watch Series 7 with charger and extra bands included.",
			CategoryID:    "smartwatches",
			Condition:     types.ConditionLikeNew,
			Images:        []string{"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=400&h=400&fit=crop"},
			StartingPrice: 249.99,
			CurrentBid:    319.99,
			BidsCount:     9,
			BuyNowPrice:   379.99,
			StartDate:     now.Add(-48 * time.Hour),
			EndDate:       now.Add(7 * time.Hour),
			SellerID:      "seller-1",
			SellerName:    "TechHub Electronics",
			SellerRating:  4.8,
			Rating:        4.7,
			ReviewCount:   189,
			Specifications: map[string]string{
				"Size": "41mm", "Color": "Space Black", "Battery Health": "95%",
			},
			IsActive:  true,
			CreatedAt: now.Add(-18 * time.Hour),
			UpdatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID:            "6",
			Title:         "Sony WH-1000XM4 Headphones - Black",
			Description:   "Excellent condition noise cancelling headphones with case and cables.",
			CategoryID:    "audio",
			Condition:     types.ConditionExcellent,
			Images:        []string{"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop"},
			StartingPrice: 199.99,
			CurrentBid:    299.99,
			BidsCount:     7,
			ReservePrice:  280,
			BuyNowPrice:   349.99,
			StartDate:     now.Add(-6 * time.Hour),
			EndDate:       now.Add(4*time.Hour + 30*time.Minute),
			SellerID:      "seller-5",
			SellerName:    "Audio Experts",
			SellerRating:  4.9,
			Rating:        4.8,
			ReviewCount:   412,
			Specifications: map[string]string{
				"Type": "Over-ear", "Noise Cancelling": "Yes", "Battery Life": "30h",
			},
			IsActive:  true,
			CreatedAt: now.Add(-36 * time.Hour),
			UpdatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:            "7",
			Title:         "Canon EOS R6 - Body Only",
			Description:   "Lightly used full-frame mirrorless body, low shutter count, original box.",
			CategoryID:    "cameras",
			Condition:     types.ConditionExcellent,
			Images:        []string{"https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=400&h=400&fit=crop"},
			StartingPrice: 1299.99,
			BidsCount:     0,
			ReservePrice:  1500,
			BuyNowPrice:   1899.99,
			StartDate:     now.Add(6 * time.Hour),
			EndDate:       now.Add(54 * time.Hour),
			SellerID:      "seller-6",
			SellerName:    "Shutter House",
			SellerRating:  4.5,
			Rating:        4.4,
			ReviewCount:   98,
			Specifications: map[string]string{
				"Sensor": "Full frame", "Shutter Count": "8k", "Mount": "RF",
			},
			IsActive:  true,
			CreatedAt: now.Add(-4 * time.Hour),
			UpdatedAt: now.Add(-4 * time.Hour),
		},
		{
			ID:            "8",
			Title:         "Anker 737 Power Bank - 24,000mAh",
			Description:   "Fair condition power bank, works perfectly, cosmetic wear on casing.",
			CategoryID:    "accessories",
			Condition:     types.ConditionFair,
			Images:        []string{"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=400&h=400&fit=crop"},
			StartingPrice: 29.99,
			CurrentBid:    41.5,
			BidsCount:     3,
			StartDate:     now.Add(-72 * time.Hour),
			EndDate:       now.Add(-5 * time.Minute),
			SellerID:      "seller-3",
			SellerName:    "CityTech Store",
			SellerRating:  4.6,
			Rating:        4.1,
			ReviewCount:   64,
			Specifications: map[string]string{
				"Capacity": "24,000mAh", "Output": "140W",
			},
			IsActive:  true,
			CreatedAt: now.Add(-80 * time.Hour),
			UpdatedAt: now.Add(-10 * time.Hour),
		},
	}
}
