package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/bidora/storefront-server/configs"
	"github.com/bidora/storefront-server/pkg/types"
	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgres opens a Postgres-backed catalog. The schema mirrors the
// storefront's ORM conventions: camelCase columns on public."Listings" and
// public."Categories".
func NewPostgres(cfg *configs.Config) (Service, error) {
	dbConfig := cfg.Database
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Name,
		dbConfig.SSLMode,
	)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog database: %w", err)
	}

	return &postgresStore{db: db}, nil
}

// NewPostgresFromDB wraps an existing connection, mainly for tests.
func NewPostgresFromDB(db *sql.DB) Service {
	return &postgresStore{db: db}
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *postgresStore) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["source"] = "postgres"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *postgresStore) Close() error {
	log.Info("Disconnected from catalog database")
	return s.db.Close()
}

const listingColumns = `
            "id",
            "title",
            "description",
            "categoryId",
            "condition",
            "startingPrice",
            "currentBid",
            "bidsCount",
            "reservePrice",
            "buyNowPrice",
            "startDate",
            "endDate",
            "sellerId",
            "sellerName",
            "sellerRating",
            "rating",
            "reviewCount",
            "isActive",
            "createdAt",
            "updatedAt"`

func scanListing(row interface{ Scan(...any) error }) (types.Listing, error) {
	var listing types.Listing
	var currentBid, reservePrice, buyNowPrice sql.NullFloat64
	var bidsCount sql.NullInt64

	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.CategoryID,
		&listing.Condition,
		&listing.StartingPrice,
		&currentBid,
		&bidsCount,
		&reservePrice,
		&buyNowPrice,
		&listing.StartDate,
		&listing.EndDate,
		&listing.SellerID,
		&listing.SellerName,
		&listing.SellerRating,
		&listing.Rating,
		&listing.ReviewCount,
		&listing.IsActive,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return types.Listing{}, err
	}

	listing.CurrentBid = currentBid.Float64
	listing.BidsCount = int(bidsCount.Int64)
	listing.ReservePrice = reservePrice.Float64
	listing.BuyNowPrice = buyNowPrice.Float64
	return listing, nil
}

func (s *postgresStore) Listings(ctx context.Context) ([]types.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM public."Listings" ORDER BY "id" ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error getting listings: %w", err)
	}
	defer rows.Close()

	var listings []types.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over listings: %w", err)
	}
	return listings, nil
}

func (s *postgresStore) ListingByID(ctx context.Context, id string) (types.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM public."Listings" WHERE "id" = $1`
	listing, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return types.Listing{}, errListingNotFound(id)
	}
	if err != nil {
		return types.Listing{}, fmt.Errorf("error getting listing by id: %w", err)
	}
	return listing, nil
}

func (s *postgresStore) Categories(ctx context.Context) ([]types.Category, error) {
	query := `SELECT "id", "name", "slug", COALESCE("icon", ''), COALESCE("parent", '') FROM public."Categories" ORDER BY "id" ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error getting categories: %w", err)
	}
	defer rows.Close()

	var categories []types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Parent); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over categories: %w", err)
	}
	return categories, nil
}

func (s *postgresStore) RootCategories(ctx context.Context) ([]types.Category, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	roots := make([]types.Category, 0, len(categories))
	for _, c := range categories {
		if c.Parent == "" {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func (s *postgresStore) CategoryBySlug(ctx context.Context, slug string) (types.CategoryTree, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return types.CategoryTree{}, err
	}
	for _, c := range categories {
		if c.Slug != slug {
			continue
		}
		tree := types.CategoryTree{Category: c}
		for _, child := range categories {
			if child.Parent == c.ID {
				tree.Subcategories = append(tree.Subcategories, child)
			}
		}
		return tree, nil
	}
	return types.CategoryTree{}, errCategoryNotFound(slug)
}
