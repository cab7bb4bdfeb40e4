package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

const productColumns = `id::text, key, title, COALESCE(description, ''), price::float8, currency, stock_quantity,
COALESCE(category, ''), seller_id, COALESCE(seller_country, ''), COALESCE(image, ''), is_digital, created_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Key, &p.Title, &p.Description, &p.Price, &p.Currency, &p.StockQuantity,
		&p.Category, &p.SellerID, &p.SellerCountry, &p.Image, &p.IsDigital, &p.CreatedAt)
	return p, err
}

// List filters by title/description text and category in SQL; the price band
// is applied after converting each price to base currency.
func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []interface{}
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(filter.Filters.Categories) > 0 {
		cats := make([]string, 0, len(filter.Filters.Categories))
		for _, c := range filter.Filters.Categories {
			cats = append(cats, strings.ToLower(strings.TrimSpace(c)))
		}
		args = append(args, cats)
		where = append(where, fmt.Sprintf("lower(category) = ANY($%d)", len(args)))
	}
	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if !inPriceBand(p, filter.Filters) {
			continue
		}
		result = append(result, p)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.String("query", filter.Query), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1 OR key = $1 LIMIT 1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, key, title, description, price, currency, stock_quantity, category, seller_id, seller_country, image, is_digital)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, NULLIF($10, ''), NULLIF($11, ''), $12)
ON CONFLICT (key) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    stock_quantity = EXCLUDED.stock_quantity,
    category = EXCLUDED.category,
    seller_id = EXCLUDED.seller_id,
    seller_country = EXCLUDED.seller_country,
    image = EXCLUDED.image,
    is_digital = EXCLUDED.is_digital
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Key,
		product.Title,
		product.Description,
		product.Price,
		product.Currency,
		product.StockQuantity,
		product.Category,
		product.SellerID,
		product.SellerCountry,
		product.Image,
		product.IsDigital,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("key", product.Key), zap.Error(err))
		return nil, err
	}
	if product.ID != "" && res.ID != product.ID {
		return nil, fmt.Errorf("product repo: id mismatch for key=%s existing_id=%s import_id=%s", product.Key, res.ID, product.ID)
	}
	r.logger.Debug("product repo: upserted", zap.String("key", res.Key), zap.String("id", res.ID))
	return &res, nil
}

func inPriceBand(p domain.Product, f domain.SearchFilters) bool {
	if f.MinPrice == nil && f.MaxPrice == nil {
		return true
	}
	code, _ := currency.Normalize(p.Currency)
	base := currency.ToBase(p.Price, code)
	if f.MinPrice != nil && base < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && base > *f.MaxPrice {
		return false
	}
	return true
}
