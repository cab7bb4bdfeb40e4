package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"
	"marketplace-storefront/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductSaver validates and stores one listing.
type ProductSaver interface {
	Save(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a seller listing export and upserts products by key.
type CSVImporter struct {
	reader *csv.Reader
	saver  ProductSaver
	logger *zap.Logger
}

func NewCSVImporter(r io.Reader, saver ProductSaver, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader: csvr,
		saver:  saver,
		logger: logging.OrNop(logger),
	}
}

// RowError is a row that was read but not stored.
type RowError struct {
	Line int
	Key  string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Key, e.Err)
}

// Result summarises a run.
type Result struct {
	Imported int
	Rejected []RowError
}

// Run imports every row. Rows failing validation, including prices under the
// category minimum, are collected in Result.Rejected; storage failures abort.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"key", "title", "price"} {
		if _, ok := index[required]; !ok {
			return res, fmt.Errorf("missing column %q", required)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		p, err := parseRow(record, index)
		if err == nil {
			_, err = i.saver.Save(ctx, p)
		}
		if err != nil {
			if !rejectable(err) {
				return res, fmt.Errorf("save product %q: %w", p.Key, err)
			}
			rowErr := RowError{Line: line, Key: p.Key, Err: err}
			i.logger.Warn("product row rejected", zap.Int("line", line), zap.String("key", p.Key), zap.Error(err))
			res.Rejected = append(res.Rejected, rowErr)
			continue
		}
		res.Imported++
	}
	i.logger.Info("product import finished", zap.Int("imported", res.Imported), zap.Int("rejected", len(res.Rejected)))
	return res, nil
}

func rejectable(err error) bool {
	var below *pricing.BelowMinimumError
	return errors.As(err, &below) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnsupportedCurrency)
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:            pick(record, index, "id"),
		Key:           pick(record, index, "key"),
		Title:         pick(record, index, "title"),
		Description:   pick(record, index, "description"),
		Currency:      pick(record, index, "currency"),
		Category:      strings.ToLower(pick(record, index, "category")),
		SellerID:      pick(record, index, "seller_id"),
		SellerCountry: pick(record, index, "seller_country"),
		Image:         pick(record, index, "image"),
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return p, fmt.Errorf("%w: price %q", domain.ErrInvalidInput, pick(record, index, "price"))
	}
	if price.IsNegative() {
		return p, fmt.Errorf("%w: negative price", domain.ErrInvalidInput)
	}
	p.Price = price.InexactFloat64()

	if raw := pick(record, index, "stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: stock %q", domain.ErrInvalidInput, raw)
		}
		p.StockQuantity = &stock
	}
	if raw := pick(record, index, "digital"); raw != "" {
		digital, err := strconv.ParseBool(raw)
		if err != nil {
			return p, fmt.Errorf("%w: digital %q", domain.ErrInvalidInput, raw)
		}
		p.IsDigital = digital
	}
	return p, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
