package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"marketplace-storefront/internal/config"
	"marketplace-storefront/internal/db"
	"marketplace-storefront/internal/importer"
	"marketplace-storefront/internal/logging"
	productrepo "marketplace-storefront/internal/repository/product"
	productsvc "marketplace-storefront/internal/service/product"

	"go.uber.org/zap"
)

func main() {
	var (
		filePath string
		strict   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to the product listing CSV")
	flag.BoolVar(&strict, "strict", false, "Exit non-zero when any row is rejected")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.Named("importer")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productsvc.New(productrepo.NewPostgres(pool, logger)), logger)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	fmt.Printf("Imported %d products (%d rejected) in %s\n", res.Imported, len(res.Rejected), time.Since(start).Truncate(time.Millisecond))
	for _, r := range res.Rejected {
		fmt.Printf("  rejected %s\n", r.Error())
	}
	if strict && len(res.Rejected) > 0 {
		os.Exit(1)
	}
}
