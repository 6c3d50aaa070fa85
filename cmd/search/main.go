package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/maltedev/compuzone-search/internal/app"
	"github.com/maltedev/compuzone-search/internal/config"
	"github.com/maltedev/compuzone-search/internal/logging"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "invalid options: %v\n", err)
		os.Exit(1)
	}

	if opts.keyword == "" {
		fmt.Fprintln(os.Stderr, "Please provide a keyword with --keyword")
		os.Exit(1)
	}

	cfg.Search.BrandStrategy = opts.strategy
	cfg.Search.Fetcher = opts.fetcher
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid options: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(opts.logLevel, "text")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize search", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if opts.brandsOnly {
		printBrands(os.Stdout, a.Service.DiscoverBrands(ctx, opts.keyword))
		return
	}

	resp := a.Service.SearchProducts(ctx, search.Request{
		Keyword:    opts.keyword,
		BrandCodes: opts.brands,
		Limit:      opts.limit,
	})

	printProducts(os.Stdout, resp.Products)

	if opts.outputFile != "" {
		if err := saveToCSV(resp.Products, opts.outputFile); err != nil {
			logger.Error("Failed to save CSV", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Results saved to %s\n", opts.outputFile)
	}
}

type options struct {
	keyword    string
	brands     []string
	limit      int
	brandsOnly bool
	strategy   string
	fetcher    string
	outputFile string
	logLevel   string
}

// parseFlags reads command-line options; defaults come from cfg.
func parseFlags(args []string, cfg *config.Config) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.StringVarP(&opts.keyword, "keyword", "k", "", "Search keyword")
	fs.StringArrayVarP(&opts.brands, "brand", "b", nil, "Brand name or manufacturer code (repeatable)")
	fs.IntVarP(&opts.limit, "limit", "n", cfg.Search.DefaultLimit, "Maximum number of products")
	fs.BoolVar(&opts.brandsOnly, "brands-only", false, "Only list the brands found for the keyword")
	fs.StringVar(&opts.strategy, "strategy", cfg.Search.BrandStrategy, "Brand strategy: mining, facet or keywords")
	fs.StringVar(&opts.fetcher, "fetcher", cfg.Search.Fetcher, "Fetcher: http or browser")
	fs.StringVarP(&opts.outputFile, "output", "o", "", "Output CSV file (optional)")
	fs.StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "Log level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func printBrands(w io.Writer, brands []models.BrandOption) {
	if len(brands) == 0 {
		fmt.Fprintln(w, "No brands found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tCODE")
	for _, b := range brands {
		fmt.Fprintf(tw, "%s\t%s\n", b.Name, b.Code)
	}
	tw.Flush()
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRICE\tNAME\tSPECIFICATIONS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Price, p.Name, p.Specifications)
	}
	tw.Flush()
}

func saveToCSV(products []models.Product, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeCSV(file, products)
}

func writeCSV(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Name", "Price", "Specifications", "Link"}); err != nil {
		return err
	}

	for _, p := range products {
		if err := writer.Write([]string{p.Name, p.Price, p.Specifications, p.Link}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
