package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/statement-scraper/internal/api"
	"github.com/insightdelivered/statement-scraper/internal/engine"
	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/logging"
	"github.com/insightdelivered/statement-scraper/internal/models"
	"github.com/insightdelivered/statement-scraper/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	bankFlag := flag.String("bank", "", "Bank profile: hdfc, unionbank (required unless --serve)")
	passwordFlag := flag.String("password", "", "PDF password, if the statement is protected")
	formatFlag := flag.String("format", "json", "Output format: json, csv, xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	headerFlag := flag.Bool("header", true, "Include metadata header rows in CSV output")
	calibrateFlag := flag.Bool("calibrate", false, "Commit fuzzy header calibration instead of logging it")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	portFlag := flag.String("port", "", "HTTP port for --serve (default 8002, or PORT env)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Scraper
by Insight Delivered

Reconstructs transaction tables from positioned text in bank statement
PDFs using per-bank coordinate layouts.

Usage:
  statement-scraper --bank=<profile> [flags] <input.pdf> [input2.pdf ...]
  statement-scraper --serve [--port=8002]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert an HDFC statement to JSON
  statement-scraper --bank=hdfc statement.pdf

  # Password-protected statement, XLSX output
  statement-scraper --bank=hdfc --password=SECRET --format=xlsx statement.pdf

  # Convert multiple Union Bank statements to CSV
  statement-scraper --bank=unionbank --format=csv jan.pdf feb.pdf

  # Run the HTTP API
  statement-scraper --serve --port=8002

Supported Banks:
  hdfc       - HDFC Bank (DD/MM/YY dates)
  unionbank  - Union Bank (DD/MM/YYYY dates)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-scraper v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		serve(*portFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *bankFlag == "" {
		fatalf("Missing --bank flag. Supported: %s\n", strings.Join(profileKeys(), ", "))
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *bankFlag, *passwordFlag, *formatFlag, *outputFlag, *headerFlag, *calibrateFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath, bank, password, format, outputPath string, includeHeader, calibrate bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s (%s)\n", inputPath, bank)

	eng, err := engine.New(models.ProfileID(bank), engine.WithCalibration(calibrate))
	if err != nil {
		return err
	}

	records, err := eng.Extract(inputPath, password)
	if err != nil {
		return err
	}

	fmt.Printf("  Found %d transaction(s)\n", len(records))
	if len(records) == 0 {
		fmt.Println("  Warning: no transactions matched. Check the bank profile and password.")
	}

	p := eng.Profile()
	st := &models.Statement{
		Bank:    p.FriendlyName,
		Profile: p.ID,
		Columns: p.OutputColumns(),
		Records: records,
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "json":
		w := &writer.JSONWriter{}
		if err := w.WriteToFile(outPath, st); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, st); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	case "xlsx":
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, st); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q (use json, csv or xlsx)", format)
	}

	fmt.Printf("  Output: %s\n", outPath)

	withdraw, deposit := writer.Totals(st)
	fmt.Printf("  Total withdrawals: %s\n", withdraw.StringFixed(2))
	fmt.Printf("  Total deposits:    %s\n", deposit.StringFixed(2))
	fmt.Println("  Done.")
	return nil
}

func serve(portFlag string) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logging.New()
	defer log.Sync()

	port := portFlag
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8002"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir != "" {
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			fatalf("failed to create upload dir %s: %v\n", uploadDir, err)
		}
	}

	if err := api.Serve(":"+port, uploadDir, log); err != nil {
		fatalf("server failed: %v\n", err)
	}
}

func profileKeys() []string {
	ids := layout.IDs()
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = string(id)
	}
	return keys
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
