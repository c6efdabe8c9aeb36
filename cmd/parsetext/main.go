// Command parsetext parses a credit report text file offline and prints the result as JSON.
// Usage: go run ./cmd/parsetext [-bureau experian] [-xlsx out.xlsx] [-csv accounts.csv] [-v] report.txt
// Reads stdin when no file is given. Parser thresholds come from the CREDITSCAN_PARSER_* environment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"creditscan/internal/config"
	"creditscan/internal/creditparser"
	"creditscan/internal/export"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	bureau := flag.String("bureau", "", "bureau hint (experian, equifax, transunion)")
	xlsxPath := flag.String("xlsx", "", "also write an xlsx workbook to this path")
	csvPath := flag.String("csv", "", "also write the accounts CSV to this path")
	verbose := flag.Bool("v", false, "log parser diagnostics to stderr")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var zlog *zap.Logger
	if *verbose {
		zlog, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = zlog.Sync() }()
	}

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parser := creditparser.New(cfg.Parser.Options(), zlog)
	result, err := parser.Parse(string(text), *bureau)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if *xlsxPath != "" {
		data, err := export.Workbook(nil, result)
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		if err := os.WriteFile(*xlsxPath, data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		if err := export.WriteAccountsCSV(f, result.Accounts); err != nil {
			_ = f.Close()
			return fmt.Errorf("write csv: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close csv: %w", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
