package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"employee-directory/internal/app"
	"employee-directory/internal/config"
	"employee-directory/internal/directory"
	"employee-directory/internal/domain"
)

func main() {
	var (
		outPath = flag.String("out", "", "write the JSON list to this file instead of stdout")
		search  = flag.String("search", "", "only print employees whose username, email or phone contains this text")
		fields  = flag.String("fields", "", "comma separated columns to print, e.g. username,email (default all)")
	)
	flag.Parse()

	start := time.Now()

	err := run(*outPath, *search, splitFields(*fields))

	log.Printf("Execution finished in %s", time.Since(start))

	if err != nil {
		log.Fatalf("Job failed: %v", err)
	}
}

func run(outPath, search string, fields []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Directory.RequestTimeout)
	defer cancel()

	id := app.IdentityFromConfig(cfg)
	if id.Token == "" {
		return fmt.Errorf("missing env: DIRECTORY_TOKEN")
	}

	log.Printf("Fetching employees from %s...", cfg.Directory.BaseURL)
	employees, err := app.ClientFromConfig(cfg).ListEmployees(ctx, id.Token)
	if err != nil {
		return fmt.Errorf("fetch employees error: %w", err)
	}
	employees = directory.Filter(employees, search)
	log.Printf("Fetched %d employees", len(employees))

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeJSON(w, employees, fields)
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// writeJSON prints full records, or only the given columns when fields is
// not empty.
func writeJSON(w io.Writer, employees []domain.Employee, fields []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(fields) == 0 {
		return enc.Encode(employees)
	}

	rows := make([]map[string]string, 0, len(employees))
	for _, e := range employees {
		row, err := e.Pick(fields...)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return enc.Encode(rows)
}
