package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"employee-directory/internal/app"
	"employee-directory/internal/config"
	"employee-directory/internal/export"
	"employee-directory/internal/logging"
)

func main() {
	var (
		format     = flag.String("format", "all", "pdf, xlsx, csv or all")
		outDir     = flag.String("dir", "", "output directory (default DIRECTORY_EXPORT_DIR)")
		uploadSFTP = flag.Bool("sftp", false, "also upload the files via SFTP")
		uploadS3   = flag.Bool("s3", false, "also upload the files to S3")
	)
	flag.Parse()

	start := time.Now()

	err := run(*format, *outDir, app.Destinations{SFTP: *uploadSFTP, S3: *uploadS3})

	log.Printf("Execution finished in %s", time.Since(start))

	if err != nil {
		log.Fatalf("Job failed: %v", err)
	}
}

// parseFormats maps the -format flag to the formats to write; nil means all
// permitted formats.
func parseFormats(s string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return nil, nil
	}
	var out []export.Format
	for _, part := range strings.Split(s, ",") {
		f, err := export.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func run(format, outDir string, dest app.Destinations) error {
	formats, err := parseFormats(format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Directory.ExportDir = outDir
	}

	logger, err := logging.New(os.Stderr, cfg.Directory.LogLevel)
	if err != nil {
		return err
	}

	// uploads get their own budget on top of the fetch
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Directory.RequestTimeout+5*time.Minute)
	defer cancel()

	dir, err := app.Open(ctx, cfg, dest, logger)
	if err != nil {
		return err
	}
	if err := dir.Load(ctx); err != nil {
		return err
	}

	if formats == nil {
		locs, err := dir.ExportAll(ctx)
		for _, line := range summary(locs) {
			log.Printf("wrote %s", line)
		}
		return err
	}

	for _, f := range formats {
		loc, err := dir.Export(ctx, f)
		if err != nil {
			return fmt.Errorf("export %s: %w", f, err)
		}
		log.Printf("wrote %s", loc)
	}
	return nil
}

func summary(locs map[export.Format]string) []string {
	out := make([]string, 0, len(locs))
	for f, loc := range locs {
		out = append(out, fmt.Sprintf("%s: %s", f, loc))
	}
	sort.Strings(out)
	return out
}
