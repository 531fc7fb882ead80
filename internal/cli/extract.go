package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/docpeak/outline"
	"github.com/docpeak/outline/internal/config"
	"github.com/docpeak/outline/model"
)

var (
	extractOutput     string
	extractFormat     string
	extractWorkers    int
	extractMaxPages   int
	extractTitlePages int
)

var extractCmd = &cobra.Command{
	Use:   "extract [path...]",
	Short: "Extract outlines from documents",
	Long: `Extract outlines from one or more PDF files, span-dump JSON files, or
directories. Directories are scanned for supported files. With --output the
results are written one file per input; otherwise results are printed to
standard output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Directory to write one result file per input")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "Output format: json, markdown or text")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Parallel workers (default from config)")
	extractCmd.Flags().IntVar(&extractMaxPages, "max-pages", 0, "Max pages analyzed per document (default from config)")
	extractCmd.Flags().IntVar(&extractTitlePages, "title-pages", 0, "Pages searched for the title (default from config)")
	rootCmd.AddCommand(extractCmd)
}

// extractResult holds one file's outcome for ordered reporting.
type extractResult struct {
	path     string
	rendered string
	warnings []outline.Warning
	duration time.Duration
	err      error
}

func runExtract(cmd *cobra.Command, args []string) error {
	switch extractFormat {
	case "json", "markdown", "text":
	default:
		return fmt.Errorf("unsupported format %q (use json, markdown or text)", extractFormat)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	maxPages := cfg.MaxPages
	if extractMaxPages > 0 {
		maxPages = extractMaxPages
	}
	titlePages := cfg.TitlePages
	if extractTitlePages > 0 {
		titlePages = extractTitlePages
	}
	workers := cfg.Workers
	if extractWorkers > 0 {
		workers = extractWorkers
	}

	inputs, err := resolveInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no supported files found")
	}

	if extractOutput != "" {
		if err := os.MkdirAll(extractOutput, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	log := newLogger(cfg.LogLevel)

	start := time.Now()
	results := make([]extractResult, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = extractOne(inputs[i], maxPages, titlePages, log)
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			cmd.PrintErrf("%s: %v\n", res.path, res.err)
			continue
		}
		for _, warning := range res.warnings {
			cmd.PrintErrf("%s: %s\n", res.path, warning)
		}
		if extractOutput != "" {
			dest := outputPath(extractOutput, res.path)
			if err := os.WriteFile(dest, []byte(res.rendered), 0o644); err != nil {
				failed++
				cmd.PrintErrf("%s: write %s: %v\n", res.path, dest, err)
				continue
			}
			cmd.Printf("%s -> %s (%s)\n", res.path, dest, res.duration.Round(time.Millisecond))
		} else {
			cmd.Println(res.rendered)
		}
	}

	cmd.Printf("Processed %d files (%d failed) in %s\n",
		len(inputs), failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

func extractOne(path string, maxPages, titlePages int, log *slog.Logger) extractResult {
	start := time.Now()

	o, warnings, err := outline.Open(path).
		MaxPages(maxPages).
		TitlePages(titlePages).
		WithLogger(log).
		Extract()
	if err != nil {
		return extractResult{path: path, err: err, duration: time.Since(start)}
	}

	rendered, err := renderOutline(o, extractFormat)
	return extractResult{
		path:     path,
		rendered: rendered,
		warnings: warnings,
		duration: time.Since(start),
		err:      err,
	}
}

// renderOutline formats an outline for output.
func renderOutline(o model.Outline, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "markdown":
		return o.MarkdownTOC(), nil
	case "text":
		var b strings.Builder
		if o.Title != "" {
			fmt.Fprintf(&b, "%s\n\n", o.Title)
		}
		b.WriteString(o.TableOfContents())
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// resolveInputs expands files and directories into the list of documents to
// process. Directories are scanned one level deep for supported extensions.
func resolveInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".pdf", ".json":
				inputs = append(inputs, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return inputs, nil
}

// outputPath maps an input file to its result file in the output directory.
func outputPath(dir, input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := ".json"
	switch extractFormat {
	case "markdown":
		ext = ".md"
	case "text":
		ext = ".txt"
	}
	return filepath.Join(dir, stem+ext)
}
