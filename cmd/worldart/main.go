package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/crawl"
	"github.com/fwojciec/worldart/etree"
	"github.com/fwojciec/worldart/fs"
	"github.com/fwojciec/worldart/goquery"
	wahttp "github.com/fwojciec/worldart/http"
	"github.com/fwojciec/worldart/refill"
	waslog "github.com/fwojciec/worldart/slog"
	"github.com/fwojciec/worldart/sqlite"
	wayaml "github.com/fwojciec/worldart/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Image directory used when --images is not given.
	ImagesDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir := dataDir()
	return &Main{
		DBPath:    filepath.Join(dir, "worldart.db"),
		ImagesDir: filepath.Join(dir, "images"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("worldart"),
		kong.Description("Extract catalog records from world-art.ru"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'worldart --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(dbPath)
	m.DB.Host = cli.Host
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WORLDART_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	imagesDir := cli.Images
	if imagesDir == "" {
		imagesDir = m.ImagesDir
	}

	if err := m.wire(cli, deps, imagesDir); err != nil {
		return err
	}
	defer deps.Fetcher.Close()

	return kongCtx.Run(deps)
}

// wire builds the service graph for the parsed flags.
//
// Pages flow through: HTTP, throttle, retry, page cache, logging.
func (m *Main) wire(cli *CLI, deps *Dependencies, imagesDir string) error {
	logger := newLogger(deps.Stderr, cli.Verbose)
	deps.Logger = logger
	deps.Records = sqlite.NewRecordService(m.DB)

	var fetcher worldart.Fetcher = wahttp.NewFetcher(
		wahttp.WithTimeout(cli.Timeout),
		wahttp.WithProxy(cli.Proxy...),
	)
	if cli.RPS > 0 {
		fetcher = crawl.NewThrottledFetcher(fetcher, cli.RPS)
	}
	retry := crawl.NewRetryFetcher(fetcher, retryDelays(cli.Retries))
	retry.Log = func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
	fetcher = retry
	if cli.Cache != "" {
		fetcher = fs.NewPageCache(cli.Cache, fetcher)
	}
	fetcher = waslog.NewLoggingFetcher(fetcher, logger)
	deps.Fetcher = fetcher

	store, err := fs.NewImageStore(imagesDir)
	if err != nil {
		return fmt.Errorf("failed to open image directory %q: %w", imagesDir, err)
	}
	images := waslog.NewLoggingDownloader(wahttp.NewDownloader(nil, store), logger)

	harvester := goquery.NewFrameHarvester(fetcher, images)
	harvester.Host = cli.Host
	frames := waslog.NewLoggingFrameHarvester(harvester, logger)

	filler := goquery.NewFiller(fetcher, wayaml.Default())
	filler.Host = cli.Host
	filler.Images = images
	filler.Frames = frames
	deps.Filler = waslog.NewLoggingFiller(filler, logger)

	searcher := goquery.NewSearcher(fetcher)
	searcher.Host = cli.Host
	deps.Searcher = waslog.NewLoggingSearcher(searcher, logger)

	refiller := refill.NewRefiller(deps.Filler, frames, deps.Searcher)
	refiller.Host = cli.Host
	deps.Refiller = refiller
	deps.Completer = refiller

	deps.Batch = &crawl.Batch{
		Filler:  deps.Filler,
		Records: deps.Records,
	}
	deps.Exporter = &etree.Encoder{Host: cli.Host}

	return nil
}

// newLogger logs warnings to w, or every fetch and fill when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// retryDelays returns n doubling delays starting at one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".worldart"
	}
	return filepath.Join(home, ".worldart")
}
