package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/crawl"
	"github.com/fwojciec/worldart/etree"
)

// Completer fills the empty fields of a record from its catalog source.
type Completer interface {
	Complete(ctx context.Context, rec *worldart.Record) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   worldart.Fetcher
	Records   worldart.RecordService
	Filler    worldart.Filler
	Searcher  worldart.Searcher
	Refiller  worldart.Refiller
	Completer Completer
	Batch     *crawl.Batch
	Exporter  *etree.Encoder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"WORLDART_DB" help:"SQLite database path"`
	Host    string        `env:"WORLDART_HOST" default:"http://www.world-art.ru" help:"Catalog host"`
	Images  string        `env:"WORLDART_IMAGES" help:"Directory for cover and frame images"`
	Timeout time.Duration `default:"10s" help:"HTTP request timeout"`
	RPS     float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables throttling)"`
	Retries int           `default:"3" help:"Fetch retries after the first attempt"`
	Cache   string        `help:"Directory for cached pages (disabled when empty)"`
	Proxy   []string      `help:"Proxy URL, picked at random per request (repeatable)"`
	Verbose bool          `short:"v" help:"Log every fetch and fill"`

	Fill   FillCmd   `cmd:"" help:"Extract records from catalog pages and save them"`
	Search SearchCmd `cmd:"" help:"Search the catalog by name"`
	Add    AddCmd    `cmd:"" help:"Add a record and complete it from its catalog source"`
	Refill RefillCmd `cmd:"" help:"Refill one field of a stored record"`
	List   ListCmd   `cmd:"" help:"List stored records"`
	Show   ShowCmd   `cmd:"" help:"Show a stored record"`
	Export ExportCmd `cmd:"" help:"Export a stored record as NFO"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored record"`
}

// FillCmd is the "fill" subcommand.
type FillCmd struct {
	URLs        []string `arg:"" name:"url" help:"Catalog item URLs"`
	Frames      bool     `short:"f" help:"Also download the frame gallery"`
	DryRun      bool     `short:"n" name:"dry-run" help:"Print records without saving them"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fill limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Name   string `arg:"" help:"Item name"`
	Sector string `short:"s" default:"all" enum:"all,animation,cinema" help:"Catalog sector (all, animation, cinema)"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Source string `arg:"" help:"Catalog item URL"`
	Name   string `short:"N" help:"Primary name, kept over the extracted one"`
}

// RefillCmd is the "refill" subcommand.
type RefillCmd struct {
	ID     string `arg:"" help:"Record ID"`
	Field  string `arg:"" help:"Field to refill (names, genres, summary, images, ...)"`
	Search bool   `short:"s" help:"Search the catalog when the record has no catalog source"`
	Pick   int    `short:"p" default:"1" help:"Search result to use (1-based)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Name   string `help:"Filter by primary or alternate name"`
	Type   string `help:"Filter by type"`
	Limit  int    `short:"l" help:"Maximum number of records"`
	Offset int    `help:"Number of records to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Record ID"`
	Output string `short:"o" help:"Output file (stdout when empty)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Force bool   `short:"f" help:"Confirm deletion"`
}
