// Package quote implements the offline quote command: it prices an event spec
// file, applies manual edits and prints a localized report or JSON.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/catering.space/internal/platform/cmd"
	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/louisbranch/catering.space/internal/services/quote/render"
	quoteservice "github.com/louisbranch/catering.space/internal/services/quote/service"
	"gopkg.in/yaml.v3"
)

// Config holds quote command configuration.
type Config struct {
	SpecPath    string
	AutoCorrect bool
	Edits       []pricing.Edit
	Locale      string `env:"CATERING_SPACE_QUOTE_LOCALE" envDefault:"en-US"`
	JSON        bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SpecPath, "spec", "", "event spec file (YAML or JSON); - reads stdin")
	fs.BoolVar(&cfg.AutoCorrect, "autocorrect", false, "switch to a serving format that supports the guest count")
	fs.Func("edit", "line override as index:field=value (repeatable)", func(raw string) error {
		edit, err := pricing.ParseEdit(raw)
		if err != nil {
			return err
		}
		cfg.Edits = append(cfg.Edits, edit)
		return nil
	})
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "report locale (en-US, he-IL)")
	fs.BoolVar(&cfg.JSON, "json", false, "print the quote as JSON")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.SpecPath) == "" {
		return Config{}, errors.New("-spec is required")
	}
	return cfg, nil
}

// LoadSpec decodes an event spec. JSON input is accepted as YAML.
func LoadSpec(r io.Reader) (pricing.EventSpec, error) {
	var spec pricing.EventSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return pricing.EventSpec{}, errors.New("event spec is empty")
		}
		return pricing.EventSpec{}, fmt.Errorf("decode event spec: %w", err)
	}
	return spec, nil
}

// Run prices the configured spec and writes the report to stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceQuote, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	})
}

type jsonRejectedEdit struct {
	Edit    string `json:"edit"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonOutput struct {
	Spec     pricing.EventSpec    `json:"spec"`
	Quote    pricing.Quote        `json:"quote"`
	Staffing pricing.Staffing     `json:"staffing"`
	Changes  []pricing.LineChange `json:"changes,omitempty"`
	Rejected []jsonRejectedEdit   `json:"rejected,omitempty"`
}

func run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) error {
	spec, err := readSpec(cfg.SpecPath, stdin)
	if err != nil {
		return err
	}

	engine, err := pricing.New(pricing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("load pricing config: %w", err)
	}
	quotes := quoteservice.New(engine, nil)

	calc, err := quotes.Calculate(ctx, quoteservice.CalculateRequest{Spec: spec, AutoCorrectFormat: cfg.AutoCorrect})
	if err != nil {
		return errors.New(apperrors.UserMessage(err, cfg.Locale))
	}
	out := jsonOutput{Spec: calc.Spec, Quote: calc.Quote, Staffing: calc.Staffing}

	if len(cfg.Edits) > 0 {
		edited, err := quotes.ApplyEdits(ctx, quoteservice.EditRequest{
			GuestCount: calc.Quote.GuestCount,
			LineItems:  calc.Quote.LineItems,
			Edits:      cfg.Edits,
		})
		if err != nil {
			return errors.New(apperrors.UserMessage(err, cfg.Locale))
		}
		out.Quote = edited.Quote
		out.Staffing = edited.Staffing
		out.Changes = edited.Changes
		for _, rejected := range edited.Rejected {
			out.Rejected = append(out.Rejected, jsonRejectedEdit{
				Edit:    rejected.Edit.String(),
				Code:    string(apperrors.GetCode(rejected.Err)),
				Message: apperrors.UserMessage(rejected.Err, cfg.Locale),
			})
		}
	}

	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, rejected := range out.Rejected {
		fmt.Fprintf(stderr, "edit %s skipped: %s\n", rejected.Edit, rejected.Message)
	}
	return render.New(nil).Text(stdout, out.Quote, render.Options{
		Locale:   cfg.Locale,
		Changes:  out.Changes,
		Staffing: true,
	})
}

func readSpec(path string, stdin io.Reader) (pricing.EventSpec, error) {
	if path == "-" {
		return LoadSpec(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return pricing.EventSpec{}, fmt.Errorf("open event spec: %w", err)
	}
	defer f.Close()
	return LoadSpec(f)
}
