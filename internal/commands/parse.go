package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
	"github.com/insightdelivered/statement-parser/internal/writer"
)

type parseOptions struct {
	bank       string
	year       int
	charMargin float64
	wordMargin float64
	format     string
	output     string
	noHeader   bool
}

func newParseCommand(a *app) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <input.pdf> [input2.pdf ...]",
		Short: "Print the debits and credits of one or more statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("bank") {
				a.cfg.Bank = opts.bank
			}
			if flags.Changed("year") {
				a.cfg.Year = opts.year
			}
			if flags.Changed("char-margin") {
				a.cfg.Layout.CharMargin = opts.charMargin
			}
			if flags.Changed("word-margin") {
				a.cfg.Layout.WordMargin = opts.wordMargin
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			switch opts.format {
			case "text", "csv", "json":
			default:
				return fmt.Errorf("unknown format %q: use text, csv or json", opts.format)
			}
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output takes a single input file, got %d", len(args))
			}

			for _, inputPath := range args {
				info, err := a.processFile(inputPath)
				if err != nil {
					return fmt.Errorf("processing %s: %w", inputPath, err)
				}
				if opts.output != "" {
					err = writeFile(opts.output, info, opts)
				} else {
					err = write(cmd.OutOrStdout(), info, opts)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.bank, "bank", "", "bank type: truist (auto-detected if omitted)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "year of the statement's last month (defaults to the current year)")
	cmd.Flags().Float64Var(&opts.charMargin, "char-margin", 0, "layout analysis: max glyph gap within a line, in glyph widths")
	cmd.Flags().Float64Var(&opts.wordMargin, "word-margin", 0, "layout analysis: min glyph gap that separates words")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit metadata rows from CSV output")

	return cmd
}

func (a *app) processFile(inputPath string) (*models.StatementInfo, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("input file not found: %w", err)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return nil, fmt.Errorf("expected .pdf file, got %q", ext)
	}

	stmtOpts := []parser.Option{
		parser.WithLogger(a.logger),
		parser.WithLayoutParams(a.cfg.Layout),
	}
	if bankType := a.cfg.BankType(); bankType != "" {
		variant, err := parser.New(bankType)
		if err != nil {
			return nil, err
		}
		stmtOpts = append(stmtOpts, parser.WithVariant(variant))
	}
	if a.cfg.Year != 0 {
		stmtOpts = append(stmtOpts, parser.WithAnchorYear(a.cfg.Year))
	}

	stmt, err := parser.Open(inputPath, stmtOpts...)
	if errors.Is(err, parser.ErrBankNotDetected) {
		return nil, fmt.Errorf("%w; pass --bank (one of %v)", err, parser.SupportedBanks())
	}
	if err != nil {
		return nil, err
	}

	info, err := stmt.Info()
	if err != nil {
		return nil, err
	}
	info.Source = inputPath

	a.logger.Info("statement parsed",
		zap.String("file", inputPath),
		zap.String("bank", string(info.Bank)),
		zap.Int("debits", len(info.Debits)),
		zap.Int("credits", len(info.Credits)),
	)
	if len(info.Debits)+len(info.Credits) == 0 {
		a.logger.Warn("no transactions found; the PDF layout may not match the bank format",
			zap.String("file", inputPath))
	}

	return info, nil
}

func write(out io.Writer, info *models.StatementInfo, opts parseOptions) error {
	switch opts.format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: !opts.noHeader}
		return w.Write(out, info)
	case "json":
		return writer.WriteJSON(out, info)
	default:
		return writer.WriteText(out, info)
	}
}

func writeFile(path string, info *models.StatementInfo, opts parseOptions) error {
	if opts.format == "csv" {
		w := &writer.CSVWriter{IncludeHeader: !opts.noHeader}
		return w.WriteToFile(path, info)
	}
	return writer.WriteFile(path, func(out io.Writer) error {
		return write(out, info, opts)
	})
}
