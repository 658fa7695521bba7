package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/stattab/pkg/config"
	"github.com/arthur-debert/stattab/pkg/logging"
	"github.com/arthur-debert/stattab/pkg/stattab"
)

var (
	renderConfigPath string
	renderTitle      string
	renderColumns    []string
	renderFormat     string
	renderOutput     string
	renderAppend     bool
	renderInterval   time.Duration
	renderSummary    bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a YAML row stream as a live statistics table",
	Long: `render reads a stream of YAML documents, one row per document (or a
single document holding a list of rows), and feeds each row to a live
statistics table. With no file argument, rows are read from stdin.

Each row maps column keys to values. The reserved key "info" carries a
free-text line printed under the row. Example stream:

  epoch: 1
  loss: 0.93
  ---
  epoch: 2
  loss: 0.71
  info: checkpoint saved`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderConfigPath, "config", "c", "", "TOML config file")
	renderCmd.Flags().StringVarP(&renderTitle, "title", "t", "", "Table title (overrides config)")
	renderCmd.Flags().StringSliceVar(&renderColumns, "columns", nil, "Column keys in display order (default: derived from the first row)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output mode: auto, short, or append (overrides config)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Mirror the table to this file")
	renderCmd.Flags().BoolVar(&renderAppend, "append", false, "Append to the output file instead of overwriting")
	renderCmd.Flags().DurationVar(&renderInterval, "interval", 0, "Pause between rows when replaying a recorded stream")
	renderCmd.Flags().BoolVar(&renderSummary, "summary", false, "Print the full table after the stream ends")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("render")

	cfg, err := config.Load(renderConfigPath)
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg)

	input := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening row stream: %w", err)
		}
		defer f.Close()
		input = f
	}

	rows, err := decodeRows(input)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		logger.Warn().Msg("row stream is empty")
		return nil
	}

	headers := cfg.Headers()
	if len(renderColumns) > 0 {
		headers = stattab.Columns(renderColumns...)
	}
	if len(headers) == 0 {
		headers = deriveHeaders(rows[0])
		logger.Debug().Int("columns", len(headers)).Msg("derived headers from first row")
	}

	collectorCfg, err := cfg.CollectorConfig(os.Stdout)
	if err != nil {
		return err
	}
	collector, err := stattab.New(headers, cfg.Title, collectorCfg)
	if err != nil {
		return err
	}

	done := logging.LogOperationStart(logger, "render")
	defer done()
	for i, row := range rows {
		if i > 0 && renderInterval > 0 {
			time.Sleep(renderInterval)
		}
		if _, err := collector.Add(row); err != nil {
			logger.Warn().Err(err).Int("row", i).Msg("row rejected")
		}
	}

	if renderSummary {
		collector.ShowTable(collectorCfg.ShortFormat)
	}
	return nil
}

// applyRenderFlags layers explicit flags over the loaded configuration
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("title") {
		cfg.Title = renderTitle
	}
	if cmd.Flags().Changed("format") {
		cfg.Table.Format = renderFormat
	}
	if cmd.Flags().Changed("output") {
		cfg.File.Write = true
		cfg.File.Path = renderOutput
	}
	if renderAppend {
		cfg.File.Mode = string(stattab.FileAppend)
	}
}

// decodeRows reads the whole YAML stream up front. Documents may be
// single row mappings or lists of rows.
func decodeRows(r io.Reader) ([]stattab.Row, error) {
	var rows []stattab.Row
	dec := yaml.NewDecoder(r)
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return nil, fmt.Errorf("decoding row stream: %w", err)
		}
		switch v := doc.(type) {
		case map[string]any:
			rows = append(rows, stattab.Row(v))
		case []any:
			for _, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("row stream: list items must be mappings, got %T", item)
				}
				rows = append(rows, stattab.Row(m))
			}
		case nil:
			// empty document, skip
		default:
			return nil, fmt.Errorf("row stream: documents must be mappings or lists, got %T", doc)
		}
	}
}

// deriveHeaders builds a deterministic column order from a row's keys
func deriveHeaders(row stattab.Row) []stattab.Header {
	keys := make([]string, 0, len(row))
	for k := range row {
		if k == stattab.InfoKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return stattab.Columns(keys...)
}
