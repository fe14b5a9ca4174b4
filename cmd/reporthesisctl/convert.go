package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandreyanov/go-reporthesis/internal/config"
	"github.com/dandreyanov/go-reporthesis/internal/extract"
	"github.com/dandreyanov/go-reporthesis/internal/render"
	"github.com/dandreyanov/go-reporthesis/internal/report"
)

var (
	verboseFlag bool
	outputFlag  string
	configFlag  string
	titleFlag   string
	themeFlag   string
)

func init() {
	convertCmd.Flags().StringVarP(
		&outputFlag,
		"output",
		"o",
		"",
		"output path of the HTML report: -o <report-path>",
	)
	convertCmd.Flags().StringVarP(
		&configFlag,
		"config",
		"c",
		"",
		"path to a YAML config file: -c <config-path>",
	)
	convertCmd.Flags().StringVarP(
		&titleFlag,
		"title",
		"",
		"",
		"report title: --title \"Nightly API run\"",
	)
	convertCmd.Flags().StringVarP(
		&themeFlag,
		"theme",
		"",
		"",
		"initial report theme, dark or light: --theme light",
	)
	convertCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"verbose",
	)

	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:          "convert <junit-xml-file>",
	Long:         "Convert a JUnit XML report to a single self-contained HTML page",
	Short:        "convert JUnit XML to HTML",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("config.Load: %w", err)
		}

		if titleFlag != "" {
			cfg.Title = titleFlag
		}
		if themeFlag != "" {
			cfg.Theme = themeFlag
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config Validate: %w", err)
		}

		inputPth := args[0]

		outputPth := outputFlag
		if outputPth == "" {
			outputPth = strings.TrimSuffix(inputPth, filepath.Ext(inputPth)) + ".html"
		}

		opts := []extract.Option{extract.WithMessageWidth(cfg.MessageWidth)}
		if cfg.EndpointStrategy == config.StrategyTestName {
			opts = append(opts, extract.WithEndpointFunc(extract.TestNameEndpoint))
		}

		records, err := extract.New(opts...).ExtractFile(ctx, inputPth)
		if err != nil {
			return fmt.Errorf("extractor ExtractFile: %w", err)
		}

		if verboseFlag {
			_, _ = fmt.Fprintf(
				cmd.OutOrStdout(), "Extracted %d failed test cases from %s\n", len(records), inputPth,
			)
		}

		page, err := render.New(render.WithTheme(cfg.Theme)).Render(report.NewDocument(cfg.Title, records))
		if err != nil {
			return fmt.Errorf("renderer Render: %w", err)
		}

		if err := render.NewWriter(outputPth).Write(ctx, page); err != nil {
			return fmt.Errorf("render.NewWriter Write: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPth)

		return nil
	},
}
