package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/app"
	"github.com/Davlis/Invoice-SVC/internal/aws"
	"github.com/Davlis/Invoice-SVC/internal/config"
	"github.com/Davlis/Invoice-SVC/internal/handlers"
	"github.com/Davlis/Invoice-SVC/internal/invoices"
	"github.com/Davlis/Invoice-SVC/internal/logger"
)

type rootOptions struct {
	configFile string
	configDir  string
	template   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Resolve and render invoices without running the HTTP service",
		Long: `invoicectl runs the invoice pipeline of the service from the command line.

A request file holds the same JSON body accepted by POST /. Use "-" to read it from
standard input. Configuration is loaded exactly as the service loads it.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file (defaults to configs/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Override invoice.config_dir")
	root.PersistentFlags().StringVar(&opts.template, "template", "", "Override invoice.template_path")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log at debug level to stderr")

	root.AddCommand(newResolveCmd(opts), newRenderCmd(opts))
	return root
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [request-file]",
		Short: "Print the merged invoice context for a request",
		Example: `  # Show what the template will receive
  invoicectl resolve request.json --config-dir ./config/invoices`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, req, err := prepare(cmd, opts, args[0])
			if err != nil {
				return err
			}
			invoiceCtx, err := hc.Resolver.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(invoiceCtx)
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render [request-file]",
		Short: "Write the PDF for a request",
		Example: `  # Render through a Chrome instance listening on 9222
  invoicectl render request.json --out invoice.pdf --config configs/config.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, req, err := prepare(cmd, opts, args[0])
			if err != nil {
				return err
			}
			invoiceCtx, err := hc.Resolver.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}
			pdf, err := hc.Pipeline.Generate(cmd.Context(), invoiceCtx)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			n, err := io.Copy(f, pdf)
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "invoice.pdf", "Output file")
	return cmd
}

// prepare loads configuration, builds the components and validates the request file.
func prepare(cmd *cobra.Command, opts *rootOptions, path string) (handlers.HandlerConfig, *invoices.Request, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return handlers.HandlerConfig{}, nil, err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	zl, err := logger.New(level, "console")
	if err != nil {
		return handlers.HandlerConfig{}, nil, err
	}

	hc, err := app.Build(cmd.Context(), cfg, zl, aws.NewAWSClients)
	if err != nil {
		return handlers.HandlerConfig{}, nil, err
	}

	body, err := readRequest(cmd, path)
	if err != nil {
		return handlers.HandlerConfig{}, nil, err
	}
	req, err := hc.Validator.Validate(body)
	if err != nil {
		return handlers.HandlerConfig{}, nil, err
	}

	zl.Debug("request validated", zap.String("tag", req.Tag()))
	return hc, req, nil
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFromFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.configDir != "" {
		cfg.Invoice.Store = config.StoreDir
		cfg.Invoice.ConfigDir = opts.configDir
	}
	if opts.template != "" {
		cfg.Invoice.TemplatePath = opts.template
	}
	return cfg, nil
}

func readRequest(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return body, nil
}
