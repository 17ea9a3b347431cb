package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kochabx/square/config"
	"github.com/kochabx/square/log"
	"github.com/kochabx/square/log/desensitize"
	"github.com/kochabx/square/log/writer"
	"github.com/kochabx/square/metrics"
	"github.com/kochabx/square/square"
)

type app struct {
	configPath  string
	logLevel    string
	logDir      string
	showMetrics bool

	cfg     *config.File
	logger  *log.Logger
	metrics *metrics.Prometheus
	client  *square.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "squarectl",
		Short:        "Query a Square account from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default ./square.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides log.level")
	flags.StringVar(&a.logDir, "log-file", "", "write logs to this directory, overrides log.dir")
	flags.BoolVar(&a.showMetrics, "metrics", false, "print request metrics after the command")

	root.AddCommand(
		a.configCmd(),
		a.call("locations", "List v2 locations", (*square.Client).ListLocations),
		a.call("locations-v1", "List v1 locations", (*square.Client).ListLocationsV1),
		a.call("business", "Show the merchant behind the v1 token", (*square.Client).GetBusiness),
		a.call("items", "List items", (*square.Client).ListItems),
		a.callID("item", "Show one item", (*square.Client).GetItem),
		a.call("categories", "List item categories", (*square.Client).ListCategories),
		a.call("discounts", "List discounts", (*square.Client).ListDiscounts),
		a.call("fees", "List fees", (*square.Client).ListFees),
		a.call("modifiers", "List modifier lists", (*square.Client).ListModifiers),
		a.callID("modifier", "Show one modifier list", (*square.Client).GetModifier),
		a.inventoryCmd(),
		a.customersCmd(),
		a.customerCmd(),
		a.listCmd("transactions", "List transactions", (*square.Client).ListTransactions),
		a.callID("transaction", "Show one transaction", (*square.Client).GetTransaction),
		a.listCmd("refunds", "List refunds", (*square.Client).ListRefunds),
	)
	a.wrapTeardown(root)

	return root
}

// wrapTeardown runs teardown after every RunE, failed or not.
// Cobra skips post-run hooks once RunE returns an error.
func (a *app) wrapTeardown(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		a.wrapTeardown(c)
	}
	if cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if terr := a.teardown(cmd); err == nil {
			err = terr
		}
		return err
	}
}

func (a *app) loadConfig() (*config.File, error) {
	if a.configPath == "" {
		return config.Load(".")
	}

	f := new(config.File)
	err := config.New(f,
		config.WithFile(filepath.Base(a.configPath)),
		config.WithPaths(filepath.Dir(a.configPath)),
	).Load()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logDir != "" {
		cfg.Log.Dir = a.logDir
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	a.metrics = metrics.New()
	a.client, err = square.New(cfg.Square,
		square.WithLogger(logger),
		square.WithMetrics(a.metrics),
	)
	return err
}

func newLogger(c config.Log, stderr io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.WithLevel(level), log.WithDesensitize(desensitize.Builtin())}

	if c.Dir == "" {
		return log.NewWriter(writer.ConsoleTo(stderr), opts...), nil
	}

	mode, err := writer.ParseRotateMode(c.RotateMode)
	if err != nil {
		return nil, err
	}
	return log.NewFile(log.FileConfig{Dir: c.Dir, Mode: mode}, opts...)
}

func (a *app) teardown(cmd *cobra.Command) error {
	if a.showMetrics && a.metrics != nil {
		if err := printMetrics(cmd.ErrOrStderr(), a.metrics); err != nil {
			return err
		}
	}
	if a.logger != nil {
		return a.logger.Close()
	}
	return nil
}

func printMetrics(w io.Writer, p *metrics.Prometheus) error {
	families, err := p.Registry().Gather()
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("VERSION", "METHOD", "CODE", "REQUESTS")
	for _, f := range families {
		if f.GetName() != "square_client_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := make(map[string]string, 3)
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			table.AddRow(labels["version"], labels["method"], labels["code"], m.GetCounter().GetValue())
		}
	}

	_, err = io.WriteString(w, table.String()+"\n")
	return err
}

// writeResponse prints the body indented; bodies that are not JSON are
// written as they are.
func writeResponse(w io.Writer, resp *square.Response) error {
	if resp == nil || len(resp.Body) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		buf.Reset()
		buf.Write(resp.Body)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}
