package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/huma-contacts/cli/api"
	"github.com/oaiiae/huma-contacts/cli/logger"
	"github.com/oaiiae/huma-contacts/datastores"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	Host              string        `short:"H" doc:"host to listen on"                          default:""`
	Port              string        `short:"p" doc:"port to listen on"                          default:"8888"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers"       default:"15s"`
	EndpointsPrefix   string        `          doc:"mount endpoints at a prefix"                default:"/api"`
	LogLevel          string        `          doc:"log from debug, info, warn or error"`
	LogFile           string        `          doc:"append logs to file"`
	LogFormat         string        `          doc:"format logs as text or json"                default:"text"`
	DataFile          string        `short:"d" doc:"persist contacts to a YAML file, in-memory if empty"`
}

func openStore(path string, ids *datastores.IDCounter) (api.Store, error) {
	if path == "" {
		return datastores.NewContactsInmem(ids), nil
	}
	return datastores.OpenContactsFile(path, ids)
}

func newLogger(options *Options) (*slog.Logger, func() error) {
	return logger.New(&logger.Options{
		Level:  options.LogLevel,
		File:   options.LogFile,
		Format: options.LogFormat,
	})
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log, closeLog := newLogger(options)

		ids := datastores.NewIDCounter(0)
		store, err := openStore(options.DataFile, ids)
		if err != nil {
			log.Error("could not open contacts store", "err", err)
			closeLog() //nolint: errcheck // exiting
			os.Exit(1)
		}
		log.Info("contacts store opened", "file", options.DataFile, "next-id", ids.Current())

		srv := api.NewServer(&api.ServerOptions{
			Host:              options.Host,
			Port:              options.Port,
			ReadHeaderTimeout: options.ReadHeaderTimeout,
		}, api.NewRouter(&api.RouterOptions{
			EndpointsPrefix: options.EndpointsPrefix,
			Title:           "Contacts API",
			Version:         version,
			Revision:        revision,
			Created:         created,
		}, store, ids, log), log)

		hooks.OnStart(func() {
			log.Info("server listening", "addr", srv.Addr)
			err := srv.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			defer closeLog() //nolint: errcheck // nothing left to log to
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	root := cli.Root()
	root.Use = "contacts"
	root.Version = version
	root.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the contacts stored in the data file",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
			log, closeLog := newLogger(options)
			err := dump(cmd, options.DataFile)
			if err != nil {
				log.Error("could not dump contacts", "err", err)
			}
			closeLog() //nolint: errcheck // exiting
			if err != nil {
				os.Exit(1)
			}
		}),
	})

	cli.Run()
}

func dump(cmd *cobra.Command, path string) error {
	if path == "" {
		return errors.New("no data file given")
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	store, err := datastores.OpenContactsFile(path, datastores.NewIDCounter(0))
	if err != nil {
		return err
	}
	contacts, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, c := range contacts {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}
