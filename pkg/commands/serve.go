package commands

import (
	"context"

	"github.com/ajans/visit-form/pkg/apiserver"
	"github.com/ajans/visit-form/pkg/backend"
	"github.com/ajans/visit-form/pkg/dealers"
	"github.com/ajans/visit-form/pkg/form"
	"github.com/ajans/visit-form/pkg/visit"
	"github.com/ajans/visit-form/pkg/version"
	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type serveCommand struct{}

func (s *serveCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalHandler(context.Background())

	log := logrus.WithField("command", "serve")

	log.Infof("version: %v", version.Get())

	cfg := backendConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := resolver(c)
	if err != nil {
		return err
	}

	// credentials and Google APIs are first reached by a request; a failed
	// open is retried after backend-retry
	back := backend.NewLazy(cfg.Kind, func(ctx context.Context) (backend.Backend, error) {
		return backend.New(ctx, cfg, res)
	}, c.Duration("backend-retry"))
	defer func() {
		if err := back.Close(); err != nil {
			log.WithError(err).Warn("closing backend")
		}
	}()

	schema, err := form.ForVariant(cfg.Variant)
	if err != nil {
		return err
	}

	loader := dealers.NewLoader(back, c.Duration("cache-ttl"))
	svc := visit.NewService(schema, back, back.Name())

	handler, err := apiserver.NewHandler(svc, loader, c.String("lang"))
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"backend": back.Name(),
		"variant": schema.Variant,
	}).Info("serving visit form")

	apiServer := apiserver.NewAPIServer(ctx, log, c.Int("port"))

	return apiServer.Start(apiserver.NewRouter(log, handler))
}

func serverCommand() *cli.Command {
	cmd := serveCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server Port",
			EnvVars: []string{"VISIT_FORM_PORT", "PORT"},
			Value:   8501,
		},
		&cli.DurationFlag{
			Name:    "cache-ttl",
			Usage:   "How long the dealer list is cached",
			EnvVars: []string{"VISIT_FORM_CACHE_TTL"},
			Value:   dealers.DefaultTTL,
		},
		&cli.DurationFlag{
			Name:    "backend-retry",
			Usage:   "How long a failed backend connection is reported before trying again",
			EnvVars: []string{"VISIT_FORM_BACKEND_RETRY"},
			Value:   backend.DefaultRetryInterval,
		},
		&cli.StringFlag{
			Name:    "lang",
			Usage:   "Default page language, ar or en",
			EnvVars: []string{"VISIT_FORM_LANG"},
			Value:   "ar",
		},
	}

	flags = append(flags, backendFlags()...)

	return &cli.Command{
		Name:   "serve",
		Usage:  "serve the dealer visit form",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
