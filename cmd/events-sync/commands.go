package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/api"
	"github.com/SergeyKozhin/events-sync/internal/config"
	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/SergeyKozhin/events-sync/internal/refresher"
	"github.com/SergeyKozhin/events-sync/internal/session"
	"github.com/SergeyKozhin/events-sync/internal/view"
	"github.com/urfave/cli/v2"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the synchronized store behind the local HTTP API.",
		Action: serveAction(logger),
	}
}

func serveAction(logger *zap.SugaredLogger) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel := context.WithCancel(c.Context)
		defer cancel()

		sess := session.New(config.ApiToken())
		closer.Bind(sess.Close)

		app, err := newApp(ctx, logger, sess, true)
		if err != nil {
			return err
		}
		app.loadProfile(ctx)

		app.store.Warm(ctx)
		if res := app.store.Refresh(ctx); !res.OK() {
			logger.Warnw("initial refresh failed", "kind", res.Kind(), "message", res.Message())
		}

		sub, err := app.store.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", config.ChannelTopic(), err)
		}
		closer.Bind(func() {
			if err := sub.Close(); err != nil {
				logger.Errorw("Failed closing subscription", "err", err)
			}
		})

		errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
		if err != nil {
			return fmt.Errorf("server logger: %w", err)
		}

		server := &http.Server{
			Addr:     ":" + config.Port(),
			Handler:  api.NewApi(logger, config.MaxFileSize(), app.store, sess, app.gateway),
			ErrorLog: errLogger,
		}
		closer.Bind(func() {
			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Errorw("Failed shutting down server", "err", err)
			}
		})

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return refresher.NewRefresher(logger, app.store, config.RefreshPeriod()).Start(ctx)
		})
		g.Go(func() error {
			logger.Infow("Started server", "port", config.Port())
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		})

		return g.Wait()
	}
}

func listCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Fetch the events once and print the filtered view.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "case-insensitive text in name or description"},
			&cli.StringFlag{Name: "category", Usage: "exact category"},
			&cli.StringFlag{Name: "date", Usage: "calendar day, YYYY-MM-DD"},
			&cli.StringFlag{Name: "sort", Value: "created", Usage: "created or date"},
			&cli.StringFlag{Name: "order", Value: "desc", Usage: "asc or desc"},
		},
		Action: func(c *cli.Context) error {
			criteria, err := criteriaFromFlags(c)
			if err != nil {
				return err
			}

			app, err := newApp(c.Context, logger, session.New(config.ApiToken()), false)
			if err != nil {
				return err
			}

			res := app.store.Refresh(c.Context)
			if !res.OK() {
				return res.Err()
			}

			return printEvents(view.Apply(app.store.Events(), criteria))
		},
	}
}

func loginCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and print the access token for API_TOKEN.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			gw := newGateway(logger, session.New(""))

			res := gw.Login(c.Context, &model.Credentials{
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if !res.OK() {
				return res.Err()
			}

			logger.Infow("Signed in", "user", res.Data().User.ID, "message", res.Message())
			fmt.Println(res.Data().AccessToken)

			return nil
		},
	}
}

func criteriaFromFlags(c *cli.Context) (view.Criteria, error) {
	var err error

	res := view.Criteria{
		Text:     c.String("search"),
		Category: model.Category(c.String("category")),
	}
	if res.Category != "" && !res.Category.Valid() {
		return res, fmt.Errorf("unknown category %q", res.Category)
	}

	if v := c.String("date"); v != "" {
		if res.Date, err = time.Parse(view.DateFormat, v); err != nil {
			return res, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
		}
	}
	if res.SortBy, err = view.ParseSortField(c.String("sort")); err != nil {
		return res, err
	}
	if res.Order, err = view.ParseOrder(c.String("order")); err != nil {
		return res, err
	}

	return res, nil
}

func printEvents(events []*model.Event) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDATE\tTIME\tLOCATION\tATTENDEES")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			e.ID,
			strings.TrimSpace(e.Name),
			e.Category,
			e.Date.Format(view.DateFormat),
			e.Time,
			e.Location,
			len(e.Attendees),
		)
	}

	return w.Flush()
}
