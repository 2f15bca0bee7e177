// Copyright 2021 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecodeclub/eorm-study/internal/config"
	"github.com/ecodeclub/eorm-study/internal/initdata"
	"github.com/ecodeclub/eorm-study/internal/repository"
	"github.com/ecodeclub/eorm-study/internal/schema"
	"github.com/ecodeclub/eorm-study/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server serving /v1/members, /v2/members and /v3/members.

With PROFILE=local the tables are created and sample data is inserted on startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts.cfg, nil)
		},
	}
}

// serve 一直运行到 ctx 被取消。ready 不为 nil 的时候，开始监听之后会收到地址
func serve(ctx context.Context, cfg config.Config, ready chan<- string) (err error) {
	db, err := openDB(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()
	if cfg.IsLocal() {
		if err = schema.Migrate(ctx, db, cfg.DB.Driver); err != nil {
			return err
		}
		if err = initdata.Init(ctx, db); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:      web.NewRouter(web.NewMemberHandler(repository.NewMemberRepository(db))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Printf("listening on %s", ln.Addr())
		if er := srv.Serve(ln); er != nil && !errors.Is(er, http.ErrServerClosed) {
			return er
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if ready != nil {
		ready <- ln.Addr().String()
	}
	return eg.Wait()
}
