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
	"log"

	"github.com/ecodeclub/eorm-study/internal/initdata"
	"github.com/ecodeclub/eorm-study/internal/schema"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the member and team tables",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, err := openDB(opts.cfg.DB)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, db.Close())
			}()
			if err = schema.Migrate(cmd.Context(), db, opts.cfg.DB.Driver); err != nil {
				return err
			}
			log.Printf("migrated %s", opts.cfg.DB.Driver)
			return nil
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the tables and insert teamA, teamB and their members",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, err := openDB(opts.cfg.DB)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, db.Close())
			}()
			ctx := cmd.Context()
			if err = schema.Migrate(ctx, db, opts.cfg.DB.Driver); err != nil {
				return err
			}
			if err = initdata.Init(ctx, db); err != nil {
				return err
			}
			log.Printf("seeded %d members", initdata.MemberCount)
			return nil
		},
	}
}
