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
	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/config"
	"github.com/ecodeclub/eorm-study/middleware/querylog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
	cfg      config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "querydsl",
		Short:         "Member/Team search service built on eorm",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFiles...)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files, .env by default")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	return cmd
}

// openDB 配置了从库的时候使用读写分离
func openDB(cfg config.DBConfig) (*eorm.DB, error) {
	var opts []eorm.DBOption
	if cfg.LogQueries {
		opts = append(opts, eorm.DBWithMiddlewares(
			querylog.NewBuilder().SlowThreshold(cfg.SlowThreshold).Build()))
	}
	if len(cfg.SlaveDSNs) > 0 {
		return eorm.OpenMasterSlaves(cfg.Driver, cfg.DSN, cfg.SlaveDSNs, opts...)
	}
	return eorm.Open(cfg.Driver, cfg.DSN, opts...)
}
