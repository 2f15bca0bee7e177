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

//go:build e2e

package integration

import (
	"context"
	"time"

	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/initdata"
	"github.com/ecodeclub/eorm-study/internal/schema"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Suite 在 PostgreSQL 容器上建表并且初始化数据
type Suite struct {
	suite.Suite
	container *postgres.PostgresContainer
	orm       *eorm.DB
}

func (s *Suite) SetupSuite() {
	t := s.T()
	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:17.7",
		postgres.WithDatabase("querydsl"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	orm, err := eorm.Open("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, orm.Wait())
	s.orm = orm

	require.NoError(t, schema.Migrate(ctx, orm, "pgx"))
	require.NoError(t, initdata.Init(ctx, orm))
}

func (s *Suite) TearDownSuite() {
	if s.orm != nil {
		_ = s.orm.Close()
	}
	if s.container != nil {
		require.NoError(s.T(), s.container.Terminate(context.Background()))
	}
}
