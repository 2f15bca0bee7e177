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

package datasource

import (
	"context"
	"database/sql"
)

// Query 是已经构造好的 SQL 和参数
type Query struct {
	SQL  string
	Args []any
}

// Executor 执行查询和写操作
type Executor interface {
	Query(ctx context.Context, query Query) (*sql.Rows, error)
	Exec(ctx context.Context, query Query) (sql.Result, error)
}

// Tx 是事务内的 Executor
type Tx interface {
	Executor
	Commit() error
	Rollback() error
}

type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
}

// DataSource 是 eorm 对底层数据库的抽象，连接池等都由 database/sql 负责
type DataSource interface {
	Executor
	TxBeginner
	Close() error
}
