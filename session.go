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

package eorm

import (
	"context"
	"database/sql"

	"github.com/ecodeclub/eorm-study/internal/datasource"
)

// Session 代表一个抽象的概念，即会话
// 它可以是 *DB，也可以是 *Tx。所有的 Selector、Updater 等
// 都是在构造的时候绑定一个 Session，而不是依赖全局的状态
type Session interface {
	getCore() core
	queryContext(ctx context.Context, q Query) (*sql.Rows, error)
	execContext(ctx context.Context, q Query) (sql.Result, error)
}

var _ Session = (*baseSession)(nil)

type baseSession struct {
	core
	executor datasource.Executor
}

func (sess *baseSession) queryContext(ctx context.Context, q Query) (*sql.Rows, error) {
	return sess.executor.Query(ctx, q)
}

func (sess *baseSession) execContext(ctx context.Context, q Query) (sql.Result, error) {
	return sess.executor.Exec(ctx, q)
}

func (sess *baseSession) getCore() core {
	return sess.core
}
