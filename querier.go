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

	"github.com/ecodeclub/eorm-study/internal/model"
)

// Querier 执行一个已经构造好的查询
type Querier[T any] struct {
	Session
	core
	qc *QueryContext
}

// RawQuery 创建一个 Querier 实例
// 泛型参数 T 是目标类型。
// 例如，如果查询 User 的数据，那么 T 就是 User
func RawQuery[T any](sess Session, sql string, args ...any) Querier[T] {
	return Querier[T]{
		core:    sess.getCore(),
		Session: sess,
		qc: &QueryContext{
			q:    Query{SQL: sql, Args: args},
			Type: "RAW",
		},
	}
}

func newQuerier[T any](sess Session, q Query, meta *model.TableMeta, typ string) Querier[T] {
	return Querier[T]{
		core:    sess.getCore(),
		Session: sess,
		qc: &QueryContext{
			q:    q,
			meta: meta,
			Type: typ,
		},
	}
}

// Exec 执行 SQL
func (q Querier[T]) Exec(ctx context.Context) Result {
	res := q.handle(ctx, q.qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return execHandler(ctx, q.Session, q.core, qc)
	})
	var sqlRes sql.Result
	if res.Result != nil {
		sqlRes = res.Result.(sql.Result)
	}
	return Result{err: res.Err, res: sqlRes}
}

func (q Querier[T]) execReturning(ctx context.Context) Result {
	res := q.handle(ctx, q.qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return returningHandler(ctx, q.Session, q.core, qc)
	})
	var sqlRes sql.Result
	if res.Result != nil {
		sqlRes = res.Result.(sql.Result)
	}
	return Result{err: res.Err, res: sqlRes}
}

// Get 执行查询并且返回第一行数据
// 注意在不同的数据库里面，排序可能会不同
// 在没有查找到数据的情况下，会返回 ErrNoRows
func (q Querier[T]) Get(ctx context.Context) (*T, error) {
	res := q.handle(ctx, q.qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getHandler[T](ctx, q.Session, q.core, qc)
	})
	if res.Result != nil {
		return res.Result.(*T), res.Err
	}
	return nil, res.Err
}

func (q Querier[T]) GetMulti(ctx context.Context) ([]*T, error) {
	res := q.handle(ctx, q.qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getMultiHandler[T](ctx, q.Session, q.core, qc)
	})
	if res.Result != nil {
		return res.Result.([]*T), res.Err
	}
	return nil, res.Err
}
