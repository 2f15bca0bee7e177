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
	"reflect"
	"time"

	"github.com/ecodeclub/eorm-study/internal/dialect"
	"github.com/ecodeclub/eorm-study/internal/errs"
	"github.com/ecodeclub/eorm-study/internal/model"
	"github.com/ecodeclub/eorm-study/internal/valuer"
)

type core struct {
	ms           []Middleware
	metaRegistry model.MetaRegistry
	dialect      dialect.Dialect
	valCreator   valuer.PrimitiveCreator
}

var (
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
)

// metaOf 只有普通的结构体才需要元数据，
// time.Time 和 sql.Scanner 的实现直接扫描
func (c core) metaOf(tp any) (*model.TableMeta, error) {
	typ := reflect.TypeOf(tp)
	if typ.Elem().Kind() != reflect.Struct || typ.Elem() == timeType || typ.Implements(scannerType) {
		return nil, nil
	}
	return c.metaRegistry.Get(tp)
}

func (c core) scan(rows *sql.Rows, tp any, meta *model.TableMeta) error {
	if meta == nil {
		var err error
		meta, err = c.metaOf(tp)
		if err != nil {
			return err
		}
	}
	return c.valCreator.NewPrimitiveValue(tp, meta).SetColumns(rows)
}

func getHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	rows, err := sess.queryContext(ctx, qc.q)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return &QueryResult{Err: err}
		}
		return &QueryResult{Err: errs.ErrNoRows}
	}

	tp := new(T)
	meta := qc.meta
	if meta != nil && meta.Typ != reflect.TypeOf(tp) {
		// 例如 Selector[Member] 投影到 DTO 上
		meta = nil
	}
	if err = c.scan(rows, tp, meta); err != nil {
		return &QueryResult{Err: err}
	}
	return &QueryResult{Result: tp}
}

func getMultiHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	rows, err := sess.queryContext(ctx, qc.q)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()
	res := make([]*T, 0, 16)
	meta := qc.meta
	for rows.Next() {
		tp := new(T)
		if meta != nil && meta.Typ != reflect.TypeOf(tp) {
			meta = nil
		}
		if err = c.scan(rows, tp, meta); err != nil {
			return &QueryResult{Err: err}
		}
		res = append(res, tp)
	}
	if err = rows.Err(); err != nil {
		return &QueryResult{Err: err}
	}
	return &QueryResult{Result: res}
}

func execHandler(ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	res, err := sess.execContext(ctx, qc.q)
	return &QueryResult{Result: res, Err: err}
}

// returningHandler 用于支持 RETURNING 的方言，
// 每一行返回一个自增主键
func returningHandler(ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	rows, err := sess.queryContext(ctx, qc.q)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()
	res := returningResult{}
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return &QueryResult{Err: err}
		}
		res.ids = append(res.ids, id)
	}
	if err = rows.Err(); err != nil {
		return &QueryResult{Err: err}
	}
	return &QueryResult{Result: res}
}

// handle 把 root 包在中间件链的最里面
func (c core) handle(ctx context.Context, qc *QueryContext, root HandleFunc) *QueryResult {
	handler := root
	for i := len(c.ms) - 1; i >= 0; i-- {
		handler = c.ms[i](handler)
	}
	return handler(ctx, qc)
}
