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
	"reflect"

	"github.com/ecodeclub/eorm-study/internal/errs"
	"github.com/ecodeclub/eorm-study/internal/model"
)

var _ QueryBuilder = &Inserter[any]{}

// Inserter is used to construct an insert query
// More details check Build function
type Inserter[T any] struct {
	builder
	Session
	columns []string
	values  []*T
	// 方言支持 RETURNING 并且自增主键没有赋值的时候不为 nil
	returning *model.ColumnMeta
}

// NewInserter 开始构建一个 INSERT 查询
func NewInserter[T any](sess Session) *Inserter[T] {
	return &Inserter[T]{
		builder: builder{
			core: sess.getCore(),
		},
		Session: sess,
	}
}

// Build function build the query
// notes:
// - All the values from function Values should have the same type.
// - 没有指定 Columns 的时候，所有行都是零值的自增主键会被忽略，由数据库生成
func (i *Inserter[T]) Build() (Query, error) {
	i.reset()
	defer i.release()
	var err error
	if len(i.values) == 0 {
		return EmptyQuery, errs.ErrInsertNoValues
	}
	i.meta, err = i.metaRegistry.Get(i.values[0])
	if err != nil {
		return EmptyQuery, err
	}
	i.writeString("INSERT INTO ")
	i.quote(i.meta.TableName)
	i.writeByte('(')
	fields, err := i.buildColumns()
	if err != nil {
		return EmptyQuery, err
	}
	i.writeByte(')')
	i.writeString(" VALUES")
	for index, val := range i.values {
		if index > 0 {
			i.comma()
		}
		i.writeByte('(')
		refVal := i.valCreator.Creator(val, i.meta)
		for j, v := range fields {
			fdVal, err := refVal.Field(v.FieldName)
			if err != nil {
				return EmptyQuery, err
			}
			if j > 0 {
				i.comma()
			}
			i.parameter(fdVal)
		}
		i.writeByte(')')
	}
	if i.returning != nil {
		i.writeString(" RETURNING ")
		i.quote(i.returning.ColumnName)
	}
	i.end()
	return i.query(), nil
}

// Columns specifies the columns that need to be inserted
// if cs is empty, all columns will be inserted
// cs must be the same with the field name in model
func (i *Inserter[T]) Columns(cs ...string) *Inserter[T] {
	i.columns = cs
	return i
}

// Values specify the rows
// all the elements must be the same type
// and users are supposed to passing at least one element
func (i *Inserter[T]) Values(values ...*T) *Inserter[T] {
	i.values = values
	return i
}

// Exec 发起查询
// 自增主键通过 Result.LastInsertId 拿到，
// PostgreSQL 上是通过 RETURNING 实现的
func (i *Inserter[T]) Exec(ctx context.Context) Result {
	query, err := i.Build()
	if err != nil {
		return Result{err: err}
	}
	q := newQuerier[T](i.Session, query, i.meta, "INSERT")
	if i.returning != nil {
		return q.execReturning(ctx)
	}
	return q.Exec(ctx)
}

func (i *Inserter[T]) buildColumns() ([]*model.ColumnMeta, error) {
	i.returning = nil
	cs := make([]*model.ColumnMeta, 0, len(i.meta.Columns))
	if len(i.columns) != 0 {
		for _, c := range i.columns {
			v, isOk := i.meta.FieldMap[c]
			if !isOk {
				return cs, errs.NewInvalidFieldError(c)
			}
			cs = append(cs, v)
		}
	} else {
		for _, c := range i.meta.Columns {
			if c.IsAutoIncrement && i.allZero(c) {
				if i.dialect.Returning {
					i.returning = c
				}
				continue
			}
			cs = append(cs, c)
		}
	}
	for index, c := range cs {
		if index > 0 {
			i.comma()
		}
		i.quote(c.ColumnName)
	}
	return cs, nil
}

func (i *Inserter[T]) allZero(c *model.ColumnMeta) bool {
	for _, val := range i.values {
		if !reflect.ValueOf(val).Elem().FieldByIndex(c.FieldIndexes).IsZero() {
			return false
		}
	}
	return true
}
