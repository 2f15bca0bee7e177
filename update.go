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
	"github.com/ecodeclub/eorm-study/internal/valuer"
)

var _ QueryBuilder = &Updater[any]{}

// Updater is the builder responsible for building UPDATE query
type Updater[T any] struct {
	builder
	Session
	table   *T
	val     valuer.Value
	where   []Predicate
	assigns []Assignable
}

// NewUpdater 开始构建一个 UPDATE 查询
func NewUpdater[T any](sess Session) *Updater[T] {
	return &Updater[T]{
		builder: builder{
			core: sess.getCore(),
		},
		Session: sess,
	}
}

// Update 指定更新使用的值，Set 里面的 Column 从这里取值
func (u *Updater[T]) Update(val *T) *Updater[T] {
	u.table = val
	return u
}

// Build returns UPDATE query
// 没有 Set 的时候，更新除了主键以外的所有列
func (u *Updater[T]) Build() (Query, error) {
	u.reset()
	defer u.release()
	var err error
	u.meta, err = u.metaRegistry.Get(new(T))
	if err != nil {
		return EmptyQuery, err
	}
	if u.table != nil {
		u.val = u.valCreator.Creator(u.table, u.meta)
	} else {
		u.val = nil
	}

	u.writeString("UPDATE ")
	u.quote(u.meta.TableName)
	u.writeString(" SET ")
	if len(u.assigns) == 0 {
		err = u.buildDefaultColumns()
	} else {
		err = u.buildAssigns()
	}
	if err != nil {
		return EmptyQuery, err
	}

	if where := And(u.where...); !where.Empty() {
		u.writeString(" WHERE ")
		if err = u.buildExpr(where); err != nil {
			return EmptyQuery, err
		}
	}

	u.end()
	return u.query(), nil
}

func (u *Updater[T]) buildAssigns() error {
	has := false
	for _, assign := range u.assigns {
		switch a := assign.(type) {
		case Column:
			if has {
				u.comma()
			}
			if err := u.buildFieldAssign(a.name); err != nil {
				return err
			}
			has = true
		case columns:
			for _, name := range a.cs {
				if has {
					u.comma()
				}
				if err := u.buildFieldAssign(name); err != nil {
					return err
				}
				has = true
			}
		case Assignment:
			if has {
				u.comma()
			}
			if err := u.buildColumn(a.left.(Column), false); err != nil {
				return err
			}
			u.writeByte('=')
			if err := u.buildExpr(a.right); err != nil {
				return err
			}
			has = true
		default:
			return errs.NewUnsupportedAssignmentError(assign)
		}
	}
	if !has {
		return errs.NewValueNotSetError()
	}
	return nil
}

func (u *Updater[T]) buildFieldAssign(name string) error {
	c, ok := u.meta.FieldMap[name]
	if !ok {
		return errs.NewInvalidFieldError(name)
	}
	if u.val == nil {
		return errs.NewValueNotSetError()
	}
	val, err := u.val.Field(name)
	if err != nil {
		return err
	}
	u.quote(c.ColumnName)
	u.writeByte('=')
	u.parameter(val)
	return nil
}

func (u *Updater[T]) buildDefaultColumns() error {
	if u.val == nil {
		return errs.NewValueNotSetError()
	}
	has := false
	for _, c := range u.meta.Columns {
		if c.IsPrimaryKey {
			continue
		}
		if has {
			u.comma()
		}
		if err := u.buildFieldAssign(c.FieldName); err != nil {
			return err
		}
		has = true
	}
	if !has {
		return errs.NewValueNotSetError()
	}
	return nil
}

// Set represents SET clause
func (u *Updater[T]) Set(assigns ...Assignable) *Updater[T] {
	u.assigns = assigns
	return u
}

// Where represents WHERE clause
func (u *Updater[T]) Where(predicates ...Predicate) *Updater[T] {
	u.where = predicates
	return u
}

// Exec sql
func (u *Updater[T]) Exec(ctx context.Context) Result {
	query, err := u.Build()
	if err != nil {
		return Result{err: err}
	}
	return newQuerier[T](u.Session, query, u.meta, "UPDATE").Exec(ctx)
}

// AssignNotNilColumns uses the non-nil value to construct the Assignable instances.
func AssignNotNilColumns(entity any) []Assignable {
	return AssignColumns(entity, func(typ reflect.StructField, val reflect.Value) bool {
		switch val.Kind() {
		case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
			return !val.IsNil()
		}
		return true
	})
}

// AssignNotZeroColumns uses the non-zero value to construct the Assignable instances.
func AssignNotZeroColumns(entity any) []Assignable {
	return AssignColumns(entity, func(typ reflect.StructField, val reflect.Value) bool {
		return !val.IsZero()
	})
}

// AssignColumns will check all columns and then apply the filter function.
// If the returned value is true, this column will be updated.
// 主键和 eorm:"-" 的字段不会出现在结果里面
func AssignColumns(entity any, filter func(typ reflect.StructField, val reflect.Value) bool) []Assignable {
	meta, err := assignRegistry.Get(entity)
	if err != nil {
		return nil
	}
	val := reflect.ValueOf(entity).Elem()
	typ := val.Type()
	res := make([]Assignable, 0, len(meta.Columns))
	for _, c := range meta.Columns {
		if c.IsPrimaryKey {
			continue
		}
		fdVal := val.FieldByIndex(c.FieldIndexes)
		if filter(typ.FieldByIndex(c.FieldIndexes), fdVal) {
			res = append(res, Assign(c.FieldName, fdVal.Interface()))
		}
	}
	return res
}

// assignRegistry 只用来解析字段，和 DB 上的 MetaRegistry 无关
var assignRegistry = model.NewMetaRegistry()
