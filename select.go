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

	"github.com/ecodeclub/eorm-study/internal/errs"
)

// Selector represents a select query
type Selector[T any] struct {
	builder
	Session
	columns  []Selectable
	table    TableReference
	where    []Predicate
	distinct bool
	having   []Predicate
	groupBy  []Column
	orderBy  []OrderBy
	offset   int
	limit    int
}

// NewSelector 创建一个 Selector
func NewSelector[T any](sess Session) *Selector[T] {
	return &Selector[T]{
		builder: builder{
			core: sess.getCore(),
		},
		Session: sess,
	}
}

// Build returns Select Query
func (s *Selector[T]) Build() (Query, error) {
	s.reset()
	defer s.release()
	if err := s.build(true); err != nil {
		return EmptyQuery, err
	}
	s.end()
	return s.query(), nil
}

func (s *Selector[T]) build(paging bool) error {
	if s.table == nil {
		s.table = TableOf(new(T))
	}
	var err error
	s.meta, err = s.tableMeta(s.table)
	if err != nil {
		return err
	}
	s.aliases = nil
	s.writeString("SELECT ")
	if s.distinct {
		s.writeString("DISTINCT ")
	}
	if len(s.columns) == 0 {
		s.buildAllColumns()
	} else if err = s.buildSelectedList(); err != nil {
		return err
	}
	s.writeString(" FROM ")
	if err = s.buildTableReference(s.table); err != nil {
		return err
	}
	if err = s.buildWhere(); err != nil {
		return err
	}

	// group by
	if len(s.groupBy) > 0 {
		if err = s.buildGroupBy(); err != nil {
			return err
		}
	}

	// having
	if having := And(s.having...); !having.Empty() {
		s.writeString(" HAVING ")
		if err = s.buildExpr(having); err != nil {
			return err
		}
	}

	if !paging {
		return nil
	}

	// order by
	if len(s.orderBy) > 0 {
		if err = s.buildOrderBy(s.orderBy); err != nil {
			return err
		}
	}

	if s.offset > 0 && s.limit <= 0 {
		return errs.ErrOffsetWithoutLimit
	}
	if s.limit > 0 {
		s.writeString(" LIMIT ")
		s.parameter(s.limit)
	}
	if s.offset > 0 {
		s.writeString(" OFFSET ")
		s.parameter(s.offset)
	}
	return nil
}

func (s *Selector[T]) buildWhere() error {
	where := And(s.where...)
	if where.Empty() {
		return nil
	}
	s.writeString(" WHERE ")
	return s.buildExpr(where)
}

// buildSubquery 作为子查询的时候，直接写到外层的 buffer 里面
func (s *Selector[T]) buildSubquery(parent *builder) error {
	s.buffer = parent.buffer
	s.args = parent.args
	defer func() {
		s.buffer = nil
	}()
	if err := s.build(true); err != nil {
		return err
	}
	parent.args = s.args
	return nil
}

// AsSubquery 将 Selector 作为子查询，alias 只有在 SELECT 里面的时候才会用到
func (s *Selector[T]) AsSubquery(alias string) Subquery {
	return Subquery{
		q:     s,
		alias: alias,
	}
}

func (s *Selector[T]) buildGroupBy() error {
	s.writeString(" GROUP BY ")
	for i, c := range s.groupBy {
		if i > 0 {
			s.comma()
		}
		if err := s.buildColumn(c, false); err != nil {
			return err
		}
	}
	return nil
}

// buildAllColumns 没有指定列的时候，查询主表的所有列
// JOIN 的时候需要带上表名或者别名
func (s *Selector[T]) buildAllColumns() {
	var qualifier *Table
	if j, ok := s.table.(Join); ok {
		for {
			if left, isJoin := j.left.(Join); isJoin {
				j = left
				continue
			}
			if t, isTable := j.left.(Table); isTable {
				qualifier = &t
			}
			break
		}
	}
	for i, cm := range s.meta.Columns {
		if i > 0 {
			s.comma()
		}
		if qualifier != nil {
			s.buildTableQualifier(*qualifier)
		}
		s.quote(cm.ColumnName)
	}
}

func (s *Selector[T]) buildSelectedList() error {
	for i, selectable := range s.columns {
		if i > 0 {
			s.comma()
		}
		var err error
		switch expr := selectable.(type) {
		case Column:
			err = s.buildColumn(expr, true)
		case columns:
			for j, c := range expr.cs {
				if j > 0 {
					s.comma()
				}
				if err = s.buildColumn(C(c), false); err != nil {
					return err
				}
			}
		case Aggregate:
			err = s.buildAggregate(expr, true)
		case RawExpr:
			s.buildRawExpr(expr)
		case Subquery:
			err = s.builder.buildSubquery(expr, true)
		case CaseExpr:
			err = s.buildCase(expr, true)
		default:
			err = errs.NewErrUnsupportedExpressionType(selectable)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Select 指定查询的列。
// 列可以是物理列，也可以是聚合函数，或者 RawExpr
func (s *Selector[T]) Select(columns ...Selectable) *Selector[T] {
	s.columns = columns
	return s
}

// From specifies the table which must be pointer of structure
// 也可以是 Join
func (s *Selector[T]) From(table TableReference) *Selector[T] {
	s.table = table
	return s
}

// Where accepts predicates
// 零值 Predicate 会被忽略
func (s *Selector[T]) Where(predicates ...Predicate) *Selector[T] {
	s.where = predicates
	return s
}

// Distinct indicates using keyword DISTINCT
func (s *Selector[T]) Distinct() *Selector[T] {
	s.distinct = true
	return s
}

// Having accepts predicates
func (s *Selector[T]) Having(predicates ...Predicate) *Selector[T] {
	s.having = predicates
	return s
}

// GroupBy means "GROUP BY"
func (s *Selector[T]) GroupBy(columns ...Column) *Selector[T] {
	s.groupBy = columns
	return s
}

// OrderBy means "ORDER BY"
func (s *Selector[T]) OrderBy(orderBys ...OrderBy) *Selector[T] {
	s.orderBy = orderBys
	return s
}

// Limit limits the size of result set
func (s *Selector[T]) Limit(limit int) *Selector[T] {
	s.limit = limit
	return s
}

// Offset was used by "LIMIT"
// 只有 Offset 没有 Limit 的时候 Build 会返回错误
func (s *Selector[T]) Offset(offset int) *Selector[T] {
	s.offset = offset
	return s
}

// Get 方法会执行查询，并且返回一条数据
// 注意，在不同的数据库情况下，第一条数据可能是按照不同的列来排序的
// 而且要注意，这个方法会强制设置 Limit 1
// 在没有查找到数据的情况下，会返回 ErrNoRows
func (s *Selector[T]) Get(ctx context.Context) (*T, error) {
	query, err := s.Limit(1).Build()
	if err != nil {
		return nil, err
	}
	return newQuerier[T](s.Session, query, s.meta, "SELECT").Get(ctx)
}

// GetMulti 返回所有的结果
func (s *Selector[T]) GetMulti(ctx context.Context) ([]*T, error) {
	query, err := s.Build()
	if err != nil {
		return nil, err
	}
	return newQuerier[T](s.Session, query, s.meta, "SELECT").GetMulti(ctx)
}

// Count 使用同样的 FROM 和 WHERE 计算总数，忽略 ORDER BY、LIMIT 和 OFFSET
// 有 GROUP BY 或者 DISTINCT 的时候，会把查询包装成子查询再计算
func (s *Selector[T]) Count(ctx context.Context) (int64, error) {
	query, err := s.BuildCount()
	if err != nil {
		return 0, err
	}
	res, err := newQuerier[int64](s.Session, query, s.meta, "SELECT").Get(ctx)
	if err != nil {
		return 0, err
	}
	return *res, nil
}

// BuildCount 构造 Count 使用的查询
func (s *Selector[T]) BuildCount() (Query, error) {
	s.reset()
	defer s.release()
	if s.distinct || len(s.groupBy) > 0 {
		s.writeString("SELECT COUNT(*) FROM (")
		if err := s.build(false); err != nil {
			return EmptyQuery, err
		}
		s.writeString(") AS ")
		s.quote("cnt")
	} else {
		if s.table == nil {
			s.table = TableOf(new(T))
		}
		var err error
		if s.meta, err = s.tableMeta(s.table); err != nil {
			return EmptyQuery, err
		}
		s.writeString("SELECT COUNT(*) FROM ")
		if err = s.buildTableReference(s.table); err != nil {
			return EmptyQuery, err
		}
		if err = s.buildWhere(); err != nil {
			return EmptyQuery, err
		}
	}
	s.end()
	return s.query(), nil
}
