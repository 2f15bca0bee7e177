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
	"github.com/ecodeclub/eorm-study/internal/datasource"
	"github.com/ecodeclub/eorm-study/internal/errs"
	"github.com/ecodeclub/eorm-study/internal/model"
	"github.com/valyala/bytebufferpool"
)

// QueryBuilder is used to build a query
type QueryBuilder interface {
	Build() (Query, error)
}

// Query represents a query
type Query = datasource.Query

var EmptyQuery = Query{}

type builder struct {
	core
	// 在 Build 的时候从池子里面拿，Build 结束之后放回去，
	// 所以同一个 builder 可以多次 Build
	buffer *bytebufferpool.ByteBuffer
	meta   *model.TableMeta
	args   []any
	// SELECT 里面声明过的别名，HAVING 和 ORDER BY 可以直接使用
	aliases map[string]struct{}
}

func (b *builder) reset() {
	b.buffer = bytebufferpool.Get()
	b.args = nil
	b.aliases = nil
}

func (b *builder) release() {
	bytebufferpool.Put(b.buffer)
	b.buffer = nil
}

func (b *builder) query() Query {
	return Query{SQL: b.buffer.String(), Args: b.args}
}

func (b *builder) quote(val string) {
	_ = b.buffer.WriteByte(b.dialect.Quote)
	_, _ = b.buffer.WriteString(val)
	_ = b.buffer.WriteByte(b.dialect.Quote)
}

func (b *builder) space() {
	_ = b.buffer.WriteByte(' ')
}

func (b *builder) end() {
	_ = b.buffer.WriteByte(';')
}

func (b *builder) comma() {
	_ = b.buffer.WriteByte(',')
}

func (b *builder) writeString(val string) {
	_, _ = b.buffer.WriteString(val)
}

func (b *builder) writeByte(c byte) {
	_ = b.buffer.WriteByte(c)
}

func (b *builder) parameter(arg any) {
	if b.args == nil {
		b.args = make([]any, 0, 4)
	}
	b.args = append(b.args, arg)
	b.writeString(b.dialect.Placeholder(len(b.args)))
}

func (b *builder) addAlias(alias string) {
	if b.aliases == nil {
		b.aliases = make(map[string]struct{}, 4)
	}
	b.aliases[alias] = struct{}{}
}

// tableMeta 找到 table 对应的元数据
// Join 的时候使用最左边的表
func (b *builder) tableMeta(table TableReference) (*model.TableMeta, error) {
	switch t := table.(type) {
	case Table:
		return b.metaRegistry.Get(t.entity)
	case Join:
		return b.tableMeta(t.left)
	default:
		return nil, errs.NewUnsupportedTableReferenceError(table)
	}
}

func (b *builder) buildPredicates(ps []Predicate) error {
	return b.buildExpr(And(ps...))
}

func (b *builder) buildExpr(expr Expr) error {
	switch e := expr.(type) {
	case nil:
		return nil
	case RawExpr:
		b.buildRawExpr(e)
	case Column:
		return b.buildColumn(e, false)
	case Aggregate:
		return b.buildAggregate(e, false)
	case valueExpr:
		b.parameter(e.val)
	case valuesExpr:
		b.writeByte('(')
		for i, v := range e.vals {
			if i > 0 {
				b.comma()
			}
			b.parameter(v)
		}
		b.writeByte(')')
	case betweenExpr:
		if err := b.buildExpr(e.lo); err != nil {
			return err
		}
		b.writeString(opAnd.text)
		return b.buildExpr(e.hi)
	case MathExpr:
		return b.buildBinaryExpr(binaryExpr(e))
	case binaryExpr:
		return b.buildBinaryExpr(e)
	case Predicate:
		return b.buildBinaryExpr(binaryExpr(e))
	case Subquery:
		return b.buildSubquery(e, false)
	case CaseExpr:
		return b.buildCase(e, false)
	default:
		return errs.NewErrUnsupportedExpressionType(expr)
	}
	return nil
}

func (b *builder) buildBinaryExpr(e binaryExpr) error {
	if err := b.buildSubExpr(e.left); err != nil {
		return err
	}
	b.writeString(e.op.text)
	return b.buildSubExpr(e.right)
}

func (b *builder) buildSubExpr(subExpr Expr) error {
	switch r := subExpr.(type) {
	case MathExpr:
		b.writeByte('(')
		if err := b.buildBinaryExpr(binaryExpr(r)); err != nil {
			return err
		}
		b.writeByte(')')
	case binaryExpr:
		b.writeByte('(')
		if err := b.buildBinaryExpr(r); err != nil {
			return err
		}
		b.writeByte(')')
	case Predicate:
		b.writeByte('(')
		if err := b.buildBinaryExpr(binaryExpr(r)); err != nil {
			return err
		}
		b.writeByte(')')
	default:
		return b.buildExpr(r)
	}
	return nil
}

// buildRawExpr 把 ? 换成方言的占位符
func (b *builder) buildRawExpr(e RawExpr) {
	argIdx := 0
	for i := 0; i < len(e.raw); i++ {
		if e.raw[i] == '?' && argIdx < len(e.args) {
			b.parameter(e.args[argIdx])
			argIdx++
			continue
		}
		b.writeByte(e.raw[i])
	}
	if argIdx < len(e.args) {
		b.args = append(b.args, e.args[argIdx:]...)
	}
}

// colName 在 table 上找到字段对应的列名，table 为 nil 的时候使用主表
func (b *builder) colName(table TableReference, field string) (string, error) {
	meta := b.meta
	if table != nil {
		var err error
		meta, err = b.tableMeta(table)
		if err != nil {
			return "", err
		}
	}
	cm, ok := meta.FieldMap[field]
	if !ok {
		return "", errs.NewInvalidFieldError(field)
	}
	return cm.ColumnName, nil
}

func (b *builder) buildColumn(c Column, useAlias bool) error {
	switch table := c.table.(type) {
	case nil:
		cm, ok := b.meta.FieldMap[c.name]
		if !ok {
			// SELECT 里面定义的别名
			if _, isAlias := b.aliases[c.name]; isAlias {
				b.quote(c.name)
				return nil
			}
			return errs.NewInvalidFieldError(c.name)
		}
		b.quote(cm.ColumnName)
	case Table:
		name, err := b.colName(table, c.name)
		if err != nil {
			return err
		}
		b.buildTableQualifier(table)
		b.quote(name)
	default:
		return errs.NewUnsupportedTableReferenceError(table)
	}
	if useAlias && c.alias != "" {
		b.writeString(" AS ")
		b.quote(c.alias)
		b.addAlias(c.alias)
	}
	return nil
}

func (b *builder) buildTableQualifier(t Table) {
	if t.alias != "" {
		b.quote(t.alias)
	} else {
		meta, _ := b.metaRegistry.Get(t.entity)
		b.quote(meta.TableName)
	}
	b.writeByte('.')
}

func (b *builder) buildAggregate(a Aggregate, useAlias bool) error {
	b.writeString(a.fn)
	b.writeByte('(')
	if a.distinct {
		b.writeString("DISTINCT ")
	}
	if a.arg == "*" {
		b.writeByte('*')
	} else if err := b.buildColumn(Column{table: a.table, name: a.arg}, false); err != nil {
		return err
	}
	b.writeByte(')')
	if useAlias && a.alias != "" {
		b.writeString(" AS ")
		b.quote(a.alias)
		b.addAlias(a.alias)
	}
	return nil
}

func (b *builder) buildCase(c CaseExpr, useAlias bool) error {
	if len(c.whens) == 0 {
		return errs.ErrEmptyCase
	}
	b.writeString("CASE")
	if c.base != nil {
		b.space()
		if err := b.buildExpr(c.base); err != nil {
			return err
		}
	}
	for _, w := range c.whens {
		b.writeString(" WHEN ")
		if err := b.buildExpr(w.when); err != nil {
			return err
		}
		b.writeString(" THEN ")
		if err := b.buildExpr(w.then); err != nil {
			return err
		}
	}
	if c.els != nil {
		b.writeString(" ELSE ")
		if err := b.buildExpr(c.els); err != nil {
			return err
		}
	}
	b.writeString(" END")
	if useAlias && c.alias != "" {
		b.writeString(" AS ")
		b.quote(c.alias)
		b.addAlias(c.alias)
	}
	return nil
}

func (b *builder) buildSubquery(sub Subquery, useAlias bool) error {
	b.writeByte('(')
	if err := sub.q.buildSubquery(b); err != nil {
		return err
	}
	b.writeByte(')')
	if useAlias && sub.alias != "" {
		b.writeString(" AS ")
		b.quote(sub.alias)
		b.addAlias(sub.alias)
	}
	return nil
}

func (b *builder) buildTableReference(table TableReference) error {
	switch t := table.(type) {
	case Table:
		meta, err := b.metaRegistry.Get(t.entity)
		if err != nil {
			return err
		}
		b.quote(meta.TableName)
		if t.alias != "" {
			b.writeString(" AS ")
			b.quote(t.alias)
		}
	case Join:
		return b.buildJoin(t)
	default:
		return errs.NewUnsupportedTableReferenceError(table)
	}
	return nil
}

func (b *builder) buildJoin(j Join) error {
	if err := b.buildTableReference(j.left); err != nil {
		return err
	}
	b.space()
	b.writeString(j.typ)
	b.space()
	if _, ok := j.right.(Join); ok {
		b.writeByte('(')
		if err := b.buildTableReference(j.right); err != nil {
			return err
		}
		b.writeByte(')')
	} else if err := b.buildTableReference(j.right); err != nil {
		return err
	}
	if len(j.using) > 0 {
		b.writeString(" USING (")
		for i, col := range j.using {
			if i > 0 {
				b.comma()
			}
			name, err := b.colName(j.right, col)
			if err != nil {
				return err
			}
			b.quote(name)
		}
		b.writeByte(')')
	}
	if len(j.on) > 0 {
		b.writeString(" ON ")
		return b.buildPredicates(j.on)
	}
	return nil
}

func (b *builder) buildOrderBy(orderBys []OrderBy) error {
	b.writeString(" ORDER BY ")
	cnt := 0
	for _, ob := range orderBys {
		for _, e := range ob.exprs {
			if cnt > 0 {
				b.comma()
			}
			cnt++
			if ob.nulls != "" {
				// 不是所有的数据库都支持 NULLS FIRST/LAST，这里统一用 CASE 模拟
				first, second := "1", "0"
				if ob.nulls == "FIRST" {
					first, second = "0", "1"
				}
				b.writeString("CASE WHEN ")
				if err := b.buildExpr(e); err != nil {
					return err
				}
				b.writeString(" IS NULL THEN " + first + " ELSE " + second + " END,")
			}
			if err := b.buildExpr(e); err != nil {
				return err
			}
			b.space()
			b.writeString(ob.order)
		}
	}
	return nil
}
