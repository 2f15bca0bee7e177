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

// Selectable is a tag interface which represents SELECT XXX
type Selectable interface {
	selected()
}

// Column 代表一个列，name 是字段名而不是列名
type Column struct {
	table TableReference
	name  string
	alias string
}

// C specify column
func C(c string) Column {
	return Column{
		name: c,
	}
}

// As means alias
func (c Column) As(alias string) Column {
	return Column{
		table: c.table,
		name:  c.name,
		alias: alias,
	}
}

// EQ =
func (c Column) EQ(val any) Predicate {
	return c.binary(opEQ, val)
}

// NEQ !=
func (c Column) NEQ(val any) Predicate {
	return c.binary(opNEQ, val)
}

// LT <
func (c Column) LT(val any) Predicate {
	return c.binary(opLT, val)
}

// LTEQ <=
func (c Column) LTEQ(val any) Predicate {
	return c.binary(opLTEQ, val)
}

// GT >
func (c Column) GT(val any) Predicate {
	return c.binary(opGT, val)
}

// GTEQ >=
func (c Column) GTEQ(val any) Predicate {
	return c.binary(opGTEQ, val)
}

// Like -> LIKE %XXX 、_x_ 、xx[xx-xx] 、xx[^xx-xx]
func (c Column) Like(pattern string) Predicate {
	return c.binary(opLike, pattern)
}

// NotLike -> NOT LIKE %XXX 、_x_ 、xx[xx-xx] 、xx[^xx-xx]
func (c Column) NotLike(pattern string) Predicate {
	return c.binary(opNotLike, pattern)
}

// In 有两种输入，一种是值，一种是子查询
// 值为空的时候生成 FALSE，避免拼出 IN ()
func (c Column) In(vals ...any) Predicate {
	return c.in(opIn, vals)
}

func (c Column) NotIn(vals ...any) Predicate {
	return c.in(opNotIn, vals)
}

func (c Column) in(o op, vals []any) Predicate {
	if len(vals) == 1 {
		if sub, ok := vals[0].(Subquery); ok {
			return Predicate{left: c, op: o, right: sub}
		}
	}
	if len(vals) == 0 {
		if o == opIn {
			return Raw("FALSE").AsPredicate()
		}
		return Raw("TRUE").AsPredicate()
	}
	return Predicate{left: c, op: o, right: valuesExpr{vals: vals}}
}

// Between lo <= c <= hi
func (c Column) Between(lo, hi any) Predicate {
	return Predicate{
		left:  c,
		op:    opBetween,
		right: betweenExpr{lo: valueOf(lo), hi: valueOf(hi)},
	}
}

func (c Column) IsNull() Predicate {
	return Predicate{left: c, op: opIsNull}
}

func (c Column) NotNull() Predicate {
	return Predicate{left: c, op: opNotNull}
}

func (c Column) binary(o op, val any) Predicate {
	return Predicate{
		left:  c,
		op:    o,
		right: valueOf(val),
	}
}

func (c Column) Add(val any) MathExpr {
	return MathExpr{
		left:  c,
		op:    opAdd,
		right: valueOf(val),
	}
}

func (c Column) Multi(val any) MathExpr {
	return MathExpr{
		left:  c,
		op:    opMulti,
		right: valueOf(val),
	}
}

// ASC 升序
func (c Column) ASC() OrderBy {
	return OrderBy{exprs: []Expr{c}, order: "ASC"}
}

// DESC 降序
func (c Column) DESC() OrderBy {
	return OrderBy{exprs: []Expr{c}, order: "DESC"}
}

func (Column) assign() {}

func (Column) expr() (string, error) {
	return "", nil
}

func (Column) selected() {}

type columns struct {
	cs []string
}

func (columns) selected() {}

func (columns) assign() {}

// Columns specify columns
func Columns(cs ...string) columns {
	return columns{
		cs: cs,
	}
}
