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

// Expr is the top interface. It represents everything.
type Expr interface {
	expr() (string, error)
}

// RawExpr uses string as Expr
type RawExpr struct {
	raw  string
	args []any
}

// Raw just take expr as Expr
// args 按照顺序对应 expr 里面的 ?，在 PostgreSQL 上会被改写成 $n
func Raw(expr string, args ...any) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

func (r RawExpr) expr() (string, error) {
	return r.raw, nil
}

func (RawExpr) selected() {}

// AsPredicate 将会返回一个 Predicate，RawExpr 将会作为这个 Predicate 的左边部分
// eorm 将不会对这个 Predicate 做任何的检查
func (r RawExpr) AsPredicate() Predicate {
	return Predicate{
		left: r,
	}
}

type binaryExpr struct {
	left  Expr
	op    op
	right Expr
}

func (binaryExpr) expr() (string, error) {
	return "", nil
}

// MathExpr 算术表达式，例如 age + 1
type MathExpr binaryExpr

func (m MathExpr) Add(val any) MathExpr {
	return MathExpr{
		left:  m,
		op:    opAdd,
		right: valueOf(val),
	}
}

func (m MathExpr) Multi(val any) MathExpr {
	return MathExpr{
		left:  m,
		op:    opMulti,
		right: valueOf(val),
	}
}

func (m MathExpr) expr() (string, error) {
	return "", nil
}

type valueExpr struct {
	val any
}

func (valueExpr) expr() (string, error) {
	return "", nil
}

type valuesExpr struct {
	vals []any
}

func (valuesExpr) expr() (string, error) {
	return "", nil
}

type betweenExpr struct {
	lo Expr
	hi Expr
}

func (betweenExpr) expr() (string, error) {
	return "", nil
}

func valueOf(val any) Expr {
	switch v := val.(type) {
	case Expr:
		return v
	default:
		return valueExpr{val: val}
	}
}
