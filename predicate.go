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

type op struct {
	symbol string
	text   string
}

var (
	opLT      = op{symbol: "<", text: "<"}
	opLTEQ    = op{symbol: "<=", text: "<="}
	opGT      = op{symbol: ">", text: ">"}
	opGTEQ    = op{symbol: ">=", text: ">="}
	opEQ      = op{symbol: "=", text: "="}
	opNEQ     = op{symbol: "!=", text: "!="}
	opAdd     = op{symbol: "+", text: "+"}
	opMulti   = op{symbol: "*", text: "*"}
	opAnd     = op{symbol: "AND", text: " AND "}
	opOr      = op{symbol: "OR", text: " OR "}
	opNot     = op{symbol: "NOT", text: "NOT "}
	opIn      = op{symbol: "IN", text: " IN "}
	opNotIn   = op{symbol: "NOT IN", text: " NOT IN "}
	opLike    = op{symbol: "LIKE", text: " LIKE "}
	opNotLike = op{symbol: "NOT LIKE", text: " NOT LIKE "}
	opBetween = op{symbol: "BETWEEN", text: " BETWEEN "}
	opIsNull  = op{symbol: "IS NULL", text: " IS NULL"}
	opNotNull = op{symbol: "IS NOT NULL", text: " IS NOT NULL"}
	opExist   = op{symbol: "EXISTS", text: "EXISTS "}
)

// Predicate will be used in Where Or Having
// 零值 Predicate 表示没有任何条件，
// 它和其它 Predicate 组合的时候会被忽略
type Predicate binaryExpr

func (Predicate) expr() (string, error) {
	return "", nil
}

// Empty 判断是否是零值 Predicate
func (p Predicate) Empty() bool {
	return p.left == nil && p.right == nil && p.op == op{}
}

// Not indicates "NOT"
func Not(p Predicate) Predicate {
	if p.Empty() {
		return p
	}
	return Predicate{
		op:    opNot,
		right: p,
	}
}

// And indicates "AND"
// 任意一边为空的时候，返回另外一边
func (p Predicate) And(pred Predicate) Predicate {
	if p.Empty() {
		return pred
	}
	if pred.Empty() {
		return p
	}
	return Predicate{
		left:  p,
		op:    opAnd,
		right: pred,
	}
}

// Or indicates "OR"
func (p Predicate) Or(pred Predicate) Predicate {
	if p.Empty() {
		return pred
	}
	if pred.Empty() {
		return p
	}
	return Predicate{
		left:  p,
		op:    opOr,
		right: pred,
	}
}

// And 用 AND 把所有非空的 Predicate 连起来，
// 全部为空的时候返回零值 Predicate
func And(ps ...Predicate) Predicate {
	var res Predicate
	for _, p := range ps {
		res = res.And(p)
	}
	return res
}

// Or 用 OR 把所有非空的 Predicate 连起来
func Or(ps ...Predicate) Predicate {
	var res Predicate
	for _, p := range ps {
		res = res.Or(p)
	}
	return res
}

// Exist 子查询里面有数据
func Exist(sub Subquery) Predicate {
	return Predicate{
		op:    opExist,
		right: sub,
	}
}

// PredicateBuilder 命令式地累积条件，
// 适合一连串 if 判断之后再决定条件的场景
type PredicateBuilder struct {
	p Predicate
}

func (b *PredicateBuilder) And(p Predicate) *PredicateBuilder {
	b.p = b.p.And(p)
	return b
}

func (b *PredicateBuilder) Or(p Predicate) *PredicateBuilder {
	b.p = b.p.Or(p)
	return b
}

// Predicate 返回累积的条件，没有任何条件的时候是零值
func (b *PredicateBuilder) Predicate() Predicate {
	return b.p
}
