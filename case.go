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

// CaseExpr 代表 CASE ... WHEN ... THEN ... ELSE ... END
// base 为 nil 的时候是搜索型的 CASE，WHEN 后面是条件
type CaseExpr struct {
	base  Expr
	whens []caseWhen
	els   Expr
	alias string
}

type caseWhen struct {
	when Expr
	then Expr
}

// Case 简单 CASE，比较 base 和每一个 WHEN 的值
//
//	Case(C("Age")).When(10, "ten").When(20, "twenty").Else("other")
func Case(base Expr) CaseExpr {
	return CaseExpr{base: base}
}

// CaseWhen 搜索型的 CASE，WHEN 后面是 Predicate
//
//	CaseWhen().When(C("Age").Between(0, 20), "0~20").Else("other")
func CaseWhen() CaseExpr {
	return CaseExpr{}
}

func (c CaseExpr) When(cond any, then any) CaseExpr {
	whens := make([]caseWhen, len(c.whens), len(c.whens)+1)
	copy(whens, c.whens)
	c.whens = append(whens, caseWhen{when: valueOf(cond), then: valueOf(then)})
	return c
}

func (c CaseExpr) Else(val any) CaseExpr {
	c.els = valueOf(val)
	return c
}

func (c CaseExpr) As(alias string) CaseExpr {
	c.alias = alias
	return c
}

// ASC 按照 CASE 的结果升序
func (c CaseExpr) ASC() OrderBy {
	return OrderBy{exprs: []Expr{c}, order: "ASC"}
}

// DESC 按照 CASE 的结果降序
func (c CaseExpr) DESC() OrderBy {
	return OrderBy{exprs: []Expr{c}, order: "DESC"}
}

func (CaseExpr) expr() (string, error) {
	return "", nil
}

func (CaseExpr) selected() {}
