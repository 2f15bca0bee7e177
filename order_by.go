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

// OrderBy specify fields and ASC
type OrderBy struct {
	exprs []Expr
	order string
	// FIRST 或者 LAST，为空的时候使用数据库的默认行为
	nulls string
}

// ASC means ORDER BY fields ASC
func ASC(fields ...string) OrderBy {
	return orderBy("ASC", fields)
}

// DESC means ORDER BY fields DESC
func DESC(fields ...string) OrderBy {
	return orderBy("DESC", fields)
}

func orderBy(order string, fields []string) OrderBy {
	exprs := make([]Expr, 0, len(fields))
	for _, f := range fields {
		exprs = append(exprs, C(f))
	}
	return OrderBy{
		exprs: exprs,
		order: order,
	}
}

// NullsFirst NULL 排在最前面
func (o OrderBy) NullsFirst() OrderBy {
	o.nulls = "FIRST"
	return o
}

// NullsLast NULL 排在最后面
func (o OrderBy) NullsLast() OrderBy {
	o.nulls = "LAST"
	return o
}
