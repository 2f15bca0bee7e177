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

// Subquery 子查询，可以用在 WHERE 里面（EQ、In、Exist 等），
// 也可以用在 SELECT 里面，这时候 alias 就是结果的列名
type Subquery struct {
	q     subqueryBuilder
	alias string
}

// subqueryBuilder 把子查询直接写到外层查询的 buffer 里面，
// 参数也追加到外层查询的参数后面
type subqueryBuilder interface {
	buildSubquery(parent *builder) error
}

func (Subquery) expr() (string, error) {
	return "", nil
}

func (Subquery) selected() {}
