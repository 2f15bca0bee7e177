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

// Assignable represents that something could be used alias "assignment" statement
type Assignable interface {
	assign()
}

// Assignment represents assignment statement
type Assignment binaryExpr

// Assign 生成 column = value，value 可以是值，也可以是表达式，
// 例如 Assign("Age", C("Age").Add(1))
func Assign(column string, value any) Assignment {
	return Assignment{left: C(column), op: opEQ, right: valueOf(value)}
}

func (Assignment) assign() {}
