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

package valuer

import (
	"database/sql"
	"reflect"

	"github.com/ecodeclub/eorm-study/internal/model"
)

// primitiveValue 支持基本类型 Value
type primitiveValue struct {
	Value
	val     any
	valType reflect.Type
}

func (s primitiveValue) SetColumns(rows Rows) error {
	if scanner, ok := s.val.(sql.Scanner); ok {
		return rows.Scan(scanner)
	}
	if s.valType.Elem().Kind() == reflect.Struct && s.Value != nil {
		return s.Value.SetColumns(rows)
	}
	return rows.Scan(s.val)
}

// PrimitiveCreator 支持基本类型的 Creator, 基于原生的 Creator 扩展
type PrimitiveCreator struct {
	Creator
}

// NewPrimitiveValue 返回一个封装好的，基于支持基本类型实现的 Value
// 输入 val 必须是一个指针。结构体而且 meta 不为 nil 的时候，按列名映射到字段上；
// 其它情况下（int64、string、sql.NullString 等），直接扫描到 val 里面
func (c PrimitiveCreator) NewPrimitiveValue(val any, meta *model.TableMeta) Value {
	res := primitiveValue{
		val:     val,
		valType: reflect.TypeOf(val),
	}
	if meta != nil {
		res.Value = c.Creator(val, meta)
	}
	return res
}
