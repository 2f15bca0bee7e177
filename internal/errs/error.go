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

package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPointerOnly = errors.New("eorm: 只支持指向结构体的一级指针")
	errValueNotSet = errors.New("eorm: 值未设置")
	ErrNoRows      = errors.New("eorm: 未找到数据")
	// ErrTooManyColumns 过多列
	// 一般是查询的列多于结构体的列
	ErrTooManyColumns = errors.New("eorm: 过多列")

	// ErrCombinationIsNotStruct 不支持的组合类型，eorm 只支持结构体组合
	ErrCombinationIsNotStruct = errors.New("eorm: 不支持的组合类型，eorm 只支持结构体组合")
	ErrSlaveNotFound          = errors.New("eorm: slave不存在")
	ErrOffsetWithoutLimit     = errors.New("eorm: OFFSET 必须和 LIMIT 一起使用")
	ErrEmptyCase              = errors.New("eorm: CASE 表达式至少需要一个 WHEN 分支")
	ErrInsertNoValues         = errors.New("eorm: 插入数据为空")
	ErrTxClosed               = errors.New("eorm: 事务已经结束")
	ErrInvalidSortKey         = errors.New("eorm: 不支持的排序字段")
	ErrUnsupportedEntity      = errors.New("eorm: 不支持的实体类型")
)

func NewInvalidSortKeyError(key string) error {
	return fmt.Errorf("%w %s", ErrInvalidSortKey, key)
}

func NewFieldConflictError(field string) error {
	return fmt.Errorf("eorm: `%s`列冲突", field)
}

func NewInvalidFieldError(field string) error {
	return fmt.Errorf("eorm: 未知字段 %s", field)
}

func NewInvalidColumnError(column string) error {
	return fmt.Errorf("eorm: 未知列 %s", column)
}

func NewValueNotSetError() error {
	return errValueNotSet
}

func NewUnsupportedDriverError(driver string) error {
	return fmt.Errorf("eorm: 不支持driver类型 %s", driver)
}

func NewUnsupportedTableReferenceError(table any) error {
	return fmt.Errorf("eorm: 不支持的TableReference类型 %v", table)
}

func NewErrUnsupportedExpressionType(expr any) error {
	return fmt.Errorf("eorm: 不支持 Expression %T", expr)
}

func NewUnsupportedAssignmentError(assign any) error {
	return fmt.Errorf("eorm: 不支持的 assignment %v", assign)
}
