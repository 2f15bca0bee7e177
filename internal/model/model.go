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

package model

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/ecodeclub/eorm-study/internal/errs"
)

const (
	tagKeyPrimaryKey = "primary_key"
	tagKeyAutoIncr   = "auto_increment"
	tagKeyColumn     = "column"
	tagIgnore        = "-"
)

// TableMeta represents data model, or a table
type TableMeta struct {
	TableName string
	Columns   []*ColumnMeta
	// FieldMap 是字段名到列元数据的映射
	FieldMap map[string]*ColumnMeta
	// ColumnMap 是列名到列元数据的映射
	ColumnMap map[string]*ColumnMeta
	Typ       reflect.Type
}

// ColumnMeta represents model's field, or column
type ColumnMeta struct {
	ColumnName      string
	FieldName       string
	Typ             reflect.Type
	IsPrimaryKey    bool
	IsAutoIncrement bool
	// FieldIndexes 用于 reflect.Value.FieldByIndex，组合的字段会有多个下标
	FieldIndexes []int
}

// TableName 用户实现这个接口来返回自定义的表名
type TableName interface {
	TableName() string
}

// TableMetaOption represents options of TableMeta, this options will cover default cover.
type TableMetaOption func(meta *TableMeta)

// MetaRegistry stores table metadata
type MetaRegistry interface {
	Get(table interface{}) (*TableMeta, error)
	Register(table interface{}, opts ...TableMetaOption) (*TableMeta, error)
}

func NewMetaRegistry() MetaRegistry {
	return &tagMetaRegistry{}
}

// tagMetaRegistry is the default implementation based on tag eorm
type tagMetaRegistry struct {
	metas sync.Map
}

// Get the metadata for each column of the data table,
// If there is none, it will register one and return the metadata for each column
func (t *tagMetaRegistry) Get(table interface{}) (*TableMeta, error) {
	if v, ok := t.metas.Load(reflect.TypeOf(table)); ok {
		return v.(*TableMeta), nil
	}
	return t.Register(table)
}

// Register function generates a metadata for each column and places it in a thread-safe mapping to facilitate direct access to the metadata.
// And the metadata can be modified by user-defined methods opts
func (t *tagMetaRegistry) Register(table interface{}, opts ...TableMetaOption) (*TableMeta, error) {
	rtype := reflect.TypeOf(table)
	if rtype == nil || rtype.Kind() != reflect.Pointer || rtype.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}
	v := rtype.Elem()
	lens := v.NumField()
	columnMetas := make([]*ColumnMeta, 0, lens)
	fieldMap := make(map[string]*ColumnMeta, lens)
	columnMap := make(map[string]*ColumnMeta, lens)
	if err := t.parseFields(v, nil, &columnMetas, fieldMap, columnMap); err != nil {
		return nil, err
	}

	tableName := underscoreName(v.Name())
	if tn, ok := table.(TableName); ok {
		tableName = tn.TableName()
	}

	tableMeta := &TableMeta{
		Columns:   columnMetas,
		TableName: tableName,
		Typ:       rtype,
		FieldMap:  fieldMap,
		ColumnMap: columnMap,
	}
	for _, o := range opts {
		o(tableMeta)
	}
	t.metas.Store(rtype, tableMeta)
	return tableMeta, nil
}

func (t *tagMetaRegistry) parseFields(v reflect.Type, parentIndexes []int,
	columnMetas *[]*ColumnMeta, fieldMap, columnMap map[string]*ColumnMeta) error {
	for i := 0; i < v.NumField(); i++ {
		structField := v.Field(i)
		if !structField.IsExported() {
			continue
		}
		indexes := make([]int, len(parentIndexes), len(parentIndexes)+1)
		copy(indexes, parentIndexes)
		indexes = append(indexes, i)

		tag := structField.Tag.Get("eorm")
		if tag == tagIgnore {
			continue
		}

		if structField.Anonymous {
			if structField.Type.Kind() != reflect.Struct {
				return errs.ErrCombinationIsNotStruct
			}
			if err := t.parseFields(structField.Type, indexes, columnMetas, fieldMap, columnMap); err != nil {
				return err
			}
			continue
		}

		columnMeta := &ColumnMeta{
			ColumnName:   underscoreName(structField.Name),
			FieldName:    structField.Name,
			Typ:          structField.Type,
			FieldIndexes: indexes,
		}
		for _, item := range strings.Split(tag, ",") {
			key, val, _ := strings.Cut(strings.TrimSpace(item), "=")
			switch key {
			case tagKeyPrimaryKey:
				columnMeta.IsPrimaryKey = true
			case tagKeyAutoIncr:
				columnMeta.IsAutoIncrement = true
			case tagKeyColumn:
				columnMeta.ColumnName = val
			}
		}
		if _, ok := fieldMap[columnMeta.FieldName]; ok {
			return errs.NewFieldConflictError(columnMeta.FieldName)
		}
		if _, ok := columnMap[columnMeta.ColumnName]; ok {
			return errs.NewFieldConflictError(columnMeta.ColumnName)
		}
		*columnMetas = append(*columnMetas, columnMeta)
		fieldMap[columnMeta.FieldName] = columnMeta
		columnMap[columnMeta.ColumnName] = columnMeta
	}
	return nil
}

// IgnoreFieldsOption function provide an option to ignore some fields when register table.
func IgnoreFieldsOption(fieldNames ...string) TableMetaOption {
	return func(meta *TableMeta) {
		for _, field := range fieldNames {
			cm, ok := meta.FieldMap[field]
			if !ok {
				continue
			}
			for index, column := range meta.Columns {
				if column.FieldName == field {
					meta.Columns = append(meta.Columns[:index], meta.Columns[index+1:]...)
					break
				}
			}
			delete(meta.FieldMap, field)
			delete(meta.ColumnMap, cm.ColumnName)
		}
	}
}

// WithTableName 覆盖默认的表名
func WithTableName(tableName string) TableMetaOption {
	return func(meta *TableMeta) {
		meta.TableName = tableName
	}
}

// underscoreName function mainly converts upper case to lower case and adds an underscore in between
func underscoreName(tableName string) string {
	var buf []byte
	for i, v := range tableName {
		if unicode.IsUpper(v) {
			if i != 0 {
				buf = append(buf, '_')
			}
			buf = append(buf, byte(unicode.ToLower(v)))
		} else {
			buf = append(buf, byte(v))
		}
	}
	return string(buf)
}
