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

import (
	"context"

	"github.com/ecodeclub/eorm-study/internal/model"
)

// QueryContext 是中间件能够拿到的查询上下文
type QueryContext struct {
	// Type 声明查询类型。即 RAW, SELECT, UPDATE, DELETE 和 INSERT
	Type string
	meta *model.TableMeta
	q    Query
}

func (qc *QueryContext) GetQuery() Query {
	return qc.q
}

// TableName 返回主表的表名，RAW 查询为空
func (qc *QueryContext) TableName() string {
	if qc.meta == nil {
		return ""
	}
	return qc.meta.TableName
}

type QueryResult struct {
	// Result 在不同的查询里面，类型是不同的
	// Selector.Get 里面，这会是单个结果
	// Selector.GetMulti，这会是一个切片
	// 其它情况下，它会是 Result 类型
	Result any
	Err    error
}

type Middleware func(next HandleFunc) HandleFunc

type HandleFunc func(ctx context.Context, queryContext *QueryContext) *QueryResult
