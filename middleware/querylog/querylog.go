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

package querylog

import (
	"context"
	"log"
	"time"

	eorm "github.com/ecodeclub/eorm-study"
)

// MiddlewareBuilder 构造打印 SQL 的中间件
type MiddlewareBuilder struct {
	logFunc func(sql string, args ...any)
	// 大于 0 的时候只打印执行时间超过它的查询
	slowThreshold time.Duration
}

func NewBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(sql string, args ...any) {
			log.Println(sql, args)
		},
	}
}

func (b *MiddlewareBuilder) LogFunc(logFunc func(sql string, args ...any)) *MiddlewareBuilder {
	b.logFunc = logFunc
	return b
}

// SlowThreshold 只记录慢查询
func (b *MiddlewareBuilder) SlowThreshold(threshold time.Duration) *MiddlewareBuilder {
	b.slowThreshold = threshold
	return b
}

func (b *MiddlewareBuilder) Build() eorm.Middleware {
	return func(next eorm.HandleFunc) eorm.HandleFunc {
		return func(ctx context.Context, queryContext *eorm.QueryContext) *eorm.QueryResult {
			query := queryContext.GetQuery()
			if b.slowThreshold <= 0 {
				b.logFunc(query.SQL, query.Args...)
				return next(ctx, queryContext)
			}
			start := time.Now()
			res := next(ctx, queryContext)
			if time.Since(start) >= b.slowThreshold {
				b.logFunc(query.SQL, query.Args...)
			}
			return res
		}
	}
}
