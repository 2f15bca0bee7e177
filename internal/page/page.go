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

package page

import (
	"context"
)

const DefaultSize = 20

// Sort 排序，Property 是对外暴露的字段名，由使用方决定如何映射到列上
type Sort struct {
	Property string
	Desc     bool
}

// Pageable 分页参数，Page 从 0 开始
type Pageable struct {
	Page int
	Size int
	Sort []Sort
}

func Of(page, size int, sorts ...Sort) Pageable {
	if size <= 0 {
		size = DefaultSize
	}
	if page < 0 {
		page = 0
	}
	return Pageable{Page: page, Size: size, Sort: sorts}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Content []*T  `json:"content"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
}

// TotalPages 总页数
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p *Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}

// CountFunc 计算总数，只有在必要的时候才会被调用
type CountFunc func(ctx context.Context) (int64, error)

// New 根据 content 的大小判断是否需要调用 countFn：
//   - 第一页，并且 content 比 Size 少，总数就是 len(content)
//   - 不是第一页，content 不为空并且比 Size 少，说明这是最后一页，总数是 offset + len(content)
//
// 其它情况下调用 countFn
func New[T any](ctx context.Context, content []*T, pageable Pageable, countFn CountFunc) (*Page[T], error) {
	res := &Page[T]{
		Content: content,
		Page:    pageable.Page,
		Size:    pageable.Size,
	}
	offset := pageable.Offset()
	if offset == 0 {
		if pageable.Size > len(content) {
			res.Total = int64(len(content))
			return res, nil
		}
	} else if len(content) != 0 && pageable.Size > len(content) {
		res.Total = int64(offset + len(content))
		return res, nil
	}
	total, err := countFn(ctx)
	if err != nil {
		return nil, err
	}
	res.Total = total
	return res, nil
}
