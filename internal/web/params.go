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

package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ecodeclub/eorm-study/internal/dto"
	"github.com/ecodeclub/eorm-study/internal/page"
)

// parseCondition 读取 username、teamName、ageGoe 和 ageLoe，缺失的参数不是错误
func parseCondition(q url.Values) (dto.MemberSearchCondition, error) {
	cond := dto.MemberSearchCondition{
		Username: q.Get("username"),
		TeamName: q.Get("teamName"),
	}
	var err error
	if cond.AgeGoe, err = optionalInt(q, "ageGoe"); err != nil {
		return cond, err
	}
	if cond.AgeLoe, err = optionalInt(q, "ageLoe"); err != nil {
		return cond, err
	}
	return cond, nil
}

// parsePageable page 从 0 开始，size 默认 page.DefaultSize，
// sort 可以出现多次，格式是 key[,asc|desc]
func parsePageable(q url.Values) (page.Pageable, error) {
	p, err := optionalInt(q, "page")
	if err != nil {
		return page.Pageable{}, err
	}
	size, err := optionalInt(q, "size")
	if err != nil {
		return page.Pageable{}, err
	}
	var sorts []page.Sort
	for _, s := range q["sort"] {
		sort, err := parseSort(s)
		if err != nil {
			return page.Pageable{}, err
		}
		sorts = append(sorts, sort)
	}
	var pageNum, pageSize int
	if p != nil {
		pageNum = *p
	}
	if size != nil {
		pageSize = *size
	}
	return page.Of(pageNum, pageSize, sorts...), nil
}

func parseSort(s string) (page.Sort, error) {
	key, dir, _ := strings.Cut(s, ",")
	res := page.Sort{Property: strings.TrimSpace(key)}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		res.Desc = true
	default:
		return res, fmt.Errorf("invalid sort direction %q", dir)
	}
	return res, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, v)
	}
	return &i, nil
}
