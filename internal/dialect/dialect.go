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

package dialect

import (
	"strconv"

	"github.com/ecodeclub/eorm-study/internal/errs"
)

// Dialect specify config or behavior of special SQL dialects
type Dialect struct {
	Name string
	// in MYSQL, it's "`"
	Quote byte
	// Returning 表示支持 INSERT ... RETURNING，
	// 这种情况下自增主键通过 RETURNING 拿回来，而不是 LastInsertId
	Returning bool
	// 为空的时候使用 ?
	placeholder func(idx int) string
}

// Placeholder 返回第 idx 个参数的占位符，idx 从 1 开始
func (d Dialect) Placeholder(idx int) string {
	if d.placeholder == nil {
		return "?"
	}
	return d.placeholder(idx)
}

var (
	MySQL = Dialect{
		Name:  "MySQL",
		Quote: '`',
	}
	SQLite = Dialect{
		Name:  "SQLite",
		Quote: '`',
	}
	PostgreSQL = Dialect{
		Name:      "PostgreSQL",
		Quote:     '"',
		Returning: true,
		placeholder: func(idx int) string {
			return "$" + strconv.Itoa(idx)
		},
	}
)

// Of 根据 database/sql 的 driver 名字找到对应的方言
func Of(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "pgx", "postgres":
		return PostgreSQL, nil
	default:
		return Dialect{}, errs.NewUnsupportedDriverError(driver)
	}
}
