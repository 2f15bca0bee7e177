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

package schema

import (
	"context"
	"embed"
	"strings"

	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/errs"
)

//go:embed *.sql
var files embed.FS

var driverFiles = map[string]string{
	"sqlite3":  "sqlite.sql",
	"mysql":    "mysql.sql",
	"pgx":      "postgres.sql",
	"postgres": "postgres.sql",
}

// Statements 返回 driver 对应的建表语句，每条语句不带结尾的分号
func Statements(driver string) ([]string, error) {
	name, ok := driverFiles[driver]
	if !ok {
		return nil, errs.NewUnsupportedDriverError(driver)
	}
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, stmt := range strings.Split(string(data), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			res = append(res, stmt)
		}
	}
	return res, nil
}

// Migrate 在一个事务里面执行所有的建表语句，语句都是幂等的
func Migrate(ctx context.Context, db *eorm.DB, driver string) error {
	stmts, err := Statements(driver)
	if err != nil {
		return err
	}
	return db.DoTx(ctx, func(ctx context.Context, tx *eorm.Tx) error {
		for _, stmt := range stmts {
			if err := eorm.RawQuery[any](tx, stmt).Exec(ctx).Err(); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}
