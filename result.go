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
	"database/sql"
)

// Result 是写操作的结果，对 sql.Result 的封装
type Result struct {
	err error
	res sql.Result
}

func (r Result) Err() error {
	return r.err
}

func (r Result) LastInsertId() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, nil
	}
	return r.res.LastInsertId()
}

func (r Result) RowsAffected() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, nil
	}
	return r.res.RowsAffected()
}

var _ sql.Result = returningResult{}

// returningResult 是 INSERT ... RETURNING 的结果
type returningResult struct {
	ids []int64
}

// LastInsertId 和 MySQL 一样，返回第一行的自增主键
func (r returningResult) LastInsertId() (int64, error) {
	if len(r.ids) == 0 {
		return 0, nil
	}
	return r.ids[0], nil
}

func (r returningResult) RowsAffected() (int64, error) {
	return int64(len(r.ids)), nil
}
