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
	"github.com/ecodeclub/eorm-study/internal/datasource"
	"github.com/ecodeclub/eorm-study/internal/errs"
)

// Tx 是一个事务内的 Session，由 DB.BeginTx 创建
type Tx struct {
	baseSession
	tx   datasource.Tx
	done bool
}

func (t *Tx) Commit() error {
	if t.done {
		return errs.ErrTxClosed
	}
	t.done = true
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	if t.done {
		return errs.ErrTxClosed
	}
	t.done = true
	return t.tx.Rollback()
}
