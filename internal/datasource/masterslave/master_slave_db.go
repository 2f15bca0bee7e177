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

package masterslave

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecodeclub/eorm-study/internal/datasource"
	"github.com/ecodeclub/eorm-study/internal/datasource/masterslave/slaves"
	"github.com/ecodeclub/eorm-study/internal/datasource/masterslave/slaves/roundrobin"
	"github.com/ecodeclub/eorm-study/internal/datasource/transaction"
	"go.uber.org/multierr"
)

var _ datasource.TxBeginner = &MasterSlavesDB{}
var _ datasource.DataSource = &MasterSlavesDB{}

// MasterSlavesDB 写操作和事务都走主库，读操作轮询从库。
// 从库存在复制延迟，刚写完就要读的场景使用 UseMaster
type MasterSlavesDB struct {
	master *sql.DB
	slaves slaves.Slaves
}

type key string

const (
	master key = "master"
)

func (m *MasterSlavesDB) Query(ctx context.Context, query datasource.Query) (*sql.Rows, error) {
	if _, ok := ctx.Value(master).(bool); ok || m.slaves == nil {
		return m.master.QueryContext(ctx, query.SQL, query.Args...)
	}
	slave, err := m.slaves.Next(ctx)
	if err != nil {
		return nil, err
	}
	return slave.DB.QueryContext(ctx, query.SQL, query.Args...)
}

func (m *MasterSlavesDB) Exec(ctx context.Context, query datasource.Query) (sql.Result, error) {
	return m.master.ExecContext(ctx, query.SQL, query.Args...)
}

func (m *MasterSlavesDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (datasource.Tx, error) {
	tx, err := m.master.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return transaction.NewTx(tx, m), nil
}

func NewMasterSlavesDB(master *sql.DB, opts ...MasterSlavesDBOption) *MasterSlavesDB {
	db := &MasterSlavesDB{
		master: master,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// OpenMasterSlavesDB 按 DSN 打开主库和从库，从库轮询
func OpenMasterSlavesDB(driver string, masterDSN string, slaveDSNs ...string) (*MasterSlavesDB, error) {
	masterDB, err := sql.Open(driver, masterDSN)
	if err != nil {
		return nil, err
	}
	dbs := make([]*sql.DB, 0, len(slaveDSNs))
	for _, dsn := range slaveDSNs {
		db, er := sql.Open(driver, dsn)
		if er != nil {
			for _, opened := range dbs {
				_ = opened.Close()
			}
			return nil, multierr.Append(er, masterDB.Close())
		}
		dbs = append(dbs, db)
	}
	if len(dbs) == 0 {
		return NewMasterSlavesDB(masterDB), nil
	}
	sl, err := roundrobin.NewSlaves(dbs...)
	if err != nil {
		return nil, err
	}
	return NewMasterSlavesDB(masterDB, MasterSlavesWithSlaves(sl)), nil
}

func (m *MasterSlavesDB) Close() error {
	var err error
	if er := m.master.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("master error: %w", er))
	}
	if m.slaves != nil {
		if er := m.slaves.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}
	return err
}

type MasterSlavesDBOption func(db *MasterSlavesDB)

func MasterSlavesWithSlaves(s slaves.Slaves) MasterSlavesDBOption {
	return func(db *MasterSlavesDB) {
		db.slaves = s
	}
}

// UseMaster 强制读请求走主库
func UseMaster(ctx context.Context) context.Context {
	return context.WithValue(ctx, master, true)
}
