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
	"database/sql"

	"github.com/ecodeclub/eorm-study/internal/datasource"
	"github.com/ecodeclub/eorm-study/internal/datasource/masterslave"
	"github.com/ecodeclub/eorm-study/internal/datasource/single"
	"github.com/ecodeclub/eorm-study/internal/dialect"
	"github.com/ecodeclub/eorm-study/internal/model"
	"github.com/ecodeclub/eorm-study/internal/valuer"
	"go.uber.org/multierr"
)

// DBOption configure DB
type DBOption func(db *DB)

// DB represents a database
type DB struct {
	baseSession
	ds datasource.DataSource
}

// DBWithMiddlewares 设置中间件，按照传入的顺序执行
func DBWithMiddlewares(ms ...Middleware) DBOption {
	return func(db *DB) {
		db.ms = ms
	}
}

func DBWithMetaRegistry(r model.MetaRegistry) DBOption {
	return func(db *DB) {
		db.metaRegistry = r
	}
}

// Open 创建一个 ORM 实例
// 注意该实例是一个无状态的对象，你应该尽可能复用它
func Open(driver string, dsn string, opts ...DBOption) (*DB, error) {
	db, err := single.OpenDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	return OpenDS(driver, db, opts...)
}

// OpenDB 使用已有的 *sql.DB，一般用于测试，例如 sqlmock
func OpenDB(driver string, db *sql.DB, opts ...DBOption) (*DB, error) {
	return OpenDS(driver, single.NewDB(db), opts...)
}

// OpenMasterSlaves 写操作走 masterDSN，读操作轮询 slaveDSNs
func OpenMasterSlaves(driver string, masterDSN string, slaveDSNs []string, opts ...DBOption) (*DB, error) {
	ds, err := masterslave.OpenMasterSlavesDB(driver, masterDSN, slaveDSNs...)
	if err != nil {
		return nil, err
	}
	return OpenDS(driver, ds, opts...)
}

// OpenDS 在任意的数据源上创建 DB
func OpenDS(driver string, ds datasource.DataSource, opts ...DBOption) (*DB, error) {
	dl, err := dialect.Of(driver)
	if err != nil {
		return nil, err
	}
	orm := &DB{
		baseSession: baseSession{
			executor: ds,
			core: core{
				metaRegistry: model.NewMetaRegistry(),
				dialect:      dl,
				valCreator: valuer.PrimitiveCreator{
					Creator: valuer.NewReflectValue,
				},
			},
		},
		ds: ds,
	}
	for _, o := range opts {
		o(orm)
	}
	return orm, nil
}

// UseMaster 读写分离的时候，强制读请求走主库
func UseMaster(ctx context.Context) context.Context {
	return masterslave.UseMaster(ctx)
}

// BeginTx 开启事务
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.ds.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		baseSession: baseSession{
			core:     db.core,
			executor: tx,
		},
		tx: tx,
	}, nil
}

// DoTx 开启事务执行 fn。fn 返回 error 或者 panic 的时候回滚，否则提交。
// 回滚本身失败的时候，返回的 error 同时包含 fn 和回滚的错误
func (db *DB) DoTx(ctx context.Context,
	fn func(ctx context.Context, tx *Tx) error,
	opts *sql.TxOptions) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	panicked := true
	defer func() {
		if panicked || err != nil {
			// panic 会继续向上传播
			err = multierr.Append(err, tx.Rollback())
			return
		}
		err = tx.Commit()
	}()
	err = fn(ctx, tx)
	panicked = false
	return err
}

// Wait 会等待数据库连接
// 注意只能用于测试
func (db *DB) Wait() error {
	if w, ok := db.ds.(interface{ Wait() error }); ok {
		return w.Wait()
	}
	return nil
}

func (db *DB) Close() error {
	return db.ds.Close()
}
