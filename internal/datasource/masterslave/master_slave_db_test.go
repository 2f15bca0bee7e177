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
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecodeclub/eorm-study/internal/datasource"
	"github.com/ecodeclub/eorm-study/internal/datasource/masterslave/slaves"
	"github.com/ecodeclub/eorm-study/internal/datasource/masterslave/slaves/roundrobin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func ExampleMasterSlavesDB_Close() {
	ms, _ := OpenMasterSlavesDB("sqlite3", "file:ms_example?mode=memory",
		"file:ms_example_s1?mode=memory", "file:ms_example_s2?mode=memory")
	err := ms.Close()
	if err == nil {
		fmt.Println("close")
	}

	// Output:
	// close
}

func ExampleMasterSlavesDB_BeginTx() {
	sqlite3db, _ := sql.Open("sqlite3", "file:ms_tx_example?mode=memory")
	db := NewMasterSlavesDB(sqlite3db)
	tx, err := db.BeginTx(context.Background(), &sql.TxOptions{})
	if err == nil {
		fmt.Println("Begin")
	}
	err = tx.Commit()
	if err == nil {
		fmt.Println("Commit")
	}
	// Output:
	// Begin
	// Commit
}

func TestMasterSlavesDB_BeginTx(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	db := NewMasterSlavesDB(mockDB)

	// Begin 失败
	mock.ExpectBegin().WillReturnError(errors.New("begin failed"))
	tx, err := db.BeginTx(context.Background(), &sql.TxOptions{})
	assert.Equal(t, errors.New("begin failed"), err)
	assert.Nil(t, tx)

	mock.ExpectBegin()
	tx, err = db.BeginTx(context.Background(), &sql.TxOptions{})
	assert.Nil(t, err)
	assert.NotNil(t, tx)
}

type MasterSlaveSuite struct {
	suite.Suite
	masterDB *sql.DB
	master   sqlmock.Sqlmock
	slaveDBs []*sql.DB
	slaves   []sqlmock.Sqlmock
}

func (ms *MasterSlaveSuite) SetupTest() {
	var err error
	ms.masterDB, ms.master, err = sqlmock.New()
	require.NoError(ms.T(), err)
	ms.slaveDBs = make([]*sql.DB, 3)
	ms.slaves = make([]sqlmock.Sqlmock, 3)
	for i := range ms.slaveDBs {
		ms.slaveDBs[i], ms.slaves[i], err = sqlmock.New()
		require.NoError(ms.T(), err)
	}
}

func (ms *MasterSlaveSuite) TearDownTest() {
	_ = ms.masterDB.Close()
	for _, db := range ms.slaveDBs {
		_ = db.Close()
	}
}

func (ms *MasterSlaveSuite) TestQuery() {
	query := datasource.Query{SQL: "SELECT `username` FROM `member`"}
	testCases := []struct {
		name     string
		ctx      context.Context
		slaves   slaves.Slaves
		reqCnt   int
		before   func()
		wantResp []string
	}{
		{
			name:   "select default use slave",
			ctx:    context.Background(),
			slaves: ms.newSlaves(ms.slaveDBs...),
			reqCnt: 3,
			before: func() {
				for i, mock := range ms.slaves {
					mock.ExpectQuery("SELECT .*").WillReturnRows(
						sqlmock.NewRows([]string{"username"}).AddRow(fmt.Sprintf("slave%d", i+1)))
				}
			},
			wantResp: []string{"slave1", "slave2", "slave3"},
		},
		{
			name:   "use master",
			ctx:    UseMaster(context.Background()),
			slaves: ms.newSlaves(ms.slaveDBs...),
			reqCnt: 1,
			before: func() {
				ms.master.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("master"))
			},
			wantResp: []string{"master"},
		},
		{
			name:   "no slaves",
			ctx:    context.Background(),
			reqCnt: 1,
			before: func() {
				ms.master.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("master"))
			},
			wantResp: []string{"master"},
		},
	}

	for _, tc := range testCases {
		ms.T().Run(tc.name, func(t *testing.T) {
			tc.before()
			opts := make([]MasterSlavesDBOption, 0, 1)
			if tc.slaves != nil {
				opts = append(opts, MasterSlavesWithSlaves(tc.slaves))
			}
			db := NewMasterSlavesDB(ms.masterDB, opts...)
			var resp []string
			for i := 0; i < tc.reqCnt; i++ {
				rows, err := db.Query(tc.ctx, query)
				require.NoError(t, err)
				require.True(t, rows.Next())
				var val string
				require.NoError(t, rows.Scan(&val))
				_ = rows.Close()
				resp = append(resp, val)
			}
			assert.ElementsMatch(t, tc.wantResp, resp)
		})
	}
}

func (ms *MasterSlaveSuite) TestExec() {
	db := NewMasterSlavesDB(ms.masterDB, MasterSlavesWithSlaves(ms.newSlaves(ms.slaveDBs...)))
	ms.master.ExpectExec("^UPDATE (.+)").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
	res, err := db.Exec(context.Background(), datasource.Query{
		SQL:  "UPDATE `member` SET `age`=`age`+?",
		Args: []any{1},
	})
	require.NoError(ms.T(), err)
	affected, err := res.RowsAffected()
	require.NoError(ms.T(), err)
	assert.Equal(ms.T(), int64(2), affected)
	assert.NoError(ms.T(), ms.master.ExpectationsWereMet())
}

func (ms *MasterSlaveSuite) newSlaves(dbs ...*sql.DB) slaves.Slaves {
	res, err := roundrobin.NewSlaves(dbs...)
	require.NoError(ms.T(), err)
	return res
}

func TestMasterSlave(t *testing.T) {
	suite.Run(t, &MasterSlaveSuite{})
}
