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

package valuer

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecodeclub/eorm-study/internal/errs"
	"github.com/ecodeclub/eorm-study/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectValue_Field(t *testing.T) {
	meta, err := model.NewMetaRegistry().Get(&TestModel{})
	require.NoError(t, err)
	username := "member1"
	entity := &TestModel{Id: 1, Username: &username, Age: 10, Audit: Audit{CreatedBy: "admin"}}

	testCases := []struct {
		name    string
		field   string
		wantVal any
		wantErr error
	}{
		{name: "int64", field: "Id", wantVal: int64(1)},
		{name: "pointer", field: "Username", wantVal: &username},
		{name: "combination", field: "CreatedBy", wantVal: "admin"},
		{name: "column name is not field", field: "created_by", wantErr: errs.NewInvalidFieldError("created_by")},
		{name: "unknown", field: "Invalid", wantErr: errs.NewInvalidFieldError("Invalid")},
	}
	val := NewReflectValue(entity, meta)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := val.Field(tc.field)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantVal, v)
		})
	}
}

func TestReflectValue_SetColumns(t *testing.T) {
	testSetColumns(t, NewReflectValue)
}

func TestPrimitiveValue_SetColumns(t *testing.T) {
	testSetColumns(t, PrimitiveCreator{Creator: NewReflectValue}.NewPrimitiveValue)

	creator := PrimitiveCreator{Creator: NewReflectValue}
	t.Run("int64", func(t *testing.T) {
		rows := mockRows(t, sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(4)))
		var cnt int64
		require.NoError(t, creator.NewPrimitiveValue(&cnt, nil).SetColumns(rows))
		assert.Equal(t, int64(4), cnt)
	})
	t.Run("scanner", func(t *testing.T) {
		rows := mockRows(t, sqlmock.NewRows([]string{"username"}).AddRow(nil))
		ns := sql.NullString{String: "dirty", Valid: true}
		require.NoError(t, creator.NewPrimitiveValue(&ns, nil).SetColumns(rows))
		assert.False(t, ns.Valid)
	})
}

func testSetColumns(t *testing.T, creator Creator) {
	meta, err := model.NewMetaRegistry().Get(&TestModel{})
	require.NoError(t, err)
	testCases := []struct {
		name       string
		rows       *sqlmock.Rows
		wantEntity *TestModel
		wantErr    error
	}{
		{
			name: "normal",
			rows: sqlmock.NewRows([]string{"member_id", "username", "age", "created_by"}).
				AddRow(int64(1), "member1", 10, "admin"),
			wantEntity: &TestModel{Id: 1, Username: func() *string { s := "member1"; return &s }(), Age: 10, Audit: Audit{CreatedBy: "admin"}},
		},
		{
			name:       "null",
			rows:       sqlmock.NewRows([]string{"member_id", "username"}).AddRow(int64(2), nil),
			wantEntity: &TestModel{Id: 2},
		},
		{
			name:    "invalid column",
			rows:    sqlmock.NewRows([]string{"member_id", "team_name"}).AddRow(int64(2), "teamA"),
			wantErr: errs.NewInvalidColumnError("team_name"),
		},
		{
			name: "too many columns",
			rows: sqlmock.NewRows([]string{"member_id", "username", "age", "created_by", "extra"}).
				AddRow(int64(1), "member1", 10, "admin", 1),
			wantErr: errs.ErrTooManyColumns,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := mockRows(t, tc.rows)
			entity := &TestModel{}
			err := creator(entity, meta).SetColumns(rows)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantEntity, entity)
		})
	}
}

func mockRows(t *testing.T, rows *sqlmock.Rows) *sql.Rows {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectQuery("SELECT .*").WillReturnRows(rows)
	res, err := db.QueryContext(context.Background(), "SELECT *")
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })
	require.True(t, res.Next())
	return res
}

type TestModel struct {
	Id       int64 `eorm:"primary_key,auto_increment,column=member_id"`
	Username *string
	Age      int
	Audit
}

type Audit struct {
	CreatedBy string
}
