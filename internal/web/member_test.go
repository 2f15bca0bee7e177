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
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/dto"
	"github.com/ecodeclub/eorm-study/internal/initdata"
	"github.com/ecodeclub/eorm-study/internal/page"
	"github.com/ecodeclub/eorm-study/internal/repository"
	"github.com/ecodeclub/eorm-study/internal/schema"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MemberHandlerSuite struct {
	suite.Suite
	db     *eorm.DB
	server *httptest.Server
}

func TestMemberHandlerSuite(t *testing.T) {
	suite.Run(t, &MemberHandlerSuite{})
}

func (s *MemberHandlerSuite) SetupSuite() {
	db, err := eorm.Open("sqlite3", "file:web.db?cache=shared&mode=memory")
	require.NoError(s.T(), err)
	ctx := context.Background()
	require.NoError(s.T(), schema.Migrate(ctx, db, "sqlite3"))
	require.NoError(s.T(), initdata.Init(ctx, db))
	s.db = db
	s.server = httptest.NewServer(NewRouter(NewMemberHandler(repository.NewMemberRepository(db))))
}

func (s *MemberHandlerSuite) TearDownSuite() {
	s.server.Close()
	_ = s.db.Close()
}

func (s *MemberHandlerSuite) get(path string, wantStatus int, res any) {
	t := s.T()
	resp, err := http.Get(s.server.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, wantStatus, resp.StatusCode, path)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(res))
}

func ages(content []*dto.MemberTeamDto) []int {
	res := make([]int, 0, len(content))
	for _, c := range content {
		res = append(res, c.Age)
	}
	return res
}

func (s *MemberHandlerSuite) TestV1() {
	t := s.T()
	var res []*dto.MemberTeamDto
	s.get("/v1/members?teamName=teamA&ageGoe=90", http.StatusOK, &res)
	assert.Equal(t, []int{90, 92, 94, 96, 98}, ages(res))
	require.NotNil(t, res[0].TeamName)
	assert.Equal(t, "teamA", *res[0].TeamName)

	s.get("/v1/members?username=member7", http.StatusOK, &res)
	require.Len(t, res, 1)
	assert.Equal(t, "member7", *res[0].Username)

	// 空字符串等于没有条件
	s.get("/v1/members?username=&ageLoe=2", http.StatusOK, &res)
	assert.Equal(t, []int{0, 1, 2}, ages(res))
}

func (s *MemberHandlerSuite) TestV2() {
	t := s.T()
	var res page.Page[dto.MemberTeamDto]
	s.get("/v2/members?size=3&sort=age,desc", http.StatusOK, &res)
	assert.Equal(t, []int{99, 98, 97}, ages(res.Content))
	assert.Equal(t, int64(100), res.Total)
	assert.Equal(t, 0, res.Page)
	assert.Equal(t, 3, res.Size)

	res = page.Page[dto.MemberTeamDto]{}
	s.get("/v2/members?teamName=teamB&page=100", http.StatusOK, &res)
	assert.Empty(t, res.Content)
	assert.Equal(t, int64(50), res.Total)
	assert.Equal(t, page.DefaultSize, res.Size)
}

func (s *MemberHandlerSuite) TestV3() {
	t := s.T()
	var res page.Page[dto.MemberTeamDto]
	s.get("/v3/members?teamName=teamB&page=1&size=40", http.StatusOK, &res)
	assert.Len(t, res.Content, 10)
	assert.Equal(t, int64(50), res.Total)

	res = page.Page[dto.MemberTeamDto]{}
	s.get("/v3/members?ageGoe=10&ageLoe=19&sort=teamName&sort=age,desc", http.StatusOK, &res)
	assert.Equal(t, []int{18, 16, 14, 12, 10, 19, 17, 15, 13, 11}, ages(res.Content))
	assert.Equal(t, int64(10), res.Total)
}

func (s *MemberHandlerSuite) TestBadRequest() {
	testCases := []struct {
		name string
		path string
	}{
		{name: "age goe", path: "/v1/members?ageGoe=abc"},
		{name: "age loe", path: "/v2/members?ageLoe=1.5"},
		{name: "page", path: "/v2/members?page=first"},
		{name: "size", path: "/v3/members?size=big"},
		{name: "age goe complex", path: "/v3/members?ageGoe=ten"},
		{name: "page simple", path: "/v2/members?page=-"},
		{name: "sort direction", path: "/v3/members?sort=age,up"},
		{name: "sort key", path: "/v2/members?sort=password"},
		{name: "sort key complex", path: "/v3/members?sort=password,desc"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var res ErrorResponse
			s.get(tc.path, http.StatusBadRequest, &res)
			assert.Equal(s.T(), codeInvalidInput, res.Error.Code)
			assert.NotEmpty(s.T(), res.Error.Message)
		})
	}
}

func (s *MemberHandlerSuite) TestHealth() {
	var res map[string]string
	s.get("/health", http.StatusOK, &res)
	assert.Equal(s.T(), map[string]string{"status": "ok"}, res)
}

func TestMemberHandler_StorageError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()
	db, err := eorm.OpenDB("mysql", mockDB)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	h := NewMemberHandler(repository.NewMemberRepository(db))
	recorder := httptest.NewRecorder()
	h.SearchV1(recorder, httptest.NewRequest(http.MethodGet, "/v1/members", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	var res ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	assert.Equal(t, ErrorResponse{Error: ErrorDetail{Code: codeInternalError, Message: "internal server error"}}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}
