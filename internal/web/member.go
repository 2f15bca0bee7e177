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
	"net/http"

	"github.com/ecodeclub/eorm-study/internal/dto"
	"github.com/ecodeclub/eorm-study/internal/page"
	"github.com/ecodeclub/eorm-study/internal/repository"
)

type MemberHandler struct {
	repo *repository.MemberRepository
}

func NewMemberHandler(repo *repository.MemberRepository) *MemberHandler {
	return &MemberHandler{repo: repo}
}

// SearchV1 GET /v1/members，不分页
func (h *MemberHandler) SearchV1(w http.ResponseWriter, r *http.Request) {
	cond, err := parseCondition(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}
	res, err := h.repo.Search(r.Context(), cond)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// SearchV2 GET /v2/members，内容和总数一次查询
func (h *MemberHandler) SearchV2(w http.ResponseWriter, r *http.Request) {
	h.searchPage(w, r, h.repo.SearchPageSimple)
}

// SearchV3 GET /v3/members，必要的时候才会查询总数
func (h *MemberHandler) SearchV3(w http.ResponseWriter, r *http.Request) {
	h.searchPage(w, r, h.repo.SearchPageComplex)
}

type searchPageFunc func(ctx context.Context, cond dto.MemberSearchCondition,
	pageable page.Pageable) (*page.Page[dto.MemberTeamDto], error)

func (h *MemberHandler) searchPage(w http.ResponseWriter, r *http.Request, search searchPageFunc) {
	q := r.URL.Query()
	cond, err := parseCondition(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}
	pageable, err := parsePageable(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}
	res, err := search(r.Context(), cond, pageable)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
