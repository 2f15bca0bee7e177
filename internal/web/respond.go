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
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ecodeclub/eorm-study/internal/errs"
)

const (
	codeInvalidInput  = "INVALID_INPUT"
	codeInternalError = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// handleError 排序字段不合法是调用方的错误，其它都是存储层的错误
func handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, errs.ErrInvalidSortKey) {
		respondError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}
	log.Printf("web: %v", err)
	respondError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
}
