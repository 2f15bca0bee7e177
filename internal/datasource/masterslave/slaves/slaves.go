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

package slaves

import (
	"context"
	"database/sql"
)

// Slaves 决定读请求落到哪个从库上
type Slaves interface {
	Next(ctx context.Context) (Slave, error)
	Close() error
}

type Slave struct {
	SlaveName string
	*sql.DB
}
