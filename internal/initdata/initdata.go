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

package initdata

import (
	"context"
	"fmt"

	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/entity"
	"github.com/ecodeclub/eorm-study/internal/repository"
	"go.uber.org/multierr"
)

// MemberCount 初始化的 member 数量
const MemberCount = 100

// Init 插入 teamA、teamB 和 MemberCount 个 member，
// 第 i 个 member 叫做 member{i}，年龄是 i，偶数在 teamA，奇数在 teamB。
// 已经有 team 的时候什么都不做
func Init(ctx context.Context, db *eorm.DB) error {
	cnt, err := eorm.NewSelector[entity.Team](db).Count(ctx)
	if err != nil || cnt > 0 {
		return err
	}
	uow, err := repository.Begin(ctx, db, nil)
	if err != nil {
		return err
	}
	teamA, teamB := entity.NewTeam("teamA"), entity.NewTeam("teamB")
	entities := []any{teamA, teamB}
	for i := 0; i < MemberCount; i++ {
		team := teamB
		if i%2 == 0 {
			team = teamA
		}
		entities = append(entities, entity.NewMember(fmt.Sprintf("member%d", i), i, team))
	}
	for _, e := range entities {
		if err = uow.Persist(e); err != nil {
			return multierr.Append(err, uow.Rollback())
		}
	}
	// Flush 失败的时候 Commit 会回滚
	return uow.Commit(ctx)
}
