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

package repository

import (
	"context"

	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/entity"
)

type TeamRepository struct {
	sess eorm.Session
}

func NewTeamRepository(sess eorm.Session) *TeamRepository {
	return &TeamRepository{sess: sess}
}

func (r *TeamRepository) WithSession(sess eorm.Session) *TeamRepository {
	return &TeamRepository{sess: sess}
}

// Save 插入 team，并且把外键同步到已经关联的 member 上
func (r *TeamRepository) Save(ctx context.Context, t *entity.Team) error {
	res := eorm.NewInserter[entity.Team](r.sess).Values(t).Exec(ctx)
	if err := res.Err(); err != nil {
		return err
	}
	if t.Id == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.Id = id
	}
	for _, m := range t.Members {
		m.ResolveTeamId()
	}
	return nil
}

func (r *TeamRepository) FindById(ctx context.Context, id int64) (*entity.Team, error) {
	return eorm.NewSelector[entity.Team](r.sess).
		Where(eorm.C("Id").EQ(id)).
		Get(ctx)
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*entity.Team, error) {
	return eorm.NewSelector[entity.Team](r.sess).
		Where(eorm.C("Name").EQ(name)).
		Get(ctx)
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]*entity.Team, error) {
	return eorm.NewSelector[entity.Team](r.sess).
		OrderBy(eorm.ASC("Id")).
		GetMulti(ctx)
}

// LoadMembers 填充 t.Members，覆盖原来的内容
func (r *TeamRepository) LoadMembers(ctx context.Context, t *entity.Team) error {
	members, err := eorm.NewSelector[entity.Member](r.sess).
		Where(eorm.C("TeamId").EQ(t.Id)).
		OrderBy(eorm.ASC("Id")).
		GetMulti(ctx)
	if err != nil {
		return err
	}
	t.Members = nil
	for _, m := range members {
		m.ChangeTeam(t)
	}
	return nil
}
