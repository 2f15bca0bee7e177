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
	"database/sql"

	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/entity"
	"github.com/ecodeclub/eorm-study/internal/errs"
	"go.uber.org/multierr"
)

// UnitOfWork 事务范围内的一级缓存。
// 同一个 id 在 Clear 之前只会查询一次数据库，
// 批量更新和删除绕过了这里，调用方需要在批量操作之后 Flush 再 Clear
type UnitOfWork struct {
	tx      *eorm.Tx
	members map[int64]*managedMember
	teams   map[int64]*managedTeam

	newTeams   []*entity.Team
	newMembers []*entity.Member
}

type managedMember struct {
	entity   *entity.Member
	snapshot entity.Member
}

func (m *managedMember) dirty() bool {
	s, e := m.snapshot, m.entity
	return s.Age != e.Age || !equalPtr(s.Username, e.Username) || !equalPtr(s.TeamId, e.TeamId)
}

type managedTeam struct {
	entity *entity.Team
	name   string
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Begin 开启事务
func Begin(ctx context.Context, db *eorm.DB, opts *sql.TxOptions) (*UnitOfWork, error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{
		tx:      tx,
		members: make(map[int64]*managedMember),
		teams:   make(map[int64]*managedTeam),
	}, nil
}

// Members 返回绑定在这个事务上的 MemberRepository，它不经过一级缓存
func (u *UnitOfWork) Members() *MemberRepository {
	return NewMemberRepository(u.tx)
}

func (u *UnitOfWork) Teams() *TeamRepository {
	return NewTeamRepository(u.tx)
}

// Persist 登记新的实体，Flush 的时候才会写入数据库
// 只支持 *entity.Member 和 *entity.Team
func (u *UnitOfWork) Persist(val any) error {
	switch e := val.(type) {
	case *entity.Team:
		u.newTeams = append(u.newTeams, e)
	case *entity.Member:
		u.newMembers = append(u.newMembers, e)
	default:
		return errs.ErrUnsupportedEntity
	}
	return nil
}

// FindMember 优先从一级缓存里面取
func (u *UnitOfWork) FindMember(ctx context.Context, id int64) (*entity.Member, error) {
	if m, ok := u.members[id]; ok {
		return m.entity, nil
	}
	m, err := u.Members().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	u.manageMember(m)
	return m, nil
}

func (u *UnitOfWork) FindTeam(ctx context.Context, id int64) (*entity.Team, error) {
	if t, ok := u.teams[id]; ok {
		return t.entity, nil
	}
	t, err := u.Teams().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	u.manageTeam(t)
	return t, nil
}

func (u *UnitOfWork) manageMember(m *entity.Member) {
	u.members[m.Id] = &managedMember{entity: m, snapshot: *m}
}

func (u *UnitOfWork) manageTeam(t *entity.Team) {
	u.teams[t.Id] = &managedTeam{entity: t, name: t.Name}
}

// Flush 先插入新的 team，再插入新的 member，最后更新被修改过的实体
func (u *UnitOfWork) Flush(ctx context.Context) error {
	teams := u.Teams()
	for len(u.newTeams) > 0 {
		t := u.newTeams[0]
		if err := teams.Save(ctx, t); err != nil {
			return err
		}
		u.newTeams = u.newTeams[1:]
		u.manageTeam(t)
	}
	members := u.Members()
	for len(u.newMembers) > 0 {
		m := u.newMembers[0]
		if err := members.Save(ctx, m); err != nil {
			return err
		}
		u.newMembers = u.newMembers[1:]
		u.manageMember(m)
	}
	for _, t := range u.teams {
		if t.entity.Name == t.name {
			continue
		}
		err := eorm.NewUpdater[entity.Team](u.tx).Set(eorm.Assign("Name", t.entity.Name)).
			Where(eorm.C("Id").EQ(t.entity.Id)).Exec(ctx).Err()
		if err != nil {
			return err
		}
		t.name = t.entity.Name
	}
	for _, m := range u.members {
		m.entity.ResolveTeamId()
		if !m.dirty() {
			continue
		}
		if err := members.Update(ctx, m.entity); err != nil {
			return err
		}
		m.snapshot = *m.entity
	}
	return nil
}

// Clear 清空一级缓存，没有 Flush 的修改会丢失
func (u *UnitOfWork) Clear() {
	u.members = make(map[int64]*managedMember)
	u.teams = make(map[int64]*managedTeam)
	u.newTeams = nil
	u.newMembers = nil
}

// Commit Flush 之后提交事务，Flush 失败的时候回滚
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := u.Flush(ctx); err != nil {
		return multierr.Append(err, u.tx.Rollback())
	}
	return u.tx.Commit()
}

func (u *UnitOfWork) Rollback() error {
	u.Clear()
	return u.tx.Rollback()
}
