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

	"github.com/ecodeclub/ekit/slice"
	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/dto"
	"github.com/ecodeclub/eorm-study/internal/entity"
	"github.com/ecodeclub/eorm-study/internal/errs"
	"github.com/ecodeclub/eorm-study/internal/page"
)

// memberTeamColumns 投影到 dto.MemberTeamDto 上
var memberTeamColumns = []eorm.Selectable{
	member.C("Id").As("member_id"),
	member.C("Username"),
	member.C("Age"),
	team.C("Id").As("team_id"),
	team.C("Name").As("team_name"),
}

// sortKeys 对外暴露的排序字段
var sortKeys = map[string]eorm.Column{
	"memberId": member.C("Id"),
	"username": member.C("Username"),
	"age":      member.C("Age"),
	"teamName": team.C("Name"),
}

// MemberRepository 本身不持有任何状态，
// 绑定的 Session 可以是 *eorm.DB，也可以是 *eorm.Tx
type MemberRepository struct {
	sess eorm.Session
}

func NewMemberRepository(sess eorm.Session) *MemberRepository {
	return &MemberRepository{sess: sess}
}

// WithSession 返回绑定到 sess 上的副本，例如在事务里面使用
func (r *MemberRepository) WithSession(sess eorm.Session) *MemberRepository {
	return &MemberRepository{sess: sess}
}

// Save 插入 member，自增主键会回写到 m.Id
func (r *MemberRepository) Save(ctx context.Context, m *entity.Member) error {
	m.ResolveTeamId()
	res := eorm.NewInserter[entity.Member](r.sess).Values(m).Exec(ctx)
	if err := res.Err(); err != nil {
		return err
	}
	if m.Id != 0 {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.Id = id
	return nil
}

// Update 按照主键更新除了主键以外的所有列
func (r *MemberRepository) Update(ctx context.Context, m *entity.Member) error {
	m.ResolveTeamId()
	return eorm.NewUpdater[entity.Member](r.sess).Update(m).
		Where(eorm.C("Id").EQ(m.Id)).Exec(ctx).Err()
}

// FindById 找不到的时候返回 eorm.ErrNoRows
func (r *MemberRepository) FindById(ctx context.Context, id int64) (*entity.Member, error) {
	return eorm.NewSelector[entity.Member](r.sess).
		Where(eorm.C("Id").EQ(id)).
		Get(ctx)
}

// FindAll 使用原生 SQL
func (r *MemberRepository) FindAll(ctx context.Context) ([]*entity.Member, error) {
	return eorm.RawQuery[entity.Member](r.sess, "SELECT member_id, username, age, team_id FROM member ORDER BY member_id").
		GetMulti(ctx)
}

func (r *MemberRepository) FindAllByBuilder(ctx context.Context) ([]*entity.Member, error) {
	return eorm.NewSelector[entity.Member](r.sess).
		OrderBy(eorm.ASC("Id")).
		GetMulti(ctx)
}

// FindByUsername 条件直接写 SQL 片段，参数依旧走占位符
func (r *MemberRepository) FindByUsername(ctx context.Context, username string) ([]*entity.Member, error) {
	return eorm.NewSelector[entity.Member](r.sess).
		Where(eorm.Raw("username = ?", username).AsPredicate()).
		OrderBy(eorm.ASC("Id")).
		GetMulti(ctx)
}

func (r *MemberRepository) FindByUsernameByBuilder(ctx context.Context, username string) ([]*entity.Member, error) {
	return eorm.NewSelector[entity.Member](r.sess).
		Where(eorm.C("Username").EQ(username)).
		OrderBy(eorm.ASC("Id")).
		GetMulti(ctx)
}

// searchSelector member LEFT JOIN team，投影到 dto.MemberTeamDto
func (r *MemberRepository) searchSelector(cond dto.MemberSearchCondition) *eorm.Selector[dto.MemberTeamDto] {
	return eorm.NewSelector[dto.MemberTeamDto](r.sess).
		Select(memberTeamColumns...).
		From(memberLeftJoinTeam).
		Where(where(cond))
}

// Search 不分页，返回所有满足条件的数据
func (r *MemberRepository) Search(ctx context.Context, cond dto.MemberSearchCondition) ([]*dto.MemberTeamDto, error) {
	return r.searchSelector(cond).OrderBy(member.C("Id").ASC()).GetMulti(ctx)
}

// SearchByBuilder 和 Search 的结果一样，只是条件是一步步累积起来的
func (r *MemberRepository) SearchByBuilder(ctx context.Context, cond dto.MemberSearchCondition) ([]*dto.MemberTeamDto, error) {
	b := &eorm.PredicateBuilder{}
	if hasText(cond.Username) {
		b.And(usernameEq(cond.Username))
	}
	if hasText(cond.TeamName) {
		b.And(teamNameEq(cond.TeamName))
	}
	if cond.AgeGoe != nil {
		b.And(ageGoe(cond.AgeGoe))
	}
	if cond.AgeLoe != nil {
		b.And(ageLoe(cond.AgeLoe))
	}
	return eorm.NewSelector[dto.MemberTeamDto](r.sess).
		Select(memberTeamColumns...).
		From(memberLeftJoinTeam).
		Where(b.Predicate()).
		OrderBy(member.C("Id").ASC()).
		GetMulti(ctx)
}

// SearchMember 返回实体而不是 DTO
func (r *MemberRepository) SearchMember(ctx context.Context, cond dto.MemberSearchCondition) ([]*entity.Member, error) {
	return eorm.NewSelector[entity.Member](r.sess).
		From(memberLeftJoinTeam).
		Where(where(cond)).
		OrderBy(member.C("Id").ASC()).
		GetMulti(ctx)
}

// memberTeamTotal 带上窗口函数计算的总数
type memberTeamTotal struct {
	dto.MemberTeamDto
	Total int64
}

// SearchPageSimple 内容和总数在一次查询里面拿到。
// 请求的页超出范围的时候没有任何行，这时候再单独查询一次总数
func (r *MemberRepository) SearchPageSimple(ctx context.Context, cond dto.MemberSearchCondition,
	pageable page.Pageable) (*page.Page[dto.MemberTeamDto], error) {
	obs, err := orderBy(pageable.Sort)
	if err != nil {
		return nil, err
	}
	columns := append(append(make([]eorm.Selectable, 0, len(memberTeamColumns)+1), memberTeamColumns...),
		eorm.Raw("COUNT(*) OVER() AS total"))
	rows, err := eorm.NewSelector[memberTeamTotal](r.sess).
		Select(columns...).
		From(memberLeftJoinTeam).
		Where(where(cond)).
		OrderBy(obs...).
		Offset(pageable.Offset()).
		Limit(pageable.Size).
		GetMulti(ctx)
	if err != nil {
		return nil, err
	}
	res := &page.Page[dto.MemberTeamDto]{
		Content: slice.Map(rows, func(idx int, src *memberTeamTotal) *dto.MemberTeamDto {
			return &src.MemberTeamDto
		}),
		Page: pageable.Page,
		Size: pageable.Size,
	}
	switch {
	case len(rows) > 0:
		res.Total = rows[0].Total
	case pageable.Offset() > 0:
		res.Total, err = r.searchSelector(cond).Count(ctx)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SearchPageComplex 内容和总数分开查询，能够确定总数的时候不会发起 COUNT 查询
func (r *MemberRepository) SearchPageComplex(ctx context.Context, cond dto.MemberSearchCondition,
	pageable page.Pageable) (*page.Page[dto.MemberTeamDto], error) {
	obs, err := orderBy(pageable.Sort)
	if err != nil {
		return nil, err
	}
	content, err := r.searchSelector(cond).
		OrderBy(obs...).
		Offset(pageable.Offset()).
		Limit(pageable.Size).
		GetMulti(ctx)
	if err != nil {
		return nil, err
	}
	return page.New(ctx, content, pageable, func(ctx context.Context) (int64, error) {
		return r.searchSelector(cond).Count(ctx)
	})
}

// LoadWithTeam 一次查询同时拿到 member 和 team，Member.Team 会被填充
func (r *MemberRepository) LoadWithTeam(ctx context.Context, id int64) (*entity.Member, error) {
	row, err := eorm.NewSelector[dto.MemberTeamDto](r.sess).
		Select(memberTeamColumns...).
		From(memberLeftJoinTeam).
		Where(member.C("Id").EQ(id)).
		Get(ctx)
	if err != nil {
		return nil, err
	}
	m := &entity.Member{
		Id:       row.MemberId,
		Username: row.Username,
		Age:      row.Age,
	}
	if row.TeamId != nil {
		t := &entity.Team{Id: *row.TeamId}
		if row.TeamName != nil {
			t.Name = *row.TeamName
		}
		m.ChangeTeam(t)
	}
	return m, nil
}

// LoadTeamRefOnly 只拿到 TeamId，需要的时候再调用 ResolveTeam
func (r *MemberRepository) LoadTeamRefOnly(ctx context.Context, id int64) (*entity.Member, error) {
	return r.FindById(ctx, id)
}

// ResolveTeam 根据 TeamId 加载 Team 并且填充 m.Team。没有 team 的时候返回 nil
func (r *MemberRepository) ResolveTeam(ctx context.Context, m *entity.Member) (*entity.Team, error) {
	if m.TeamId == nil {
		return nil, nil
	}
	if m.Team != nil && m.Team.Id == *m.TeamId {
		return m.Team, nil
	}
	t, err := NewTeamRepository(r.sess).FindById(ctx, *m.TeamId)
	if err != nil {
		return nil, err
	}
	m.ChangeTeam(t)
	return t, nil
}

// BulkRenameYoungerThan 批量更新，直接作用在数据库上，
// 不会影响 UnitOfWork 里面已经加载的实体
func (r *MemberRepository) BulkRenameYoungerThan(ctx context.Context, username string, age int) (int64, error) {
	return eorm.NewUpdater[entity.Member](r.sess).
		Set(eorm.Assign("Username", username)).
		Where(eorm.C("Age").LT(age)).
		Exec(ctx).RowsAffected()
}

// BulkAddAge 所有 member 的 age 加上 delta
func (r *MemberRepository) BulkAddAge(ctx context.Context, delta int) (int64, error) {
	return eorm.NewUpdater[entity.Member](r.sess).
		Set(eorm.Assign("Age", eorm.C("Age").Add(delta))).
		Exec(ctx).RowsAffected()
}

func (r *MemberRepository) BulkDeleteOlderThan(ctx context.Context, age int) (int64, error) {
	return eorm.NewDeleter[entity.Member](r.sess).
		Where(eorm.C("Age").GT(age)).
		Exec(ctx).RowsAffected()
}

// orderBy 只允许白名单里面的字段，没有指定的时候按照 member_id 排序
func orderBy(sorts []page.Sort) ([]eorm.OrderBy, error) {
	if len(sorts) == 0 {
		return []eorm.OrderBy{member.C("Id").ASC()}, nil
	}
	res := make([]eorm.OrderBy, 0, len(sorts))
	for _, s := range sorts {
		c, ok := sortKeys[s.Property]
		if !ok {
			return nil, errs.NewInvalidSortKeyError(s.Property)
		}
		if s.Desc {
			res = append(res, c.DESC())
		} else {
			res = append(res, c.ASC())
		}
	}
	return res, nil
}
