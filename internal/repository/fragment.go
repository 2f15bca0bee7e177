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
	"strings"

	"github.com/ecodeclub/ekit/slice"
	eorm "github.com/ecodeclub/eorm-study"
	"github.com/ecodeclub/eorm-study/internal/dto"
	"github.com/ecodeclub/eorm-study/internal/entity"
)

var (
	member = eorm.TableOf(&entity.Member{}).As("m")
	team   = eorm.TableOf(&entity.Team{}).As("t")

	// memberLeftJoinTeam 没有 team 的 member 也会出现在结果里面
	memberLeftJoinTeam = member.LeftJoin(team).On(member.C("TeamId").EQ(team.C("Id")))
)

// 下面的函数在条件缺失的时候返回零值 Predicate，组合的时候会被跳过

// hasText 只有空白字符的字符串等同于没有设置
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func usernameEq(username string) eorm.Predicate {
	if !hasText(username) {
		return eorm.Predicate{}
	}
	return member.C("Username").EQ(username)
}

func teamNameEq(teamName string) eorm.Predicate {
	if !hasText(teamName) {
		return eorm.Predicate{}
	}
	return team.C("Name").EQ(teamName)
}

func ageGoe(ageGoe *int) eorm.Predicate {
	if ageGoe == nil {
		return eorm.Predicate{}
	}
	return member.C("Age").GTEQ(*ageGoe)
}

func ageLoe(ageLoe *int) eorm.Predicate {
	if ageLoe == nil {
		return eorm.Predicate{}
	}
	return member.C("Age").LTEQ(*ageLoe)
}

// ageBetween 等价于 age >= goe AND age <= loe，任意一边都可以缺失
func ageBetween(loe, goe *int) eorm.Predicate {
	return ageGoe(goe).And(ageLoe(loe))
}

func fragments(cond dto.MemberSearchCondition) []eorm.Predicate {
	ps := []eorm.Predicate{
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageBetween(cond.AgeLoe, cond.AgeGoe),
	}
	return slice.FilterMap(ps, func(idx int, p eorm.Predicate) (eorm.Predicate, bool) {
		return p, !p.Empty()
	})
}

// where 把所有的条件用 AND 连起来，没有条件的时候返回零值 Predicate
func where(cond dto.MemberSearchCondition) eorm.Predicate {
	return eorm.And(fragments(cond)...)
}
