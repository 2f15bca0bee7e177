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

package dto

// MemberSearchCondition 搜索条件，所有字段都是可选的
// 空字符串和 nil 都表示没有限制
type MemberSearchCondition struct {
	Username string
	TeamName string
	AgeGoe   *int
	AgeLoe   *int
}

// MemberTeamDto 是 member LEFT JOIN team 的一行
// 没有 team 的时候 TeamId 和 TeamName 为 nil
type MemberTeamDto struct {
	MemberId int64   `json:"memberId" eorm:"column=member_id"`
	Username *string `json:"username"`
	Age      int     `json:"age"`
	TeamId   *int64  `json:"teamId" eorm:"column=team_id"`
	TeamName *string `json:"teamName" eorm:"column=team_name"`
}

// MemberDto 只包含 member 的部分列
type MemberDto struct {
	Username *string `json:"username"`
	Age      int     `json:"age"`
}

// UserDto 字段名和 member 的列名不一致，需要在查询里面使用别名
type UserDto struct {
	Name *string `json:"name"`
	Age  int     `json:"age"`
}
