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

package entity

// Member 会员。Team 不是列，只有 eager 读取的时候才会填充
type Member struct {
	Id       int64 `eorm:"primary_key,auto_increment,column=member_id"`
	Username *string
	Age      int
	TeamId   *int64
	Team     *Team `eorm:"-"`
}

func NewMember(username string, age int, team *Team) *Member {
	m := &Member{
		Username: &username,
		Age:      age,
	}
	if team != nil {
		m.ChangeTeam(team)
	}
	return m
}

func NewMemberWithoutTeam(username string, age int) *Member {
	return NewMember(username, age, nil)
}

// ChangeTeam 同时维护外键和 Team.Members
// team 还没有保存的时候 TeamId 为空，保存的时候再补上
func (m *Member) ChangeTeam(team *Team) {
	if m.Team != nil {
		m.Team.removeMember(m)
	}
	m.Team = team
	m.TeamId = nil
	if team == nil {
		return
	}
	if team.Id != 0 {
		id := team.Id
		m.TeamId = &id
	}
	team.Members = append(team.Members, m)
}

// ResolveTeamId 在 Team 保存之后同步外键
func (m *Member) ResolveTeamId() {
	if m.Team != nil && m.Team.Id != 0 {
		id := m.Team.Id
		m.TeamId = &id
	}
}

func (m *Member) GetUsername() string {
	if m.Username == nil {
		return ""
	}
	return *m.Username
}
