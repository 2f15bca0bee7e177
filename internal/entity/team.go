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

// Team 团队。Members 是反向的关联，不是列，也不以它为准
type Team struct {
	Id      int64 `eorm:"primary_key,auto_increment,column=team_id"`
	Name    string
	Members []*Member `eorm:"-"`
}

func NewTeam(name string) *Team {
	return &Team{Name: name}
}

func (t *Team) removeMember(m *Member) {
	for i, member := range t.Members {
		if member == m {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}
