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

package eorm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	db := memoryDB()
	m := TableOf(&TestMember{}).As("m")
	testCases := []CommonTestCase{
		{
			name:    "avg",
			builder: NewSelector[TestMember](db).Select(Avg("Age")),
			wantSql: "SELECT AVG(`age`) FROM `test_member`;",
		},
		{
			name:    "max",
			builder: NewSelector[TestMember](db).Select(Max("Age")),
			wantSql: "SELECT MAX(`age`) FROM `test_member`;",
		},
		{
			name:    "min",
			builder: NewSelector[TestMember](db).Select(Min("Age").As("min_age")),
			wantSql: "SELECT MIN(`age`) AS `min_age` FROM `test_member`;",
		},
		{
			name:    "sum",
			builder: NewSelector[TestMember](db).Select(Sum("Age")),
			wantSql: "SELECT SUM(`age`) FROM `test_member`;",
		},
		{
			name:    "count",
			builder: NewSelector[TestMember](db).Select(Count("Age")),
			wantSql: "SELECT COUNT(`age`) FROM `test_member`;",
		},
		{
			name:    "count star",
			builder: NewSelector[TestMember](db).Select(Count("*").As("cnt")),
			wantSql: "SELECT COUNT(*) AS `cnt` FROM `test_member`;",
		},
		{
			name:    "distinct",
			builder: NewSelector[TestMember](db).Select(CountDistinct("TeamId"), AvgDistinct("Age"), SumDistinct("Age").As("s")),
			wantSql: "SELECT COUNT(DISTINCT `team_id`),AVG(DISTINCT `age`),SUM(DISTINCT `age`) AS `s` FROM `test_member`;",
		},
		{
			name:    "table",
			builder: NewSelector[TestMember](db).Select(m.Max("Age"), m.Min("Age"), m.Sum("Age"), m.Count("Id"), m.Avg("Age")).From(m),
			wantSql: "SELECT MAX(`m`.`age`),MIN(`m`.`age`),SUM(`m`.`age`),COUNT(`m`.`member_id`),AVG(`m`.`age`) FROM `test_member` AS `m`;",
		},
	}

	for _, tc := range testCases {
		c := tc
		t.Run(c.name, func(t *testing.T) {
			query, err := c.builder.Build()
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, c.wantSql, query.SQL)
			assert.Equal(t, c.wantArgs, query.Args)
		})
	}
}

func ExampleAggregate_As() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Avg("Age").As("avg_age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT AVG(`age`) AS `avg_age` FROM `test_member`;
}

func ExampleAvg() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Avg("Age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT AVG(`age`) FROM `test_member`;
}

func ExampleCount() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Count("Age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT COUNT(`age`) FROM `test_member`;
}

func ExampleMax() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Max("Age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT MAX(`age`) FROM `test_member`;
}

func ExampleMin() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Min("Age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT MIN(`age`) FROM `test_member`;
}

func ExampleSum() {
	db := memoryDB()
	query, _ := NewSelector[TestMember](db).Select(Sum("Age")).Build()
	fmt.Println(query.SQL)
	// Output: SELECT SUM(`age`) FROM `test_member`;
}
