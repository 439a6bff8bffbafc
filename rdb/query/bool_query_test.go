package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBoolQueryToSQL(t *testing.T) {
	Convey("测试 BoolQuery ToSQL 方法", t, func() {
		Convey("空的 BoolQuery", func() {
			sql, args, err := (&BoolQuery{}).ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "true")
			So(args, ShouldBeEmpty)
		})

		Convey("Must 条件", func() {
			q := &BoolQuery{Must: []Query{
				&RawQuery{Expr: "registration.drive_id = drive.drive_id"},
				&TermQuery{Field: "registration.person_id", Value: int64(1)},
				&TermQuery{Field: "drive.drivedate", Value: "2022-12-14 20:00:00Z"},
			}}
			sql, args, err := q.ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "(registration.drive_id = drive.drive_id AND registration.person_id = ? AND drive.drivedate = ?)")
			So(args, ShouldResemble, []any{int64(1), "2022-12-14 20:00:00Z"})
		})

		Convey("Should 条件", func() {
			q := &BoolQuery{Should: []Query{
				&TermQuery{Field: "person.is_superuser", Value: true},
				&TermQuery{Field: "person.is_visible", Value: true},
			}}
			sql, args, err := q.ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "(person.is_superuser = ? OR person.is_visible = ?)")
			So(args, ShouldResemble, []any{true, true})
		})

		Convey("MinShouldMatch", func() {
			minMatch := 2
			q := &BoolQuery{
				Should: []Query{
					&TermQuery{Field: "drive.deadline", Value: nil},
					&TermQuery{Field: "drive.registration_cap", Value: nil},
					&TermQuery{Field: "drive.drive_id", Value: 3},
				},
				MinShouldMatch: &minMatch,
			}
			sql, args, err := q.ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "(CASE WHEN (drive.deadline IS NULL) THEN 1 ELSE 0 END + "+
				"CASE WHEN (drive.registration_cap IS NULL) THEN 1 ELSE 0 END + "+
				"CASE WHEN (drive.drive_id = ?) THEN 1 ELSE 0 END) >= 2")
			So(args, ShouldResemble, []any{3})
		})

		Convey("MustNot 条件", func() {
			q := &BoolQuery{
				Must:    []Query{&TermQuery{Field: "registration.registered", Value: true}},
				MustNot: []Query{&TermQuery{Field: "person.is_visible", Value: false}},
			}
			sql, args, err := q.ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "(registration.registered = ?) AND (NOT (person.is_visible = ?))")
			So(args, ShouldResemble, []any{true, false})
		})

		Convey("嵌套", func() {
			q := &BoolQuery{Must: []Query{
				&TermQuery{Field: "registration.registered", Value: true},
				&BoolQuery{Should: []Query{
					&RangeQuery{Field: "drive.drivedate", Lt: "2022-12-01"},
					&RangeQuery{Field: "drive.drivedate", Gte: "2023-01-01"},
				}},
			}}
			sql, args, err := q.ToSQL()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "(registration.registered = ? AND (drive.drivedate < ? OR drive.drivedate >= ?))")
			So(args, ShouldResemble, []any{true, "2022-12-01", "2023-01-01"})
		})

		Convey("子条件出错", func() {
			_, _, err := (&BoolQuery{Must: []Query{&TermQuery{}}}).ToSQL()
			So(err, ShouldNotBeNil)
			_, _, err = (&BoolQuery{Should: []Query{nil}}).ToSQL()
			So(err, ShouldNotBeNil)
		})
	})
}
