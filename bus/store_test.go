package bus

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hatlonely/busliste/kv/store"
	"github.com/hatlonely/busliste/log/logger"
	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/database"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/hatlonely/busliste/uid"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2022, 12, 15, 9, 30, 0, 0, time.UTC)

func openDB(t *testing.T) *sql.DB {
	db, err := database.NewSQLWithOptions(&database.SQLOptions{
		Driver:      database.DriverSQLite3,
		Database:    ":memory:",
		ForeignKeys: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T) *Store {
	db := openDB(t)
	_, err := Migrate(context.Background(), db, "sqlite3", logger.Nop())
	require.NoError(t, err)

	s, err := NewStoreWithOptions(db, logger.Nop(), &StoreOptions{
		Dialect:       "sqlite3",
		SettingsCache: store.Options{Type: "freecache", FreeCache: store.FreeCacheStoreOptions{Size: 1024 * 1024}},
		Statement:     statement.ObservableQueryerOptions{Name: "bus_test"},
	})
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func date(s string) time.Time {
	t, err := rdb.ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustInsertPerson(s *Store, prename, name, email string) int64 {
	id, err := s.InsertPerson(context.Background(), NewPerson{Prename: prename, Name: name, Email: rdb.MustParseAddress(email)})
	So(err, ShouldBeNil)
	return id
}

func mustInsertDrive(s *Store, d string) int64 {
	id, err := s.InsertDrive(context.Background(), NewDrive{Date: date(d)})
	So(err, ShouldBeNil)
	return id
}

func TestMigrate(t *testing.T) {
	Convey("Migrate", t, func() {
		ctx := context.Background()
		db := openDB(t)

		created, err := Migrate(ctx, db, "sqlite3", nil)
		So(err, ShouldBeNil)
		So(created, ShouldBeTrue)

		created, err = Migrate(ctx, db, "sqlite3", nil)
		So(err, ShouldBeNil)
		So(created, ShouldBeFalse)

		latest, err := LatestVersion("sqlite3")
		So(err, ShouldBeNil)
		So(latest, ShouldEqual, 2)

		_, err = Migrate(ctx, db, "postgres", nil)
		So(err, ShouldNotBeNil)
		_, err = Migrate(ctx, nil, "sqlite3", nil)
		So(err, ShouldNotBeNil)
	})
}

func TestPersons(t *testing.T) {
	Convey("Persons", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		bob := mustInsertPerson(s, "Bob", "Builder", "bob@example.com")

		Convey("按邮箱和编号查找", func() {
			p, err := s.PersonByEmail(ctx, rdb.MustParseAddress("bob@example.com"))
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, bob)
			So(p.Prename, ShouldEqual, "Bob")
			So(p.IsVisible, ShouldBeTrue)
			So(p.IsSuperuser, ShouldBeFalse)
			So(p.Token, ShouldBeNil)
			So(p.TokenExpiration, ShouldBeNil)

			byID, err := s.PersonByID(ctx, bob)
			So(err, ShouldBeNil)
			So(byID, ShouldResemble, p)

			_, err = s.PersonByEmail(ctx, rdb.MustParseAddress("nobody@example.com"))
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, err = s.PersonByID(ctx, bob+100)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("邮箱不能重复", func() {
			_, err := s.InsertPerson(ctx, NewPerson{Prename: "Robert", Name: "Builder", Email: rdb.MustParseAddress("bob@example.com")})
			So(errors.Is(err, ErrEmailAlreadyInUse), ShouldBeTrue)

			_, err = s.InsertPerson(ctx, NewPerson{Name: "Nobody", Email: rdb.MustParseAddress("x@example.com")})
			So(err, ShouldNotBeNil)
			_, err = s.InsertPerson(ctx, NewPerson{Prename: "No", Name: "Mail"})
			So(errors.Is(err, rdb.ErrAddressParse), ShouldBeTrue)
		})

		Convey("修改后隐藏", func() {
			jackie := rdb.MustParseAddress("jackie@example.com")
			So(s.UpdatePerson(ctx, UpdatePerson{ID: bob, Prename: "Jackie", Name: "Chan", Email: jackie, IsVisible: false}), ShouldBeNil)

			p, err := s.PersonByID(ctx, bob)
			So(err, ShouldBeNil)
			So(p.Prename, ShouldEqual, "Jackie")
			So(p.Email, ShouldResemble, jackie)
			So(p.IsVisible, ShouldBeFalse)

			visible, err := s.ListPersons(ctx, OnlyVisible)
			So(err, ShouldBeNil)
			So(visible, ShouldBeEmpty)

			all, err := s.ListPersons(ctx, IncludingInvisible)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 1)

			err = s.UpdatePerson(ctx, UpdatePerson{ID: bob + 100, Prename: "A", Name: "B", Email: jackie})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			mustInsertPerson(s, "Alice", "Beta", "alice@example.com")
			err = s.UpdatePerson(ctx, UpdatePerson{ID: bob, Prename: "A", Name: "B", Email: rdb.MustParseAddress("alice@example.com")})
			So(errors.Is(err, ErrEmailAlreadyInUse), ShouldBeTrue)
		})

		Convey("按姓排序", func() {
			mustInsertPerson(s, "Alice", "Adams", "alice@example.com")
			mustInsertPerson(s, "Zoe", "Zimmer", "zoe@example.com")

			persons, err := s.ListPersons(ctx, OnlyVisible)
			So(err, ShouldBeNil)
			var names []string
			for _, p := range persons {
				names = append(names, p.Name)
			}
			So(names, ShouldResemble, []string{"Adams", "Builder", "Zimmer"})
		})

		Convey("登录令牌", func() {
			token, err := s.IssueLoginToken(ctx, bob)
			So(err, ShouldBeNil)
			So(token, ShouldHaveLength, 32)

			p, err := s.PersonByID(ctx, bob)
			So(err, ShouldBeNil)
			So(*p.Token, ShouldEqual, token)
			So(*p.TokenExpiration, ShouldEqual, testNow.Add(time.Hour).Unix())

			So(s.UpdateToken(ctx, bob, nil), ShouldBeNil)
			p, err = s.PersonByID(ctx, bob)
			So(err, ShouldBeNil)
			So(p.Token, ShouldBeNil)
			So(p.TokenExpiration, ShouldBeNil)

			_, err = s.IssueLoginToken(ctx, bob+100)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("删除", func() {
			mustInsertDrive(s, "2022-12-14 20:00:00")
			So(s.UpdateRegistration(ctx, RegistrationUpdate{PersonID: bob, Date: date("2022-12-14 20:00:00"), Registered: true}), ShouldBeNil)

			So(s.DeletePerson(ctx, bob), ShouldBeNil)
			_, err := s.PersonByID(ctx, bob)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.DeletePerson(ctx, bob), ErrNotFound), ShouldBeTrue)

			counted, err := s.CountRegistrations(ctx, nil, nil)
			So(err, ShouldBeNil)
			So(counted.Persons, ShouldBeEmpty)
			So(counted.Sum, ShouldEqual, 0)
		})
	})
}

func TestDrives(t *testing.T) {
	Convey("Drives", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		second := mustInsertDrive(s, "2022-12-17 19:30:00")
		deadline := date("2022-12-12 16:00:00")
		regCap := uint32(40)
		earliest, err := s.InsertDrive(ctx, NewDrive{Date: date("2022-12-14 20:00:00"), Deadline: &deadline, RegistrationCap: &regCap})
		So(err, ShouldBeNil)

		Convey("按日期排序", func() {
			drives, err := s.ListDrives(ctx)
			So(err, ShouldBeNil)
			So(len(drives), ShouldEqual, 2)
			So(drives[0].ID, ShouldEqual, earliest)
			So(drives[0].Deadline.Equal(deadline), ShouldBeTrue)
			So(*drives[0].RegistrationCap, ShouldEqual, 40)
			So(drives[1].ID, ShouldEqual, second)
			So(drives[1].Deadline, ShouldBeNil)
			So(drives[1].RegistrationCap, ShouldBeNil)
		})

		Convey("同一日期只能有一趟", func() {
			_, err := s.InsertDrive(ctx, NewDrive{Date: date("2022-12-14 20:00:00.25")})
			So(errors.Is(err, ErrDriveAlreadyExists), ShouldBeTrue)
			_, err = s.InsertDrive(ctx, NewDrive{})
			So(err, ShouldNotBeNil)
		})

		Convey("按日期查找", func() {
			d, err := s.DriveByDate(ctx, date("2022-12-17T20:30:00+01:00"))
			So(err, ShouldBeNil)
			So(d.ID, ShouldEqual, second)

			_, err = s.DriveByDate(ctx, date("2022-12-18 19:30:00"))
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("删除", func() {
			So(s.DeleteDrive(ctx, second), ShouldBeNil)
			So(errors.Is(s.DeleteDrive(ctx, second), ErrNotFound), ShouldBeTrue)
			drives, err := s.ListDrives(ctx)
			So(err, ShouldBeNil)
			So(len(drives), ShouldEqual, 1)
		})

		Convey("默认的报名上限", func() {
			So(s.SetSetting(ctx, SettingDefaultRegistrationCap, rdb.Integer(64)), ShouldBeNil)
			id := mustInsertDrive(s, "2022-12-21 19:30:00")

			d, err := s.DriveByDate(ctx, date("2022-12-21 19:30:00"))
			So(err, ShouldBeNil)
			So(d.ID, ShouldEqual, id)
			So(*d.RegistrationCap, ShouldEqual, 64)

			So(s.SetSetting(ctx, SettingDefaultRegistrationCap, rdb.Text("many")), ShouldBeNil)
			mustInsertDrive(s, "2022-12-22 19:30:00")
			d, err = s.DriveByDate(ctx, date("2022-12-22 19:30:00"))
			So(err, ShouldBeNil)
			So(d.RegistrationCap, ShouldBeNil)
		})
	})
}

func TestRegistrations(t *testing.T) {
	Convey("Registrations", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		alice := mustInsertPerson(s, "Alice", "Adams", "alice@example.com")
		bob := mustInsertPerson(s, "Bob", "Builder", "bob@example.com")
		past := mustInsertDrive(s, "2022-12-14 20:00:00")
		today := mustInsertDrive(s, "2022-12-15 07:00:00")
		future := mustInsertDrive(s, "2022-12-17 19:30:00")

		register := func(person int64, d string, registered bool) {
			So(s.UpdateRegistration(ctx, RegistrationUpdate{PersonID: person, Date: date(d), Registered: registered}), ShouldBeNil)
		}

		Convey("覆盖已有的报名", func() {
			register(alice, "2022-12-14 20:00:00", true)
			ok, err := s.IsRegistered(ctx, alice, date("2022-12-14 20:00:00"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			register(alice, "2022-12-14 20:00:00", false)
			ok, err = s.IsRegistered(ctx, alice, date("2022-12-14 20:00:00"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			ok, err = s.IsRegistered(ctx, bob, date("2022-12-14 20:00:00"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("未知的日期和人", func() {
			err := s.UpdateRegistration(ctx, RegistrationUpdate{PersonID: alice, Date: date("2023-01-01 00:00:00"), Registered: true})
			So(errors.Is(err, ErrUnknownDriveDate), ShouldBeTrue)

			err = s.UpdateRegistration(ctx, RegistrationUpdate{PersonID: bob + 100, Date: date("2022-12-14 20:00:00"), Registered: true})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("一个人的所有行程", func() {
			register(alice, "2022-12-17 19:30:00", true)
			register(bob, "2022-12-14 20:00:00", true)

			regs, err := s.RegistrationsForPerson(ctx, alice, false)
			So(err, ShouldBeNil)
			So(len(regs), ShouldEqual, 3)
			for i, id := range []int64{past, today, future} {
				So(regs[i].Drive.ID, ShouldEqual, id)
				So(regs[i].Person.ID, ShouldEqual, alice)
			}
			So(regs[0].Registered(), ShouldBeFalse)
			So(regs[0].Registration, ShouldBeNil)
			So(regs[2].Registered(), ShouldBeTrue)

			regs, err = s.RegistrationsForPerson(ctx, alice, true)
			So(err, ShouldBeNil)
			So(len(regs), ShouldEqual, 2)
			So(regs[0].Drive.ID, ShouldEqual, today)
			So(regs[1].Registered(), ShouldBeTrue)

			_, err = s.RegistrationsForPerson(ctx, bob+100, false)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("某一天所有可见的人", func() {
			carol := mustInsertPerson(s, "Carol", "Cooper", "carol@example.com")
			register(bob, "2022-12-14 20:00:00", true)
			register(carol, "2022-12-14 20:00:00", true)
			So(s.UpdatePerson(ctx, UpdatePerson{ID: carol, Prename: "Carol", Name: "Cooper", Email: rdb.MustParseAddress("carol@example.com")}), ShouldBeNil)

			regs, err := s.RegistrationsForDate(ctx, date("2022-12-14 20:00:00"))
			So(err, ShouldBeNil)
			So(len(regs), ShouldEqual, 2)
			So(regs[0].Person.ID, ShouldEqual, alice)
			So(regs[0].Registered(), ShouldBeFalse)
			So(regs[0].Drive.ID, ShouldEqual, past)
			So(regs[1].Person.ID, ShouldEqual, bob)
			So(regs[1].Registered(), ShouldBeTrue)

			regs, err = s.RegistrationsForDate(ctx, date("2023-01-01 00:00:00"))
			So(err, ShouldBeNil)
			So(len(regs), ShouldEqual, 2)
			So(regs[0].Drive, ShouldBeNil)
			So(regs[1].Registered(), ShouldBeFalse)
		})

		Convey("统计", func() {
			register(alice, "2022-12-14 20:00:00", true)
			register(alice, "2022-12-15 07:00:00", true)
			register(alice, "2022-12-17 19:30:00", false)
			register(bob, "2022-12-17 19:30:00", true)

			counted, err := s.CountRegistrations(ctx, nil, nil)
			So(err, ShouldBeNil)
			So(len(counted.Persons), ShouldEqual, 2)
			So(counted.Persons[0].Person.ID, ShouldEqual, alice)
			So(counted.Persons[0].Count, ShouldEqual, 2)
			So(counted.Persons[1].Person.ID, ShouldEqual, bob)
			So(counted.Persons[1].Count, ShouldEqual, 1)
			So(counted.Sum, ShouldEqual, 3)

			from, to := date("2022-12-15 00:00:00"), date("2022-12-16 00:00:00")
			counted, err = s.CountRegistrations(ctx, &from, &to)
			So(err, ShouldBeNil)
			So(len(counted.Persons), ShouldEqual, 1)
			So(counted.Persons[0].Count, ShouldEqual, 1)
			So(counted.Sum, ShouldEqual, 1)

			counted, err = s.CountRegistrations(ctx, &to, nil)
			So(err, ShouldBeNil)
			So(len(counted.Persons), ShouldEqual, 1)
			So(counted.Persons[0].Person.ID, ShouldEqual, bob)
		})
	})
}

func TestSettings(t *testing.T) {
	Convey("Settings", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		all, err := s.AllSettings(ctx)
		So(err, ShouldBeNil)
		So(all, ShouldResemble, map[string]string{
			SettingLoginMessage:           "",
			SettingDefaultDeadline:        "",
			SettingDefaultRegistrationCap: "",
		})

		v, err := s.Setting(ctx, SettingDefaultDeadline)
		So(err, ShouldBeNil)
		So(v.IsNull(), ShouldBeTrue)

		Convey("写入后缓存失效", func() {
			message := "Bus fährt <b>nicht</b> am 24.12."
			v, err := s.Setting(ctx, SettingLoginMessage)
			So(err, ShouldBeNil)
			So(v.Equal(rdb.Text("")), ShouldBeTrue)

			So(s.SetSetting(ctx, SettingLoginMessage, rdb.Text(message)), ShouldBeNil)
			v, err = s.Setting(ctx, SettingLoginMessage)
			So(err, ShouldBeNil)
			So(v.Equal(rdb.Text(message)), ShouldBeTrue)

			So(s.SetSetting(ctx, SettingDefaultRegistrationCap, rdb.Integer(64)), ShouldBeNil)
			all, err := s.AllSettings(ctx)
			So(err, ShouldBeNil)
			So(all[SettingLoginMessage], ShouldEqual, message)
			So(all[SettingDefaultRegistrationCap], ShouldEqual, "64")
		})

		Convey("未知的设置", func() {
			_, err := s.Setting(ctx, "no-such-setting")
			So(errors.Is(err, ErrUnknownSetting), ShouldBeTrue)
			So(errors.Is(s.SetSetting(ctx, "no-such-setting", rdb.Integer(1)), ErrUnknownSetting), ShouldBeTrue)
		})
	})
}

func TestNewStoreWithOptions(t *testing.T) {
	Convey("参数校验", t, func() {
		_, err := NewStoreWithOptions(nil, nil, &StoreOptions{})
		So(err, ShouldNotBeNil)

		db := openDB(t)
		_, err = NewStoreWithOptions(db, nil, nil)
		So(err, ShouldNotBeNil)

		_, err = NewStoreWithOptions(db, nil, &StoreOptions{SettingsCache: store.Options{Type: "redis"}})
		So(err, ShouldNotBeNil)

		_, err = NewStoreWithOptions(db, nil, &StoreOptions{Token: uid.TokenOptions{Version: "v3"}})
		So(err, ShouldNotBeNil)
	})
}

func TestUpdateRegistrationMySQL(t *testing.T) {
	Convey("mysql 使用 ON DUPLICATE KEY UPDATE", t, func() {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		So(err, ShouldBeNil)
		defer db.Close()

		s, err := NewStoreWithOptions(db, nil, &StoreOptions{Dialect: "mysql"})
		So(err, ShouldBeNil)

		mock.ExpectExec("INSERT INTO registration (person_id, drive_id, registered) " +
			"VALUES (?, (SELECT drive_id FROM drive WHERE drivedate = ?), ?) " +
			"ON DUPLICATE KEY UPDATE registered = VALUES(registered)").
			WithArgs(int64(1), "2022-12-14 20:00:00Z", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = s.UpdateRegistration(context.Background(), RegistrationUpdate{PersonID: 1, Date: date("2022-12-14 20:00:00.5"), Registered: true})
		So(err, ShouldBeNil)
		So(mock.ExpectationsWereMet(), ShouldBeNil)
	})
}

func TestCountDescriptor(t *testing.T) {
	Convey("countDescriptor", t, func() {
		d := countDescriptor{}
		So(d.SelectExprs()[len(d.SelectExprs())-1], ShouldEqual, "COUNT(registration.person_id)")
		So(d.RequiredTables(), ShouldResemble, []string{"drive", "person"})

		row := []rdb.Value{
			rdb.Integer(1), rdb.Text("Alice"), rdb.Text("Beta"), rdb.Text("alice@example.com"),
			rdb.Null(), rdb.Null(), rdb.Integer(0), rdb.Integer(1),
			rdb.Integer(3),
		}

		Convey("人和次数", func() {
			v, err := d.FromRow(row)
			So(err, ShouldBeNil)
			So(v.Person.Name, ShouldEqual, "Beta")
			So(v.Count, ShouldEqual, int64(3))
		})

		Convey("值不够", func() {
			_, err := d.FromRow(row[:5])
			So(errors.Is(err, rdb.ErrNotEnoughValues), ShouldBeTrue)
			_, err = d.FromRow(row[:8])
			So(errors.Is(err, rdb.ErrNotEnoughValues), ShouldBeTrue)
		})

		Convey("值多余", func() {
			_, err := d.FromRow(append(append([]rdb.Value(nil), row...), rdb.Null()))
			So(errors.Is(err, rdb.ErrTooManyValues), ShouldBeTrue)
		})

		Convey("次数的转换错误指向整行中的列", func() {
			bad := append([]rdb.Value(nil), row...)
			bad[8] = rdb.Text("three")
			_, err := d.FromRow(bad)
			var ce *rdb.ConversionError
			So(errors.As(err, &ce), ShouldBeTrue)
			So(ce.Column, ShouldEqual, 8)
			So(ce.Expr, ShouldEqual, "COUNT(registration.person_id)")
		})
	})
}
