package bus

import (
	"time"

	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/derive"
	"github.com/hatlonely/busliste/rdb/reconstruct"
)

type Person struct {
	_       struct{}    `sql:"table=person"`
	ID      int64       `sql:"column=person_id"`
	Prename string
	Name    string
	Email   rdb.Address

	// Token 登录令牌，TokenExpiration 为其过期的 unix 秒
	Token           *string
	TokenExpiration *int64

	IsSuperuser bool
	// IsVisible 不可见的人不出现在报名列表中，仍然可以登录
	IsVisible bool
}

// Drive 一趟可以报名的行程
type Drive struct {
	_               struct{}  `sql:"table=drive"`
	ID              int64     `sql:"column=drive_id"`
	Date            time.Time `sql:"column=drivedate"`
	Deadline        *time.Time
	RegistrationCap *uint32
}

type Registration struct {
	_          struct{} `sql:"table=registration"`
	ID         int64
	Registered bool
}

// RegistrationPerDrive 某个人在每一趟行程上的报名，没有报名记录时 Registration 为 nil
type RegistrationPerDrive struct {
	_            struct{}      `sql:"table=drive"`
	Drive        Drive         `sql:"complex"`
	Person       Person        `sql:"complex,condition_in_join"`
	Registration *Registration `sql:"complex,joined_on=registration.drive_id = drive.drive_id AND registration.person_id = person.person_id"`
}

func (r RegistrationPerDrive) Registered() bool {
	return r.Registration != nil && r.Registration.Registered
}

// RegistrationPerPerson 某一天每个人的报名，日期没有行程时 Drive 为 nil
type RegistrationPerPerson struct {
	_            struct{}      `sql:"table=person"`
	Person       Person        `sql:"complex"`
	Drive        *Drive        `sql:"complex,condition_in_join"`
	Registration *Registration `sql:"complex,joined_on=registration.person_id = person.person_id AND registration.drive_id = drive.drive_id"`
}

func (r RegistrationPerPerson) Registered() bool {
	return r.Registration != nil && r.Registration.Registered
}

type PersonWithCount struct {
	Person Person
	Count  int64
}

type CountedRegistrations struct {
	Persons []PersonWithCount
	Sum     int64
}

type Setting struct {
	_     struct{} `sql:"table=settings"`
	Name  string
	Value rdb.Value
}

var (
	personDescriptor    = derive.MustFor[Person]()
	driveDescriptor     = derive.MustFor[Drive]()
	perDriveDescriptor  = derive.MustFor[RegistrationPerDrive]()
	perPersonDescriptor = derive.MustFor[RegistrationPerPerson]()
	settingDescriptor   = derive.MustFor[Setting]()

	personWithCountDescriptor reconstruct.Descriptor[PersonWithCount] = countDescriptor{}
)

// countDescriptor 在 person 和 drive 的笛卡尔积上统计报名次数，调用方负责 GROUP BY
type countDescriptor struct{}

func (countDescriptor) RequiredTables() []string {
	return append([]string{"drive"}, personDescriptor.RequiredTables()...)
}

func (countDescriptor) RequiredJoins() []reconstruct.Join {
	return append(personDescriptor.RequiredJoins(), reconstruct.Join{
		Table:  "registration",
		Clause: reconstruct.On("registration.drive_id = drive.drive_id AND registration.person_id = person.person_id"),
	})
}

func (countDescriptor) SelectExprs() []string {
	return append(personDescriptor.SelectExprs(), "COUNT(registration.person_id)")
}

func (d countDescriptor) FromRow(row []rdb.Value) (PersonWithCount, error) {
	personRow, rest, err := reconstruct.Split(row, reconstruct.Width(personDescriptor))
	if err != nil {
		return PersonWithCount{}, err
	}
	person, err := personDescriptor.FromRow(personRow)
	if err != nil {
		return PersonWithCount{}, err
	}

	exprs := d.SelectExprs()
	c := reconstruct.NewCursor(rest, exprs[len(personRow):])
	var count int64
	if err := c.Next(&count); err != nil {
		return PersonWithCount{}, rdb.ShiftColumn(err, len(personRow))
	}
	if err := c.Done(); err != nil {
		return PersonWithCount{}, err
	}
	return PersonWithCount{Person: person, Count: count}, nil
}
