package bus

import (
	"context"
	"time"

	"github.com/hatlonely/busliste/rdb/database"
	"github.com/hatlonely/busliste/rdb/query"
	"github.com/hatlonely/busliste/rdb/reconstruct"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/pkg/errors"
)

type RegistrationUpdate struct {
	PersonID   int64
	Date       time.Time
	Registered bool
}

var registeredDescriptor = reconstruct.Scalar[bool]("registration.registered", "registration", "drive")

// UpdateRegistration 按人和行程日期写入报名，已有时覆盖
//
// 日期没有行程时返回 ErrUnknownDriveDate，人不存在时返回 ErrNotFound。
func (s *Store) UpdateRegistration(ctx context.Context, update RegistrationUpdate) error {
	stmt := "INSERT INTO registration (person_id, drive_id, registered) " +
		"VALUES (?, (SELECT drive_id FROM drive WHERE drivedate = ?), ?) "
	if s.dialect == "mysql" {
		stmt += "ON DUPLICATE KEY UPDATE registered = VALUES(registered)"
	} else {
		stmt += "ON CONFLICT(person_id, drive_id) DO UPDATE SET registered = excluded.registered"
	}

	_, err := s.exec(ctx, stmt, update.PersonID, driveDate(update.Date), update.Registered)
	if database.IsConstraintViolation(err) {
		if _, derr := s.DriveByDate(ctx, update.Date); derr == nil {
			return errors.Wrapf(ErrNotFound, "person %d", update.PersonID)
		}
		return ErrUnknownDriveDate
	}
	return err
}

// IsRegistered 没有报名记录视为未报名
func (s *Store) IsRegistered(ctx context.Context, personID int64, date time.Time) (bool, error) {
	sel, err := statement.WhereQuery(&query.BoolQuery{Must: []query.Query{
		&query.RawQuery{Expr: "registration.drive_id = drive.drive_id"},
		&query.TermQuery{Field: "registration.person_id", Value: personID},
		&query.TermQuery{Field: "drive.drivedate", Value: driveDate(date)},
	}})
	if err != nil {
		return false, err
	}
	registered, err := first(ctx, s, sel, registeredDescriptor)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return registered, err
}

// RegistrationsForPerson 这个人在所有行程上的报名，按日期升序，ignorePast 时跳过已经过去的行程
func (s *Store) RegistrationsForPerson(ctx context.Context, personID int64, ignorePast bool) ([]RegistrationPerDrive, error) {
	if _, err := s.PersonByID(ctx, personID); err != nil {
		return nil, err
	}

	regs, err := statement.Run(ctx, s.db,
		statement.Where("person.person_id = ?", personID).OrderBy(statement.Asc("drive.drivedate")),
		perDriveDescriptor)
	if err != nil {
		return nil, err
	}
	if !ignorePast {
		return regs, nil
	}

	// 今天的行程都算作未过去
	today := s.now().UTC().Truncate(24 * time.Hour)
	upcoming := regs[:0]
	for _, reg := range regs {
		if !reg.Drive.Date.Before(today) {
			upcoming = append(upcoming, reg)
		}
	}
	return upcoming, nil
}

// RegistrationsForDate 所有可见的人在这一天的报名，按姓排序
//
// 日期没有行程时每个人都返回未报名。
func (s *Store) RegistrationsForDate(ctx context.Context, date time.Time) ([]RegistrationPerPerson, error) {
	regs, err := statement.Run(ctx, s.db,
		statement.Where("drive.drivedate = ?", driveDate(date)).OrderBy(statement.Asc("person.name")),
		perPersonDescriptor)
	if err != nil {
		return nil, err
	}

	// 条件在 drive 的 join 中，WHERE 恒为真，可见性只能在这里过滤
	visible := regs[:0]
	for _, reg := range regs {
		if reg.Person.IsVisible {
			visible = append(visible, reg)
		}
	}
	return visible, nil
}

// CountRegistrations 统计每个人在 [from, to] 内报名的次数，nil 表示不限
func (s *Store) CountRegistrations(ctx context.Context, from, to *time.Time) (CountedRegistrations, error) {
	period := &query.RangeQuery{Field: "drive.drivedate"}
	if from != nil {
		period.Gte = driveDate(*from)
	}
	if to != nil {
		period.Lte = driveDate(*to)
	}
	sel, err := statement.WhereQuery(&query.BoolQuery{Must: []query.Query{
		&query.TermQuery{Field: "registration.registered", Value: true},
		period,
	}})
	if err != nil {
		return CountedRegistrations{}, err
	}
	sel = sel.GroupBy("registration.person_id").OrderBy(statement.Asc("person.name"))

	persons, err := statement.Run(ctx, s.db, sel, personWithCountDescriptor)
	if err != nil {
		return CountedRegistrations{}, err
	}

	counted := CountedRegistrations{Persons: persons}
	for _, p := range persons {
		counted.Sum += p.Count
	}
	return counted, nil
}
