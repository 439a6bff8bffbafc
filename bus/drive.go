package bus

import (
	"context"
	"time"

	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/database"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/pkg/errors"
)

type NewDrive struct {
	Date     time.Time
	Deadline *time.Time
	// RegistrationCap 为 nil 时使用 default-registration-cap 设置
	RegistrationCap *uint32
}

// ListDrives 按日期升序
func (s *Store) ListDrives(ctx context.Context) ([]Drive, error) {
	return statement.Run(ctx, s.db, statement.Select{Order: statement.Asc("drive.drivedate")}, driveDescriptor)
}

// InsertDrive 日期已有行程时返回 ErrDriveAlreadyExists
func (s *Store) InsertDrive(ctx context.Context, drive NewDrive) (int64, error) {
	if drive.Date.IsZero() {
		return 0, errors.New("drive date is required")
	}

	registrationCap := drive.RegistrationCap
	if registrationCap == nil {
		c, err := s.defaultRegistrationCap(ctx)
		if err != nil {
			return 0, err
		}
		registrationCap = c
	}

	res, err := s.exec(ctx, "INSERT INTO drive (drivedate, deadline, registration_cap) VALUES (?, ?, ?)",
		driveDate(drive.Date), drive.Deadline, registrationCap)
	if database.IsConstraintViolation(err) {
		return 0, ErrDriveAlreadyExists
	}
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "LastInsertId failed")
	}
	s.logger.InfoContext(ctx, "drive inserted", "driveID", id, "date", rdb.FormatTime(drive.Date))
	return id, nil
}

// DeleteDrive 同时删除这趟行程的所有报名
func (s *Store) DeleteDrive(ctx context.Context, id int64) error {
	if err := s.execOne(ctx, "DELETE FROM drive WHERE drive_id = ?", id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "drive deleted", "driveID", id)
	return nil
}

func (s *Store) DriveByDate(ctx context.Context, date time.Time) (Drive, error) {
	return first(ctx, s, statement.Where("drive.drivedate = ?", driveDate(date)), driveDescriptor)
}

func (s *Store) defaultRegistrationCap(ctx context.Context) (*uint32, error) {
	v, err := s.Setting(ctx, SettingDefaultRegistrationCap)
	if errors.Is(err, ErrUnknownSetting) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	registrationCap, err := uint32Setting(v)
	if err != nil {
		s.logger.WarnContext(ctx, "ignore invalid default registration cap", "value", v.String(), "error", err.Error())
		return nil, nil
	}
	return registrationCap, nil
}

// driveDate 行程日期精确到秒，保证文本的字典序与时间先后一致
func driveDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
