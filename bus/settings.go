package bus

import (
	"context"
	"strconv"

	"github.com/hatlonely/busliste/kv/store"
	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/pkg/errors"
)

const (
	SettingLoginMessage           = "login-message"
	SettingDefaultDeadline        = "default-deadline"
	SettingDefaultRegistrationCap = "default-registration-cap"
)

// AllSettings 所有设置，值转换为文本，NULL 为空串
func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	settings, err := statement.Run(ctx, s.db, statement.Select{Order: statement.Asc("settings.name")}, settingDescriptor)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(settings))
	for _, setting := range settings {
		m[setting.Name] = setting.Value.String()
	}
	return m, nil
}

// Setting 先读缓存，不存在的设置返回 ErrUnknownSetting
func (s *Store) Setting(ctx context.Context, name string) (rdb.Value, error) {
	v, err := s.settings.Get(ctx, name)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		s.logger.WarnContext(ctx, "settings cache get failed", "name", name, "error", err.Error())
	}

	setting, err := first(ctx, s, statement.Where("settings.name = ?", name), settingDescriptor)
	if errors.Is(err, ErrNotFound) {
		return rdb.Value{}, errors.Wrap(ErrUnknownSetting, name)
	}
	if err != nil {
		return rdb.Value{}, err
	}

	if err := s.settings.Set(ctx, name, setting.Value); err != nil {
		s.logger.WarnContext(ctx, "settings cache set failed", "name", name, "error", err.Error())
	}
	return setting.Value, nil
}

// SetSetting 只更新已有的设置，不存在时返回 ErrUnknownSetting
func (s *Store) SetSetting(ctx context.Context, name string, value rdb.Value) error {
	err := s.execOne(ctx, "UPDATE settings SET value = ? WHERE name = ?", value, name)
	if errors.Is(err, ErrNotFound) {
		return errors.Wrap(ErrUnknownSetting, name)
	}
	if err != nil {
		return err
	}

	if err := s.settings.Del(ctx, name); err != nil {
		s.logger.WarnContext(ctx, "settings cache del failed", "name", name, "error", err.Error())
	}
	s.logger.InfoContext(ctx, "setting updated", "name", name, "value", value.String())
	return nil
}

// uint32Setting NULL 和空串为 nil，文本按十进制解析
func uint32Setting(v rdb.Value) (*uint32, error) {
	if text, ok := v.Text(); ok {
		if text == "" {
			return nil, nil
		}
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q failed", text)
		}
		u := uint32(n)
		return &u, nil
	}

	var u *uint32
	if err := rdb.Decode(v, &u); err != nil {
		return nil, err
	}
	return u, nil
}
