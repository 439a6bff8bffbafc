package bus

import (
	"context"

	"github.com/hatlonely/busliste/cfg"
	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/database"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/pkg/errors"
)

type NewPerson struct {
	Prename     string `validate:"required"`
	Name        string `validate:"required"`
	Email       rdb.Address
	IsSuperuser bool
}

type UpdatePerson struct {
	ID        int64
	Prename   string `validate:"required"`
	Name      string `validate:"required"`
	Email     rdb.Address
	IsVisible bool
}

type VisibilityFilter int

const (
	OnlyVisible VisibilityFilter = iota
	IncludingInvisible
)

// InsertPerson 新建的人可见，邮箱已被使用时返回 ErrEmailAlreadyInUse
func (s *Store) InsertPerson(ctx context.Context, person NewPerson) (int64, error) {
	if err := validatePerson(person.Email, &person); err != nil {
		return 0, err
	}

	res, err := s.exec(ctx, "INSERT INTO person (prename, name, email, is_superuser, is_visible) VALUES (?, ?, ?, ?, true)",
		person.Prename, person.Name, person.Email, person.IsSuperuser)
	if database.IsConstraintViolation(err) {
		return 0, ErrEmailAlreadyInUse
	}
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "LastInsertId failed")
	}
	s.logger.InfoContext(ctx, "person inserted", "personID", id, "email", person.Email.String())
	return id, nil
}

func (s *Store) UpdatePerson(ctx context.Context, person UpdatePerson) error {
	if err := validatePerson(person.Email, &person); err != nil {
		return err
	}

	err := s.execOne(ctx, "UPDATE person SET prename = ?, name = ?, email = ?, is_visible = ? WHERE person_id = ?",
		person.Prename, person.Name, person.Email, person.IsVisible, person.ID)
	if database.IsConstraintViolation(err) {
		return ErrEmailAlreadyInUse
	}
	return err
}

// DeletePerson 同时删除这个人的所有报名
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	if err := s.execOne(ctx, "DELETE FROM person WHERE person_id = ?", id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "person deleted", "personID", id)
	return nil
}

func (s *Store) PersonByID(ctx context.Context, id int64) (Person, error) {
	return first(ctx, s, statement.Where("person.person_id = ?", id), personDescriptor)
}

func (s *Store) PersonByEmail(ctx context.Context, email rdb.Address) (Person, error) {
	return first(ctx, s, statement.Where("person.email = ?", email), personDescriptor)
}

// ListPersons 按姓排序
func (s *Store) ListPersons(ctx context.Context, filter VisibilityFilter) ([]Person, error) {
	sel := statement.Select{Order: statement.Asc("person.name")}
	if filter == OnlyVisible {
		sel.Condition = "person.is_visible"
	}
	return statement.Run(ctx, s.db, sel, personDescriptor)
}

// UpdateToken token 为 nil 时同时清除过期时间
func (s *Store) UpdateToken(ctx context.Context, id int64, token *string) error {
	var expiration *int64
	if token != nil {
		e := s.now().Add(s.tokenLifetime).Unix()
		expiration = &e
	}
	return s.execOne(ctx, "UPDATE person SET token = ?, token_expiration = ? WHERE person_id = ?", token, expiration, id)
}

// IssueLoginToken 生成新令牌并保存，之前的令牌失效
func (s *Store) IssueLoginToken(ctx context.Context, id int64) (string, error) {
	token, err := s.tokens.Generate()
	if err != nil {
		return "", err
	}
	if err := s.UpdateToken(ctx, id, &token); err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "login token issued", "personID", id)
	return token, nil
}

func validatePerson(email rdb.Address, person any) error {
	if email.IsZero() {
		return errors.Wrap(rdb.ErrAddressParse, "email is required")
	}
	return errors.Wrap(cfg.Validate(person), "invalid person")
}
