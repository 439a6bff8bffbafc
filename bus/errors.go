package bus

import "github.com/pkg/errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailAlreadyInUse  = errors.New("email is already used")
	ErrDriveAlreadyExists = errors.New("drive already exists")
	ErrUnknownDriveDate   = errors.New("unknown drive date")
	ErrUnknownSetting     = errors.New("unknown setting")
)
