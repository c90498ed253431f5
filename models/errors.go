package models

import "errors"

// Shared persistence error values. The store package translates driver and
// GORM errors into these so services never import gorm.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
