package service

import "errors"

var (
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidVehicleType  = errors.New("invalid vehicle type")
	ErrTooManyImages       = errors.New("too many images")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoData              = errors.New("no submissions to export")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrInvalidToken        = errors.New("invalid token")
)
