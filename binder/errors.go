package binder

import "errors"

var (
	ErrNotApplicable        = errors.New("binder.not_applicable")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidJSON          = errors.New("binder.invalid_json")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrInvalidQuery         = errors.New("binder.invalid_query")
	ErrInvalidPath          = errors.New("binder.invalid_path")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)
