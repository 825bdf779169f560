package repository

import "errors"

var (
	ErrNotFound   = errors.New("запись не найдена")
	ErrDuplicate  = errors.New("нарушение уникальности")
	ErrReferenced = errors.New("ссылка на несуществующую запись")
	ErrInUse      = errors.New("запись используется")
)
