package services

import "errors"

var (
	// ErrEmptyItems dikembalikan kalau nota belanja dikirim tanpa item.
	ErrEmptyItems = errors.New("barang belanjaan gak boleh kosong")

	// ErrNotFound dikembalikan untuk update/delete yang menargetkan id yang tidak ada.
	ErrNotFound = errors.New("data tidak ditemukan")
)
