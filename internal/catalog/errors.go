package catalog

import "errors"

var (
	// ErrUnknownServiceType возвращается, когда для типа услуги нет схемы.
	// Вызывающий код трактует это как "настроек нет", а не как ошибку.
	ErrUnknownServiceType = errors.New("catalog: unknown service type")

	// ErrUnknownAssetCategory возвращается для неизвестной категории объекта
	ErrUnknownAssetCategory = errors.New("catalog: unknown asset category")

	// ErrInvalidCatalog возвращается при некорректных данных каталога
	ErrInvalidCatalog = errors.New("catalog: invalid catalog data")
)
