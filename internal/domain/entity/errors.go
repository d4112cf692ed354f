package entity

import "fmt"

// InputError ошибка входного изображения: файл отсутствует, не читается
// или декодируется в пустое изображение. Возникает до записи артефактов.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input image: %v", e.Err)
	}
	return fmt.Sprintf("input image %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// StorageError ошибка записи артефактов отчёта: каталог не создаётся
// или файл не пишется. Уже записанные артефакты не откатываются.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("report storage %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
