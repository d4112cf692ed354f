package port

import "cleaneye/internal/domain/entity"

// ReportRepository хранилище отчётов на файловой системе
type ReportRepository interface {
	// Save записывает каталог отчёта: копию «до», размеченную копию «после»
	// и оба файла отчёта. Перед записью проставляет пути артефактов в отчёт.
	// Записи не атомарны: при ошибке уже записанные файлы остаются.
	Save(report *entity.Report, original, annotated []byte) error
}
