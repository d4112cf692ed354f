package vision

import "cleaneye/internal/domain/port"

// DefaultClassNames классы модели CleanEye в порядке выходов сети.
// Набор открытый: при переобучении модели список меняется через конфиг.
var DefaultClassNames = []string{"0", "c", "garbage", "garbage_bag", "waste", "trash"}

// Проверка реализации интерфейса
var _ port.WasteDetector = (*YOLODetector)(nil)
