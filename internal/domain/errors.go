package domain

import "errors"

// Сентинельные ошибки уровня домена. Хранилища и usecase оборачивают их
// через fmt.Errorf("...: %w", ...), проверка — errors.Is().
var (
	// ErrNotFound возвращается, когда запись по идентификатору не найдена.
	ErrNotFound = errors.New("tracker: record not found")

	// ErrValidation возвращается при отсутствии обязательного поля
	// или некорректном значении во входных данных.
	ErrValidation = errors.New("tracker: invalid input")
)

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
