package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument — входные данные нарушают предусловие операции (ответ 400).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivisionByZero возвращается при делении на ноль.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrInvalidArgument)

	// ErrNonFinite возвращается, если операнд или результат — NaN или бесконечность.
	ErrNonFinite = fmt.Errorf("%w: value is not a finite number", ErrInvalidArgument)

	// ErrUnknownOperation возвращается, когда операция не поддерживается.
	ErrUnknownOperation = fmt.Errorf("%w: unknown operation", ErrInvalidArgument)

	// ErrValidation — тело запроса не соответствует контракту (нет x/y или неверный тип).
	ErrValidation = errors.New("validation error")

	// ErrStorageUnavailable — хранилище не смогло выполнить чтение или запись (ответ 500).
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// StorageError оборачивает ошибку драйвера в ErrStorageUnavailable, сохраняя исходную в цепочке.
func StorageError(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, action, err)
}
