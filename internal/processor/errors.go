package processor

import (
	"errors"
	"fmt"
)

// ErrUnsupported возвращается для неизвестного движка PDF.
var ErrUnsupported = errors.New("unsupported")

// ExtractionError сообщает, что текст из источника получить не удалось.
type ExtractionError struct {
	Path   string
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
