package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultPDFPath задает имя PDF-отчета в рабочем каталоге.
const DefaultPDFPath = "vowel-analysis.pdf"

// ExportError сообщает, что отчет не удалось записать.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// writeAtomic пишет во временный файл рядом с path и переименовывает его
// только после успешной записи. При ошибке временный файл удаляется.
func writeAtomic(path string, render func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			err = &ExportError{Path: path, Err: err}
		}
	}()

	if err = render(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	log.Debug().Str("out", path).Msg("wrote report")
	return nil
}
