package processor

import (
	"bytes"
	"compress/gzip"
	"io"
)

// GzipProcessor обрабатывает файлы в формате .gz.
type GzipProcessor struct {
	innerProcessor FileProcessor // Процессор для распакованного содержимого
}

func NewGzipProcessor(innerProcessor FileProcessor) *GzipProcessor {
	return &GzipProcessor{
		innerProcessor: innerProcessor,
	}
}

func (p *GzipProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	// Распаковка .gz
	gzReader, err := gzip.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer gzReader.Close()

	// Документ целиком помещается в память
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(gzReader); err != nil {
		return nil, err
	}

	// Обработка распакованного содержимого
	return p.innerProcessor.Process(bytes.NewReader(buf.Bytes()))
}
