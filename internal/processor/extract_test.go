package processor

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func extractPath(t *testing.T, path string) (string, error) {
	t.Helper()
	return Extract(context.Background(), FileSource(path), Options{})
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func requireExtractionError(t *testing.T, err error) *ExtractionError {
	t.Helper()
	require.Error(t, err)
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr), "expected *ExtractionError, got %T: %v", err, err)
	return extractErr
}

func TestExtract_textSource(t *testing.T) {
	got, err := Extract(context.Background(), TextSource("Hello World"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
}

func TestExtract_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Extract(ctx, TextSource("x"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_plain(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("Hello world\nLine 2"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\nLine 2", got)
}

func TestExtract_unknownExtensionIsPlain(t *testing.T) {
	path := writeFile(t, "data.xyz", []byte("raw content"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "raw content", got)
}

func TestExtract_plainInvalidUTF8(t *testing.T) {
	path := writeFile(t, "bin.dat", []byte("hello\x80world"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "hello\uFFFDworld", got)
}

func TestExtract_plainBOM(t *testing.T) {
	path := writeFile(t, "utf8.txt", []byte("\xEF\xBB\xBFabc"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	path = writeFile(t, "utf16.txt", []byte{0xFF, 0xFE, 'h', 0, 'i', 0})
	got, err = extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestExtract_missingFile(t *testing.T) {
	_, err := extractPath(t, filepath.Join(t.TempDir(), "missing.txt"))
	extractErr := requireExtractionError(t, err)
	assert.Equal(t, "text", extractErr.Format)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExtract_csv(t *testing.T) {
	path := writeFile(t, "people.CSV", []byte("name,city\nAlice,Oslo\nBob,\"Rio, BR\"\n"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Alice","city":"Oslo"},{"name":"Bob","city":"Rio, BR"}]`, got)
}

func TestExtract_csvRaggedAndEmpty(t *testing.T) {
	path := writeFile(t, "ragged.csv", []byte("a,b\n1\n2,3,4\n"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, `[{"a":"1"},{"a":"2","b":"3","_2":"4"}]`, got)

	path = writeFile(t, "header.csv", []byte("a,b\n"))
	got, err = extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestExtract_csvLenient(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare quotes",
			content: "quote,n\nHe said \"hi\",1\n",
			want:    `[{"quote":"He said \"hi\"","n":"1"}]`,
		},
		{
			name:    "duplicate header",
			content: "a,b,a\n1,2,3\n",
			want:    `[{"a":"3","b":"2"}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "lenient.csv", []byte(tt.content))
			got, err := extractPath(t, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_json(t *testing.T) {
	path := writeFile(t, "data.json", []byte("{\n  \"zeta\": \"Hello <World>\",\n  \"alpha\": [1, 2, true]\n}\n"))
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"Hello <World>","alpha":[1,2,true]}`, got)
}

func TestExtract_jsonCanonical(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"escapes, exponent and duplicate key", `{"k":"A\u00e9","n":1e3,"a":1,"a":2}`, `{"k":"Aé","n":1000,"a":2}`},
		{"index keys first", `{"b":true,"10":null,"2":"x","01":0}`, `{"2":"x","10":null,"b":true,"01":0}`},
		{"numbers", `[1.0,-0,1.5e-7,1e21,0.000001,12345678901234567890,1e400]`, `[1,0,1.5e-7,1e+21,0.000001,12345678901234567000,null]`},
		{"scalar", ` "plain" `, `"plain"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "doc.json", []byte(tt.content))
			got, err := extractPath(t, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_jsonMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"truncated.json": `{"a": `,
		"empty.json":     ``,
		"trailing.json":  `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, []byte(content))
			_, err := extractPath(t, path)
			requireExtractionError(t, err)
		})
	}
}

func TestExtract_gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("k,v\nx,y\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeFile(t, "pairs.csv.gz", buf.Bytes())
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, `[{"k":"x","v":"y"}]`, got)
}

func TestExtract_gzipCorrupted(t *testing.T) {
	path := writeFile(t, "notes.txt.gz", []byte("not gzip"))
	_, err := extractPath(t, path)
	extractErr := requireExtractionError(t, err)
	assert.Equal(t, "text+gzip", extractErr.Format)
}

const docxBody = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
	`<w:r><w:t>Hello</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">World </w:t></w:r></w:p>` +
	`<w:p w:rsidR="00AB12"><w:r><w:t>Second</w:t><w:br/><w:t>line</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const docxRels = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func TestExtract_docx(t *testing.T) {
	content := zipBytes(t, map[string]string{
		"word/document.xml":            docxBody,
		"word/_rels/document.xml.rels": docxRels,
	})
	path := writeFile(t, "letter.docx", content)
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\tWorld \nSecond\nline", got)
}

func TestExtract_docxNotZip(t *testing.T) {
	path := writeFile(t, "letter.docx", []byte("plain text pretending"))
	_, err := extractPath(t, path)
	extractErr := requireExtractionError(t, err)
	assert.Equal(t, "docx", extractErr.Format)
}

func TestExtract_odt(t *testing.T) {
	content := zipBytes(t, map[string]string{
		"mimetype": "application/vnd.oasis.opendocument.text",
		"content.xml": `<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
			`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"><office:body><office:text>` +
			`<text:h text:outline-level="1">Title</text:h>` +
			`<text:p>One<text:s text:c="2"/>two<text:tab/>three<text:line-break/><text:span>four</text:span></text:p>` +
			`</office:text></office:body></office:document-content>`,
	})
	path := writeFile(t, "report.odt", content)
	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "Title\nOne  two\tthree\nfour", got)
}

func TestExtract_odtMissingContent(t *testing.T) {
	content := zipBytes(t, map[string]string{"mimetype": "application/vnd.oasis.opendocument.text"})
	path := writeFile(t, "empty.odt", content)
	_, err := extractPath(t, path)
	requireExtractionError(t, err)
}

func TestExtract_xlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Title"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Value 1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Value 2"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Equal(t, "Title\nValue 1\tValue 2", got)
}

func TestExtract_pdf(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "Hello World", "", 1, "L", false, 0, "")
	path := filepath.Join(t.TempDir(), "hello.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))

	got, err := extractPath(t, path)
	require.NoError(t, err)
	assert.Contains(t, got, "Hello World")
}

func TestExtract_corruptedPDF(t *testing.T) {
	path := writeFile(t, "fake.pdf", []byte("this is not a PDF byte stream"))

	for _, engine := range []string{EngineBuiltin, EngineUniPDF} {
		t.Run(engine, func(t *testing.T) {
			_, err := Extract(context.Background(), FileSource(path), Options{PDFEngine: engine})
			extractErr := requireExtractionError(t, err)
			assert.Equal(t, "pdf", extractErr.Format)
			assert.Equal(t, path, extractErr.Path)
		})
	}
}

func TestExtractionError_message(t *testing.T) {
	err := &ExtractionError{Path: "a.pdf", Format: "pdf", Err: errors.New("boom")}
	assert.Equal(t, "extract a.pdf (pdf): boom", err.Error())
}
