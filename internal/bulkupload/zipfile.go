package bulkupload

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions accepted inside an uploaded archive.
var allowedExtensions = []string{
	"chm", "csv", "diff", "doc", "docx", "dot", "dxf", "eps", "gif", "gml", "ics",
	"jpg", "kml", "odp", "ods", "odt", "pdf", "png", "ppt", "pptx", "ps", "rdf",
	"rtf", "sch", "txt", "wsdl", "xls", "xlsm", "xlsx", "xlt", "xml", "xsd", "xslt", "zip",
}

const maxExtractedBytes = 500 << 20

// ZipError lists why an uploaded archive was refused.
type ZipError struct {
	Messages []string
}

func (e *ZipError) Error() string {
	return "zip file " + strings.Join(e.Messages, ", ")
}

func zipError(msgs ...string) *ZipError {
	return &ZipError{Messages: msgs}
}

// ExtractedFile is a file taken out of an uploaded archive.
type ExtractedFile struct {
	Filename string
	Path     string
}

// skipped reports entries that are archive noise rather than content.
func skipped(name string) bool {
	base := path.Base(name)
	return strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(base, ".")
}

// ExtractZip validates the archive at zipPath and writes its files, flattened
// to their base names, into dir. Archives where two files share a base name
// are refused.
func ExtractZip(zipPath, dir string) ([]ExtractedFile, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, zipError("is not a zip file")
		}
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var (
		files      []*zip.File
		invalid    []string
		duplicates []string
	)
	seen := make(map[string]bool)
	for _, f := range r.File {
		if f.FileInfo().IsDir() || skipped(f.Name) {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")
		if !slices.Contains(allowedExtensions, ext) {
			invalid = append(invalid, path.Base(f.Name))
			continue
		}
		base := path.Base(f.Name)
		if seen[base] {
			if !slices.Contains(duplicates, base) {
				duplicates = append(duplicates, base)
			}
			continue
		}
		seen[base] = true
		files = append(files, f)
	}
	if len(invalid) > 0 {
		return nil, zipError("contains invalid files: " + strings.Join(invalid, ", "))
	}
	if len(duplicates) > 0 {
		return nil, zipError("contains duplicate file names: " + strings.Join(duplicates, ", "))
	}
	if len(files) == 0 {
		return nil, zipError("contains no files")
	}

	var (
		out   []ExtractedFile
		total int64
	)
	for _, f := range files {
		name := path.Base(f.Name)
		dest := filepath.Join(dir, name)
		n, err := extractOne(f, dest, maxExtractedBytes-total)
		if err != nil {
			return nil, err
		}
		total += n
		out = append(out, ExtractedFile{Filename: name, Path: dest})
	}
	return out, nil
}

func extractOne(f *zip.File, dest string, budget int64) (int64, error) {
	src, err := f.Open()
	if err != nil {
		return 0, zipError("could not be read")
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create extracted file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, budget+1))
	if err != nil {
		return 0, zipError("could not be read")
	}
	if n > budget {
		return 0, zipError("is too large to extract")
	}
	return n, nil
}
