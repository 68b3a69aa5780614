package docimport

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"io"
	"path"
	"sort"
	"strings"
)

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ExtractPhoto returns the first embedded image of a DOCX upload as a data
// URI. A document without a usable image, including any PDF, yields the
// empty string; a missing photo is not an error.
func ExtractPhoto(data []byte) (string, error) {
	format, err := DetectFormat(data)
	if err != nil || format != FormatDOCX {
		return "", nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var candidates []*zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if !strings.HasPrefix(name, "word/media/") {
			continue
		}
		if _, ok := imageMimeTypes[strings.ToLower(path.Ext(name))]; ok {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}

	// Word numbers media files in insertion order; the lowest name is the
	// image placed first, which for resumes is the portrait.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})
	first := candidates[0]

	rc, err := first.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	mime := imageMimeTypes[strings.ToLower(path.Ext(first.Name))]
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
