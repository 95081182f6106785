package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/benjaminschreck/go-ooxml/pkg/ooxml/tree"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/%s" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml">
  <w:body>
    <w:p w14:paraId="0001">
      <w:pPr>
        <w:rPr><w:color w:val="FF0000"/></w:rPr>
      </w:pPr>
      <w:r>
        <w:rPr><w:b/><w:color w:val="00FF00"/></w:rPr>
        <w:t>green</w:t>
      </w:r>
      <w:r>
        <w:t xml:space="preserve">plain </w:t>
      </w:r>
    </w:p>
    <w:p>
      <w:rPr><w:color w:val="0000FF"/></w:rPr>
      <w:r><w:t>blue</w:t></w:r>
    </w:p>
    <w:sectPr/>
  </w:body>
</w:document>`

// buildDocx zips files in name order.
func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// standardDocx returns a minimal package with its main document at part.
func standardDocx(t *testing.T, part, document string) []byte {
	return buildDocx(t, map[string]string{
		"[Content_Types].xml": fmt.Sprintf(contentTypesXML, part),
		part:                  document,
	})
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// recorder is an EventHandler that logs events as strings.
type recorder struct {
	events []string
}

func (r *recorder) Open(name tree.Name, attrs []tree.Attr) error {
	s := "+" + name.String()
	for _, a := range attrs {
		s += " " + a.Name.String() + "=" + a.Value
	}
	r.events = append(r.events, s)
	return nil
}

func (r *recorder) Close(name tree.Name) error {
	r.events = append(r.events, "-"+name.String())
	return nil
}

func (r *recorder) Text(data string) error {
	r.events = append(r.events, fmt.Sprintf("%q", data))
	return nil
}
