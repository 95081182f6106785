package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	// DefaultDocumentPart is where Word stores the main document.
	DefaultDocumentPart = "word/document.xml"
	contentTypesPart    = "[Content_Types].xml"
	packageRelsPart     = "_rels/.rels"

	officeDocumentRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// mainDocumentContentTypes lists the content types of a main document part
// for documents, templates and their macro-enabled variants.
var mainDocumentContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml": true,
	"application/vnd.ms-word.document.macroEnabled.main+xml":                           true,
	"application/vnd.ms-word.template.macroEnabledTemplate.main+xml":                   true,
}

// DocxReader gives access to the members of a DOCX archive
type DocxReader struct {
	reader *zip.Reader
	closer io.Closer
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

// ContentTypes is the [Content_Types].xml part
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps one part to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", fmt.Errorf("failed to read zip file: %w", err))
	}
	return newDocxReader(zipReader, nil, "")
}

// DocxReaderFromFile opens a DOCX file. The caller must Close it.
func DocxReaderFromFile(path string) (*DocxReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	dr, err := newDocxReader(&rc.Reader, rc, path)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return dr, nil
}

func newDocxReader(zr *zip.Reader, closer io.Closer, path string) (*DocxReader, error) {
	dr := &DocxReader{
		reader: zr,
		closer: closer,
		Parts:  make(map[string]*zip.File, len(zr.File)),
	}
	for _, file := range zr.File {
		dr.Parts[file.Name] = file
	}

	// A package must at least announce its content types or carry the
	// conventional main document.
	_, hasTypes := dr.Parts[contentTypesPart]
	_, hasDoc := dr.Parts[DefaultDocumentPart]
	if !hasTypes && !hasDoc {
		return nil, NewDocumentError("open", path, ErrNotDocx)
	}
	return dr, nil
}

// Close releases the underlying file, if any.
func (dr *DocxReader) Close() error {
	if dr.closer == nil {
		return nil
	}
	return dr.closer.Close()
}

// ListParts returns the names of all archive members, sorted
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.Parts))
	for name := range dr.Parts {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

// OpenPart opens a member for streaming. The caller must close it.
func (dr *DocxReader) OpenPart(partName string) (io.ReadCloser, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, NewDocumentError("open part", partName, ErrPartNotFound)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, NewDocumentError("open part", partName, err)
	}
	return rc, nil
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	rc, err := dr.OpenPart(partName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewDocumentError("read part", partName, err)
	}
	return content, nil
}

// ContentTypes parses [Content_Types].xml
func (dr *DocxReader) ContentTypes() (*ContentTypes, error) {
	content, err := dr.GetPart(contentTypesPart)
	if err != nil {
		return nil, err
	}
	var ct ContentTypes
	if err := xml.Unmarshal(content, &ct); err != nil {
		return nil, NewDocumentError("parse content types", contentTypesPart, err)
	}
	return &ct, nil
}

// GetRelationships retrieves relationships for a given part. An empty
// partName selects the package relationships in _rels/.rels.
func (dr *DocxReader) GetRelationships(partName string) ([]Relationship, error) {
	// e.g., "word/document.xml" -> "word/_rels/document.xml.rels"
	relPath := packageRelsPart
	if partName != "" {
		dir, base := "", partName
		if idx := strings.LastIndex(partName, "/"); idx != -1 {
			dir, base = partName[:idx], partName[idx+1:]
		}
		relPath = fmt.Sprintf("%s/_rels/%s.rels", dir, base)
		if dir == "" {
			relPath = fmt.Sprintf("_rels/%s.rels", base)
		}
	}

	if _, ok := dr.Parts[relPath]; !ok {
		// Missing relationships file is not an error, just return empty
		return []Relationship{}, nil
	}
	content, err := dr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, NewDocumentError("parse relationships", relPath, err)
	}
	return rels.Relationship, nil
}

// MainDocumentPart locates the main document: first through the content
// types override, then through the package officeDocument relationship,
// finally falling back to word/document.xml.
func (dr *DocxReader) MainDocumentPart() (string, error) {
	if _, ok := dr.Parts[contentTypesPart]; ok {
		ct, err := dr.ContentTypes()
		if err != nil {
			return "", err
		}
		for _, o := range ct.Overrides {
			if !mainDocumentContentTypes[o.ContentType] {
				continue
			}
			if name := strings.TrimPrefix(o.PartName, "/"); dr.has(name) {
				return name, nil
			}
		}
	}

	rels, err := dr.GetRelationships("")
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type != officeDocumentRelType || rel.TargetMode == "External" {
			continue
		}
		if name := strings.TrimPrefix(rel.Target, "/"); dr.has(name) {
			return name, nil
		}
	}

	if dr.has(DefaultDocumentPart) {
		return DefaultDocumentPart, nil
	}
	return "", NewDocumentError("locate main document", "", ErrNotDocx)
}

func (dr *DocxReader) has(name string) bool {
	_, ok := dr.Parts[name]
	return ok
}
