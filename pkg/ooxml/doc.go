// Package ooxml reads the text of Word (DOCX) documents together with the
// color that governs each piece of text.
//
// # Quick Start
//
//	res, err := ooxml.ExtractFile(ctx, "report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, run := range res.Runs {
//	    fmt.Println(run.Text, run.Color)
//	}
//
// # Pipeline
//
// A DOCX file is a ZIP archive. DocxReader locates the main document part
// through [Content_Types].xml (falling back to the package relationships
// and then to word/document.xml). Decode turns the part's XML into open,
// close and text events, and a tree.Builder assembles them into a tree.
// tree.TextRuns then resolves, for every w:t element, the nearest w:rPr
// visible from it and reads its w:color value.
//
// # Errors
//
// Malformed XML is reported as *ParseError. Structurally broken event
// streams wrap ErrUnbalancedStream or ErrTextOutsideElement. Archive
// problems are *DocumentError. Text without a color is not an error; its
// TextColor simply has HasColor unset.
//
// # Configuration
//
// Defaults come from DefaultConfig, overridden by OOXML_* environment
// variables (OOXML_LOG_LEVEL, OOXML_DOCUMENT_PART, OOXML_FORMAT,
// OOXML_COLOR, OOXML_VERBOSE, OOXML_MAX_DEPTH, OOXML_WORKERS,
// OOXML_TELEMETRY) or a YAML file loaded with LoadConfigFile.
//
// # Telemetry
//
// Tree builds emit OpenTelemetry spans and metrics through the global
// providers. Nothing is exported unless the application installs an SDK.
package ooxml
