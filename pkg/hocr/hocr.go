// Package hocr reads hOCR documents, the HTML-based format Tesseract and
// other OCR engines use for their results, and turns their page segmentation
// into a layout.Document.
//
// The parsed hierarchy follows the hOCR format:
// Document → Pages → Areas → Paragraphs → Lines → Words, plus the non-text
// floats (photos, images, separators and line drawings) of each page.
//
// Main Functions:
//
// - Parse: Parses hOCR data from HTML into the object model
// - HOCR.Layout: Converts the object model into layout elements, scaled to
// the pages of the PDF being annotated
package hocr
