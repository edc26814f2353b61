// Package gdocai runs documents through Google Document AI and converts the
// page segmentation it returns into a layout.Document.
//
// Main Functions:
//
// - LoadConfig: Reads the processor settings from a YAML file
// - ProcessDocument: Sends a document to Google Document AI for processing
// - LayoutFromProto: Converts the Document AI response into layout elements
// - ToJSON: Serializes responses and layouts for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR or layout parsing
// - Authentication via a credentials file, the GOOGLE_APPLICATION_CREDENTIALS
// environment variable or application default credentials
package gdocai
