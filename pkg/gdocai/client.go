package gdocai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// clientOptions returns the Google API options for cfg
func clientOptions(cfg *Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithEndpoint(cfg.Endpoint())}
	if creds := cfg.credentialsFile(); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

// processRequest builds the request for processing pdfBytes with cfg's processor
func processRequest(pdfBytes []byte, cfg *Config) *documentaipb.ProcessRequest {
	return &documentaipb.ProcessRequest{
		Name: cfg.ProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		SkipHumanReview: true,
	}
}

// ProcessDocument sends PDF bytes to Google Document AI for processing
// and returns the raw Document proto response
func ProcessDocument(ctx context.Context, pdfBytes []byte, cfg *Config) (*documentaipb.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Document AI config: %w", err)
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("no document given")
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	resp, err := client.ProcessDocument(ctx, processRequest(pdfBytes, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	return resp.GetDocument(), nil
}
