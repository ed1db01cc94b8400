package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
)

// LLMService turns a pasted job posting into the structured fields of the
// post-job form, so employers can prefill it instead of retyping.
type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. Returns nil service (no
// error) when no API key is configured; the extract endpoint then reports
// itself unavailable instead of the whole portal refusing to start.
func NewLLMService(ctx context.Context, apiKey string) (*LLMService, error) {
	if apiKey == "" {
		return nil, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Analyze the provided raw text
of a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "jobType": "Full-time or Internship",
    "location": "City the job is based in",
    "companyName": "Name of the company",
    "introduction": "A clean one-paragraph summary of the role. Remove HTML tags.",
    "responsibilities": "The responsibilities section as plain text",
    "qualifications": "The qualifications/requirements section as plain text",
    "offers": "Benefits or perks if mentioned, otherwise null",
    "jobNiche": "The closest matching specialization (e.g., Web Development, Data Science)",
    "salary": "The salary string if explicitly mentioned, otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobPosting returns the model's JSON for the raw posting text.
func (s *LLMService) ExtractJobPosting(ctx context.Context, rawText string) (string, error) {
	if s == nil || s.Client == nil {
		return "", apperrors.Unavailable("Job extraction is not configured on this server.")
	}
	if len(rawText) > 20000 {
		rawText = rawText[:20000]
	}
	prompt := fmt.Sprintf(jobExtractionPrompt, rawText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", apperrors.Unavailable("Job extraction failed: " + err.Error())
	}
	return resp, nil
}
