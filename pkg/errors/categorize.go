package errors

import "strings"

// Category is a user-facing description of a failed conversion.
type Category struct {
	Title       string   `json:"title"`
	Details     string   `json:"details"`
	CanRetry    bool     `json:"can_retry"`
	Suggestions []string `json:"suggestions"`
}

// Categorize maps an error onto a user-facing category. Coded errors are
// matched by code first; plain errors fall back to keyword matching on the
// message.
func Categorize(err error) Category {
	if err == nil {
		return Category{}
	}

	switch GetCode(err) {
	case ErrCodeTimeout:
		return timeoutCategory
	case ErrCodeInvalidInput, ErrCodeInvalidElement, ErrCodeInvalidConfig:
		return invalidCategory
	case ErrCodeAssetNetwork:
		return networkCategory
	case ErrCodeNotFound:
		return notFoundCategory
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network") || strings.Contains(msg, "fetch"):
		return networkCategory
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return timeoutCategory
	case strings.Contains(msg, "invalid"):
		return invalidCategory
	case strings.Contains(msg, "unreachable") || strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return notFoundCategory
	}
	return genericCategory
}

var (
	networkCategory = Category{
		Title:    "Network Connection Error",
		Details:  "Unable to reach a required service. Please check your internet connection.",
		CanRetry: true,
		Suggestions: []string{
			"Check your internet connection",
			"Ensure the extraction service is running",
			"Try again in a few moments",
		},
	}

	timeoutCategory = Category{
		Title:    "Processing Timeout",
		Details:  "The page was too complex to convert within the time limit.",
		CanRetry: true,
		Suggestions: []string{
			"Try a simpler page first",
			"Try again with a smaller viewport",
			"Raise the processing time limit",
		},
	}

	invalidCategory = Category{
		Title:    "Invalid Input",
		Details:  "The element data could not be read. Please check the input and try again.",
		CanRetry: false,
		Suggestions: []string{
			"Ensure every element has bounds",
			"Check the input is a JSON array or document",
		},
	}

	notFoundCategory = Category{
		Title:    "Resource Not Found",
		Details:  "The requested resource could not be found.",
		CanRetry: false,
		Suggestions: []string{
			"Check the identifier for typos",
			"Verify the resource still exists",
		},
	}

	genericCategory = Category{
		Title:    "Conversion Error",
		Details:  "An unexpected error occurred during conversion.",
		CanRetry: true,
		Suggestions: []string{
			"Try again in a few moments",
			"Run with --verbose for more details",
		},
	}
)
