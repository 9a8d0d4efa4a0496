package pipeline

import (
	"testing"
	"time"

	"github.com/matzehuels/framecast/pkg/element"
)

func TestValidateTreeFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTreeFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTreeFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.MaxConcurrentDownloads != DefaultMaxConcurrentDownloads {
		t.Errorf("MaxConcurrentDownloads = %d, want %d", opts.MaxConcurrentDownloads, DefaultMaxConcurrentDownloads)
	}
	if opts.NodeBatchSize != DefaultNodeBatchSize {
		t.Errorf("NodeBatchSize = %d, want %d", opts.NodeBatchSize, DefaultNodeBatchSize)
	}
	if opts.MaxProcessingTime != DefaultMaxProcessingTime {
		t.Errorf("MaxProcessingTime = %v, want %v", opts.MaxProcessingTime, DefaultMaxProcessingTime)
	}
	if opts.SlowBatchThreshold != DefaultSlowBatchThreshold {
		t.Errorf("SlowBatchThreshold = %v, want %v", opts.SlowBatchThreshold, DefaultSlowBatchThreshold)
	}
	if opts.Viewport != element.DefaultViewport {
		t.Errorf("Viewport = %+v, want %+v", opts.Viewport, element.DefaultViewport)
	}
	if opts.Title != DefaultTitle {
		t.Errorf("Title = %q", opts.Title)
	}
	if opts.Logger == nil || opts.Progress == nil {
		t.Error("Logger and Progress should default to non-nil")
	}
}

func TestOptionsNegativeDelayDisables(t *testing.T) {
	opts := Options{InterBatchDelay: -1}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.InterBatchDelay != 0 {
		t.Errorf("InterBatchDelay = %v, want 0", opts.InterBatchDelay)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative downloads", Options{MaxConcurrentDownloads: -1}},
		{"too many downloads", Options{MaxConcurrentDownloads: 65}},
		{"negative batch", Options{NodeBatchSize: -2}},
		{"negative viewport", Options{Viewport: element.Viewport{Width: -1, Height: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{NodeBatchSize: 4, AssetTimeout: time.Second}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts.AssetOptions(nil, nil, nil)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	second := opts.AssetOptions(nil, nil, nil)

	if opts.NodeBatchSize != 4 {
		t.Errorf("NodeBatchSize = %d, want 4", opts.NodeBatchSize)
	}
	if first.Timeout != second.Timeout || second.Timeout != time.Second {
		t.Errorf("asset timeout changed: %v then %v", first.Timeout, second.Timeout)
	}
}

func TestDocumentKeyOpts(t *testing.T) {
	opts := Options{Viewport: element.Viewport{Width: 800, Height: 600}}
	k := opts.DocumentKeyOpts()
	if k.ViewportWidth != 800 || k.ViewportHeight != 600 {
		t.Errorf("DocumentKeyOpts = %+v", k)
	}
}
