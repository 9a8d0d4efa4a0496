package asset

import "github.com/matzehuels/framecast/pkg/cache"

// Record is a successfully fetched image.
type Record struct {
	URL         string `json:"url"`
	Data        []byte `json:"-"`
	Size        int    `json:"size"`
	ContentType string `json:"contentType,omitempty"`

	// Handle identifies the content; it is the SHA-256 of Data.
	Handle string `json:"handle"`
}

func newRecord(url, contentType string, data []byte) *Record {
	return &Record{
		URL:         url,
		Data:        data,
		Size:        len(data),
		ContentType: contentType,
		Handle:      cache.Hash(data),
	}
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Requested  int64 `json:"requested"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
	Cached     int64 `json:"cached"`
	Active     int64 `json:"active"`
	PeakActive int64 `json:"peakActive"`
	Entries    int   `json:"entries"`
}

// Progress is reported by [Pipeline.ResolveMany] after each batch.
type Progress struct {
	Batch   int
	Batches int
	Done    int
	Total   int
	Percent float64
}
