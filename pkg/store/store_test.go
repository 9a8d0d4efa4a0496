package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/host"
	"github.com/matzehuels/framecast/pkg/pipeline"
)

func sampleConversion(id string) *pipeline.Conversion {
	doc := host.NewDocument("Example")
	h, _ := doc.CreateNode(design.KindFrame)
	_ = doc.SetName(h, "Website: Example")
	return &pipeline.Conversion{
		ID:       id,
		Document: doc,
		Result:   &pipeline.Result{ID: id, Stats: pipeline.Stats{Total: 3, Created: 2, Failed: 1}},
	}
}

// exercise runs the shared contract against any backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	rec := NewRecord(sampleConversion("a"), "Example", time.Hour)
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusDone || got.Stats.Created != 2 || got.Stats.Failed != 1 {
		t.Errorf("record = %+v", got)
	}
	if got.Document == nil || got.Document.Len() != 1 {
		t.Error("document not round-tripped")
	}

	expired := FailedRecord("old", "Old", StatusTimedOut, fmt.Errorf("too slow"), -time.Minute)
	if err := s.Put(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired Get err = %v, want ErrNotFound", err)
	}

	later := NewRecord(sampleConversion("b"), "Later", time.Hour)
	later.CreatedAt = rec.CreatedAt.Add(time.Second)
	if err := s.Put(ctx, later); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("List = %d records", len(list))
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "b"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted Get err = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exercise(t, s)

	_ = s.Put(context.Background(), FailedRecord("x", "", StatusFailed, errors.New("boom"), -time.Second))
	n, err := s.Cleanup(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Cleanup = %d, %v; want 2 expired", n, err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)

	_ = s.Put(context.Background(), FailedRecord("x", "", StatusFailed, errors.New("boom"), -time.Second))
	n, err := s.Cleanup(context.Background())
	if err != nil || n != 1 {
		t.Errorf("Cleanup = %d, %v; want 1", n, err)
	}
}

func TestFileStorePathEscape(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.recordPath("../../etc/passwd"); got != s.Path()+"/passwd.json" {
		t.Errorf("recordPath = %q", got)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FRAMECAST_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FRAMECAST_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "framecast_test", fmt.Sprintf("conversions_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close()
	}()
	exercise(t, s)
}
