package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/sqlite"
	"github.com/stretchr/testify/require"
)

func benchRecord(i int) *worldart.Record {
	return &worldart.Record{
		Name:     fmt.Sprintf("Record %d", i),
		Names:    []string{fmt.Sprintf("Запись %d", i)},
		Type:     worldart.TypeTV,
		Episodes: worldart.EpisodeCount{N: 26},
		Genres:   []string{"action", "drama"},
		Summary:  "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		Sources:  []string{fmt.Sprintf("http://www.world-art.ru/animation/animation.php?id=%d", i)},
	}
}

// BenchmarkCreateRecord measures inserts of records with their sources,
// as done by a batch fill.
func BenchmarkCreateRecord(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewRecordService(db)
	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := svc.CreateRecord(ctx, benchRecord(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindRecordsBySource measures the lookup a batch fill performs
// before deciding between create and update.
func BenchmarkFindRecordsBySource(b *testing.B) {
	const records = 1000

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewRecordService(db)
	ctx := context.Background()
	for i := 0; i < records; i++ {
		require.NoError(b, svc.CreateRecord(ctx, benchRecord(i)))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		source := fmt.Sprintf("http://www.world-art.ru/animation/animation.php?id=%d", i%records)
		recs, err := svc.FindRecords(ctx, worldart.RecordFilter{Source: &source, Limit: 1})
		if err != nil {
			b.Fatal(err)
		}
		if len(recs) != 1 {
			b.Fatalf("expected 1 record, got %d", len(recs))
		}
	}
}
