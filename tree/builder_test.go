package tree

import (
	"testing"

	"github.com/SaschaSchweitzer/persons/compare"
	"github.com/SaschaSchweitzer/persons/types"
)

func record(fnm, snm string) *types.Record {
	return &types.Record{
		Forename:     fnm,
		Surname:      snm,
		NormForename: fnm,
		NormSurname:  snm,
		Source:       types.SourceDefault,
	}
}

func buildForest(t *testing.T, records ...*types.Record) *Forest {
	t.Helper()
	b := NewBuilder(compare.NewComparator(compare.DefaultPolicy()))
	f := NewForest()
	b.AddAll(f, records)
	return f
}

func TestBuilderNewSurnameStartsBucket(t *testing.T) {
	f := buildForest(t, record("tim", "burton"))

	bucket := f.Bucket("burton")
	if bucket == nil {
		t.Fatal("bucket not created")
	}
	if bucket.Nodes() != 1 || len(bucket.Records) != 1 {
		t.Fatalf("expected 1 node and 1 record, got %d/%d", bucket.Nodes(), len(bucket.Records))
	}
	if bucket.Matrix[0][0] != types.RelationIdentical {
		t.Error("diagonal must be identical")
	}
}

func TestBuilderCollapsesEqualForenames(t *testing.T) {
	f := buildForest(t,
		record("tim", "burton"),
		record("tim", "burton"),
		record("tim w", "burton"),
	)

	bucket := f.Bucket("burton")
	if bucket.Nodes() != 2 {
		t.Fatalf("expected 2 nodes, got %d", bucket.Nodes())
	}
	if len(bucket.RecordsByNode[0]) != 2 {
		t.Errorf("expected node 0 to hold 2 records, got %v", bucket.RecordsByNode[0])
	}
	if bucket.NodeByRecord[1] != 0 {
		t.Errorf("record 1 should map to node 0, got %d", bucket.NodeByRecord[1])
	}
	// The matrix covers nodes, not records.
	if len(bucket.Matrix) != 2 || len(bucket.Matrix[0]) != 2 {
		t.Fatalf("matrix should be 2x2, got %dx%d", len(bucket.Matrix), len(bucket.Matrix[0]))
	}
	if bucket.Matrix[0][1] != types.RelationMeSubset {
		t.Errorf("tim should be me_subset of tim w, got %s", bucket.Matrix[0][1])
	}
}

func TestBuilderMatrixSymmetry(t *testing.T) {
	f := buildForest(t,
		record("albert", "einstein"),
		record("albert l", "einstein"),
		record("albert lawrence", "einstein"),
		record("albert lucky", "einstein"),
	)

	bucket := f.Bucket("einstein")
	n := bucket.Nodes()
	for i := 0; i < n; i++ {
		if bucket.Matrix[i][i] != types.RelationIdentical {
			t.Errorf("diagonal [%d][%d] = %s", i, i, bucket.Matrix[i][i])
		}
		for j := 0; j < n; j++ {
			if bucket.Matrix[i][j] != bucket.Matrix[j][i].Flip() {
				t.Errorf("matrix not flip-symmetric at [%d][%d]: %s vs %s",
					i, j, bucket.Matrix[i][j], bucket.Matrix[j][i])
			}
		}
	}
}

func TestBuilderSkipsEmptyNames(t *testing.T) {
	f := buildForest(t,
		record("", "burton"),
		record("tim", ""),
		record("tim", "burton"),
	)

	if f.Len() != 1 {
		t.Fatalf("expected a single bucket, got %d", f.Len())
	}
	if got := len(f.Bucket("burton").Records); got != 1 {
		t.Errorf("expected 1 record, got %d", got)
	}
}

func TestBuilderSeparatesSurnames(t *testing.T) {
	f := buildForest(t,
		record("tim", "burton"),
		record("tim", "waits"),
	)

	if f.Len() != 2 {
		t.Fatalf("expected 2 buckets, got %d", f.Len())
	}
	if got := f.Surnames(); got[0] != "burton" || got[1] != "waits" {
		t.Errorf("bucket order must follow input order, got %v", got)
	}
}
