// Package tree sorts records into surname buckets, collapses records with
// equal forenames into nodes and maintains the node-by-node relation matrix
// of every bucket.
package tree

import (
	"github.com/SaschaSchweitzer/persons/compare"
	"github.com/SaschaSchweitzer/persons/types"
)

// Bucket holds all records sharing one normalised surname, the nodes they
// collapse into and the node relation matrix. The diagonal of the matrix is
// identical and M[i][j] == M[j][i].Flip() throughout.
type Bucket struct {
	Surname string
	Records []*types.Record
	Matrix  [][]types.Relation

	// RecordsByNode lists, per node, the indices into Records it
	// represents. NodeByRecord is the inverse mapping.
	RecordsByNode [][]int
	NodeByRecord  []int
}

// NodeForename returns the shared normalised forename of a node.
func (b *Bucket) NodeForename(node int) string {
	return b.Records[b.RecordsByNode[node][0]].NormForename
}

// Nodes returns the number of nodes in the bucket.
func (b *Bucket) Nodes() int {
	return len(b.RecordsByNode)
}

// Forest is the surname-keyed collection of buckets, iterated in insertion
// order so cluster identifiers stay reproducible.
type Forest struct {
	buckets map[string]*Bucket
	order   []string
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{buckets: make(map[string]*Bucket)}
}

// Bucket returns the bucket for a normalised surname, or nil.
func (f *Forest) Bucket(surname string) *Bucket {
	return f.buckets[surname]
}

// Surnames returns the bucket keys in insertion order.
func (f *Forest) Surnames() []string {
	return f.order
}

// Len returns the number of buckets.
func (f *Forest) Len() int {
	return len(f.order)
}

// Builder inserts records into a forest, comparing forenames through the
// given comparator.
type Builder struct {
	cmp *compare.Comparator
}

// NewBuilder creates a builder around a comparator.
func NewBuilder(cmp *compare.Comparator) *Builder {
	return &Builder{cmp: cmp}
}

// Add inserts a record into its surname bucket. Records with an empty
// normalised forename or surname are skipped. If the forename compares
// equal to an existing node the record joins that node; otherwise a new
// node is appended and the matrix grows by one symmetric row/column.
func (b *Builder) Add(f *Forest, rec *types.Record) {
	if rec.NormForename == "" || rec.NormSurname == "" {
		return
	}

	rec.Cluster = types.ClusterUnassigned

	bucket := f.buckets[rec.NormSurname]
	if bucket == nil {
		bucket = &Bucket{
			Surname:       rec.NormSurname,
			Records:       []*types.Record{rec},
			Matrix:        [][]types.Relation{{types.RelationIdentical}},
			RecordsByNode: [][]int{{0}},
			NodeByRecord:  []int{0},
		}
		f.buckets[rec.NormSurname] = bucket
		f.order = append(f.order, rec.NormSurname)
		return
	}

	recordNumber := len(bucket.Records)
	bucket.Records = append(bucket.Records, rec)

	// Compare the new record against one representative per node. The
	// first equal node absorbs the record; otherwise the comparisons
	// become the node's new matrix row.
	newRow := make([]types.Relation, 0, bucket.Nodes()+1)
	for node := 0; node < bucket.Nodes(); node++ {
		rel := b.cmp.Compare(rec.NormForename, bucket.NodeForename(node))
		if rel == types.RelationEqual {
			bucket.RecordsByNode[node] = append(bucket.RecordsByNode[node], recordNumber)
			bucket.NodeByRecord = append(bucket.NodeByRecord, node)
			return
		}
		newRow = append(newRow, rel)
	}

	newRow = append(newRow, types.RelationIdentical)
	bucket.Matrix = append(bucket.Matrix, newRow)
	bucket.RecordsByNode = append(bucket.RecordsByNode, []int{recordNumber})
	bucket.NodeByRecord = append(bucket.NodeByRecord, bucket.Nodes()-1)

	// Back-fill the symmetric column of the existing rows.
	newNode := bucket.Nodes() - 1
	for node := 0; node < newNode; node++ {
		bucket.Matrix[node] = append(bucket.Matrix[node], newRow[node].Flip())
	}
}

// AddAll inserts a slice of records in order.
func (b *Builder) AddAll(f *Forest, records []*types.Record) {
	for _, rec := range records {
		b.Add(f, rec)
	}
}
