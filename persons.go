// Package persons identifies unique individuals in tables of name records.
// Records sharing a person identifier in the result are judged to refer to
// the same real-world individual. Matching is deterministic and driven by a
// small algebra of relations between forename strings; see the compare,
// tree, graph and cluster packages for the stages of the pipeline.
package persons

import (
	"context"
	"time"

	"github.com/SaschaSchweitzer/persons/cluster"
	"github.com/SaschaSchweitzer/persons/compare"
	"github.com/SaschaSchweitzer/persons/tabular"
	"github.com/SaschaSchweitzer/persons/tree"
	"github.com/SaschaSchweitzer/persons/types"
)

// TimeGapAction selects how the optional time-gap pass treats clusters.
type TimeGapAction string

const (
	// TimeGapActionSplit starts a new cluster at every oversized gap.
	TimeGapActionSplit TimeGapAction = "split"
	// TimeGapActionReport keeps clusters intact and stamps every record
	// with the maximum observed gap.
	TimeGapActionReport TimeGapAction = "report"
)

// Options configure a disambiguation run.
type Options struct {
	// RemoveParticlesSuffixes strips noble particles from surnames.
	RemoveParticlesSuffixes bool
	// NormalizeNames applies the normaliser to all name fields.
	NormalizeNames bool
	// OnlyFirstForename keeps only the first forename component.
	OnlyFirstForename bool
	// MiddleNameRule requires identical middle initials.
	MiddleNameRule bool
	// MatchSubsets permits subset matches.
	MatchSubsets bool
	// MatchInterlaced permits crossed matches.
	MatchInterlaced bool
	// IgnoreOrderOfForenames aligns forename components order-free.
	IgnoreOrderOfForenames bool
	// AbsolutePositionMatters requires initial-position agreement in
	// ordered mode.
	AbsolutePositionMatters bool

	// SplitByTimeGap enables the time-gap pass when a year column
	// exists.
	SplitByTimeGap bool
	// MaximumTimeGap is the largest accepted gap in years.
	MaximumTimeGap int
	// TimeGapAction selects splitting or reporting.
	TimeGapAction TimeGapAction

	// MaxGraphSize caps the node sets handed to the transitive-reduction
	// stage; larger sets degrade to singleton clusters.
	MaxGraphSize int
	// RemoveEmptyClusters drops empty clusters and renumbers densely.
	RemoveEmptyClusters bool
	// CompareCacheSize is the capacity of the comparison result cache.
	CompareCacheSize int

	// Status, when set, receives a message per pipeline stage.
	Status func(message string)
	// Progress, when set, is called after each clustered surname bucket.
	Progress func(done, total int)
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		RemoveParticlesSuffixes: true,
		NormalizeNames:          true,
		MatchSubsets:            true,
		AbsolutePositionMatters: true,
		MaximumTimeGap:          cluster.DefaultMaximumTimeGap,
		TimeGapAction:           TimeGapActionSplit,
		MaxGraphSize:            cluster.DefaultMaxGraphSize,
		RemoveEmptyClusters:     true,
		CompareCacheSize:        compare.DefaultCacheSize,
	}
}

// Engine runs the disambiguation pipeline. An Engine carries only
// configuration; independent runs may share one or use separate engines in
// parallel.
type Engine struct {
	opts *Options
}

// New creates an engine. A nil options value selects the defaults.
func New(opts *Options) *Engine {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Engine{opts: opts}
}

// Options returns the engine configuration.
func (e *Engine) Options() *Options {
	return e.opts
}

// policy derives the comparison policy from the options.
func (e *Engine) policy() compare.Policy {
	return compare.Policy{
		OnlyFirstForename:       e.opts.OnlyFirstForename,
		MiddleNameRule:          e.opts.MiddleNameRule,
		MatchSubsets:            e.opts.MatchSubsets,
		MatchInterlaced:         e.opts.MatchInterlaced,
		IgnoreOrderOfForenames:  e.opts.IgnoreOrderOfForenames,
		AbsolutePositionMatters: e.opts.AbsolutePositionMatters,
	}
}

// PersonsFromNames identifies persons in a table of names. The optional
// knownPersons table declares previously identified unique individuals;
// clusters capturing more than one of them are forced apart. The result
// holds one row per surviving input record, cluster by cluster, with dense
// person identifiers starting at zero.
func (e *Engine) PersonsFromNames(ctx context.Context, nameTable *tabular.Table, knownPersons *tabular.Table) (*tabular.ResultTable, error) {
	format, err := tabular.IdentifyColumns(nameTable, types.SourceDefault)
	if err != nil {
		return nil, err
	}
	tabular.EnsureIDColumn(nameTable, format)

	convert := tabular.ConvertOptions{
		NormalizeNames:    e.opts.NormalizeNames,
		RemoveParticles:   e.opts.RemoveParticlesSuffixes,
		OnlyFirstForename: e.opts.OnlyFirstForename,
	}

	cmp, err := compare.NewCachedComparator(e.policy(), e.cacheSize())
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeInternal, err, "comparator")
	}

	e.status("Tree creation in progress...")
	builder := tree.NewBuilder(cmp)
	forest := tree.NewForest()
	builder.AddAll(forest, tabular.ToRecords(nameTable, format, convert))

	if knownPersons != nil {
		knownFormat, err := tabular.IdentifyColumns(knownPersons, types.SourceKnownUnique)
		if err != nil {
			return nil, err
		}
		tabular.EnsureIDColumn(knownPersons, knownFormat)
		builder.AddAll(forest, tabular.ToRecords(knownPersons, knownFormat, convert))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.status("Clustering in progress...")
	clusterer := cluster.New(cmp, e.opts.MaxGraphSize)
	clusterer.Progress = e.opts.Progress
	set, err := clusterer.Cluster(ctx, forest)
	if err != nil {
		return nil, err
	}

	clusterer.SplitKnownPersons(set)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.opts.SplitByTimeGap && format.HasYear() {
		switch e.opts.TimeGapAction {
		case TimeGapActionReport:
			e.status("Reporting maximum time gaps...")
			clusterer.TimeGapReport(set)
		default:
			e.status("Splitting entries at oversized time gaps...")
			clusterer.TimeGapSplit(set, e.opts.MaximumTimeGap)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if e.opts.RemoveEmptyClusters {
		e.status("Tidying up...")
		set.Compact()
	}

	return tabular.BuildResult(set.Records(), format, tabular.SavingTime(time.Now())), nil
}

func (e *Engine) cacheSize() int {
	if e.opts.CompareCacheSize > 0 {
		return e.opts.CompareCacheSize
	}
	return compare.DefaultCacheSize
}

func (e *Engine) status(message string) {
	if e.opts.Status != nil {
		e.opts.Status(message)
	}
}
