// Package results correlates parsed feature files with the execution reports
// of third-party test runners.
//
// Reports are parsed by a format-specific adapter into a uniform Node tree,
// indexed by name, and queried through a Correlator. When several reports are
// loaded they form a fallback chain: the first report in which a query finds
// an executed result answers it.
package results

import (
	"errors"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pickles/internal/model"
)

// Correlator answers result queries against one or more indexed reports.
//
// Queries are safe for concurrent use. SetSignatureBuilder is not: install the
// builder before issuing queries and do not change it while any are in flight.
type Correlator struct {
	format  Format
	indexes []*Index
	match   matcher
	builder SignatureBuilder
}

type settings struct {
	caseInsensitive bool
	builder         SignatureBuilder
	logger          *slog.Logger
}

// Option configures a Correlator.
type Option func(*settings)

// WithCaseInsensitive matches feature and scenario names ignoring case.
func WithCaseInsensitive() Option {
	return func(s *settings) {
		s.caseInsensitive = true
	}
}

// WithSignatureBuilder installs the builder used by ExampleResult.
func WithSignatureBuilder(builder SignatureBuilder) Option {
	return func(s *settings) {
		s.builder = builder
	}
}

// WithLogger sets the logger used while loading reports.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New builds a correlator over already parsed report trees, consulted in the
// given order. Nil roots are skipped.
func New(format Format, roots []*Node, opts ...Option) *Correlator {
	s := newSettings(opts)
	return newCorrelator(format, roots, s)
}

func newCorrelator(format Format, roots []*Node, s settings) *Correlator {
	c := &Correlator{
		format:  format,
		match:   matcher{caseInsensitive: s.caseInsensitive},
		builder: s.builder,
	}
	for _, root := range roots {
		if root == nil {
			continue
		}
		c.indexes = append(c.indexes, newIndex(root, c.match))
	}
	return c
}

// Load parses report files concurrently and builds a correlator that consults
// them in the order given. A file that fails to parse is left out of the chain
// and reported as a *ParseError in the returned error; the correlator is still
// returned as long as at least one file loaded.
func Load(format Format, paths []string, opts ...Option) (*Correlator, error) {
	s := newSettings(opts)
	roots := make([]*Node, len(paths))
	errs := make([]error, len(paths))

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		group.Go(func() error {
			roots[i], errs[i] = parseFile(format, path)
			return nil
		})
	}
	_ = group.Wait()

	loaded := 0
	for i, path := range paths {
		if errs[i] != nil {
			s.logger.Warn("skipping test results file", "path", path, "format", format.String(), "error", errs[i])
			continue
		}
		loaded++
		s.logger.Debug("loaded test results file", "path", path, "format", format.String(), "features", len(roots[i].Children))
	}

	err := errors.Join(errs...)
	if loaded == 0 && len(paths) > 0 {
		return nil, err
	}
	return newCorrelator(format, roots, s), err
}

func parseFile(format Format, path string) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: path, Format: format, Err: err}
	}
	defer file.Close()
	return Parse(format, file, path)
}

// Format returns the report format the correlator was built for.
func (c *Correlator) Format() Format {
	return c.format
}

// Sources lists the loaded reports in fallback order.
func (c *Correlator) Sources() []string {
	sources := make([]string, 0, len(c.indexes))
	for _, index := range c.indexes {
		sources = append(sources, index.Source())
	}
	return sources
}

// SetSignatureBuilder installs the builder used by ExampleResult; nil removes
// it.
func (c *Correlator) SetSignatureBuilder(builder SignatureBuilder) {
	c.builder = builder
}

// FeatureResult returns the verdict the report gives the feature's suite.
func (c *Correlator) FeatureResult(feature *model.Feature) TestResult {
	if feature == nil {
		return NotExecuted
	}
	return c.firstExecuted(func(index *Index) TestResult {
		entry, ok := index.feature(feature.Name)
		if !ok {
			return NotExecuted
		}
		return entry.node.Result()
	})
}

// ScenarioResult returns the verdict of the scenario's test case.
func (c *Correlator) ScenarioResult(scenario *model.Scenario) TestResult {
	if scenario == nil {
		return NotExecuted
	}
	return c.firstExecuted(func(index *Index) TestResult {
		node, ok := index.firstCase(scenario.FeatureName(), scenario.Name)
		if !ok {
			return NotExecuted
		}
		return node.Result()
	})
}

// ScenarioOutlineResult returns the outline's own verdict for formats that
// report one, and otherwise combines the verdicts of its examples.
func (c *Correlator) ScenarioOutlineResult(outline *model.ScenarioOutline) TestResult {
	if outline == nil {
		return NotExecuted
	}
	return c.firstExecuted(func(index *Index) TestResult {
		if c.format.HasOutlineNodes() {
			node, ok := index.firstCase(outline.FeatureName(), outline.Name)
			if !ok {
				return NotExecuted
			}
			return node.Result()
		}
		examples := index.cases(outline.FeatureName(), outline.Name)
		results := make([]TestResult, 0, len(examples))
		for _, example := range examples {
			results = append(results, example.Result())
		}
		return Combine(results...)
	})
}

// ExampleResult returns the verdict of the outline example with the given
// values. It fails with ErrNoSignatureBuilder when no builder is installed.
func (c *Correlator) ExampleResult(outline *model.ScenarioOutline, values []string) (TestResult, error) {
	builder := c.builder
	if builder == nil {
		return NotExecuted, ErrNoSignatureBuilder
	}
	if outline == nil {
		return NotExecuted, nil
	}
	signature := builder.Build(values)
	return c.firstExecuted(func(index *Index) TestResult {
		for _, example := range c.examples(index, outline) {
			if c.match.contains(example.FullName, signature) {
				return example.Result()
			}
		}
		return NotExecuted
	}), nil
}

// examples returns the nodes an outline's examples are reported as.
func (c *Correlator) examples(index *Index, outline *model.ScenarioOutline) []*Node {
	if c.format.HasOutlineNodes() {
		node, ok := index.firstCase(outline.FeatureName(), outline.Name)
		if !ok {
			return nil
		}
		return node.Children
	}
	return index.cases(outline.FeatureName(), outline.Name)
}

// firstExecuted walks the fallback chain and returns the first executed
// result.
func (c *Correlator) firstExecuted(query func(*Index) TestResult) TestResult {
	for _, index := range c.indexes {
		if result := query(index); result.Executed {
			return result
		}
	}
	return NotExecuted
}
