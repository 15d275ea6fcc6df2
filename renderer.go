package mustache

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/mustache-go/mustache/lexer"
	"github.com/mustache-go/mustache/parser"
	"github.com/mustache-go/mustache/value"
)

// Renderer holds the configuration and the parse caches.
//
// A Renderer is safe for concurrent use once configured. The Set* methods
// must not be called while renders are in flight.
type Renderer struct {
	templates   map[templateKey]*parser.Template
	templatesMu sync.RWMutex
	partials    map[partialKey]*parser.Template
	partialsMu  sync.RWMutex

	loader            PartialLoader
	escape            EscapeFunc
	resolve           value.Resolver
	delimiter         lexer.Delimiter
	undefinedBehavior value.UndefinedBehavior
	maxDepth          int
	fuel              uint64
	logger            *slog.Logger
}

type templateKey struct {
	source string
	delim  lexer.Delimiter
}

// Partial sets are supplied per call, so the body is part of the key.
type partialKey struct {
	name   string
	indent string
	source string
}

const defaultMaxDepth = 500

// NewRenderer creates a renderer with default settings: HTML escaping,
// lenient undefined handling and the standard {{ }} delimiters.
func NewRenderer() *Renderer {
	return &Renderer{
		templates:         make(map[templateKey]*parser.Template),
		partials:          make(map[partialKey]*parser.Template),
		escape:            EscapeHTML,
		resolve:           value.DefaultResolver,
		delimiter:         lexer.DefaultDelimiter(),
		undefinedBehavior: value.UndefinedLenient,
		maxDepth:          defaultMaxDepth,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLoader sets the loader consulted for partials missing from the
// per-call partial map.
func (r *Renderer) SetLoader(loader PartialLoader) {
	r.loader = loader
}

// SetEscapeFunc sets the function used by escaped variable tags. A nil
// function disables escaping.
func (r *Renderer) SetEscapeFunc(f EscapeFunc) {
	if f == nil {
		f = NoEscape
	}
	r.escape = f
}

// SetResolver sets the member access hook used by name lookups. A nil
// resolver restores value.DefaultResolver.
func (r *Renderer) SetResolver(f value.Resolver) {
	if f == nil {
		f = value.DefaultResolver
	}
	r.resolve = f
}

// SetDelimiter sets the delimiters that templates, partials and name lambda
// results start with.
func (r *Renderer) SetDelimiter(openTag, closeTag string) error {
	delim, err := lexer.ParseDelimiter(openTag + " " + closeTag)
	if err != nil || delim.Open != openTag || delim.Close != closeTag {
		return NewError(ErrInvalidDelimiter, "delimiters must be two non-empty words")
	}
	r.delimiter = delim
	return nil
}

// SetUndefinedBehavior sets how unresolved names are handled.
func (r *Renderer) SetUndefinedBehavior(behavior value.UndefinedBehavior) {
	r.undefinedBehavior = behavior
}

// UndefinedBehavior returns the current undefined behavior.
func (r *Renderer) UndefinedBehavior() value.UndefinedBehavior {
	return r.undefinedBehavior
}

// SetMaxDepth limits how deeply sections, partials and lambdas may nest
// during a render. Zero removes the limit.
func (r *Renderer) SetMaxDepth(depth int) {
	r.maxDepth = depth
}

// SetFuel limits the number of tokens a single render may process. Zero
// removes the limit.
func (r *Renderer) SetFuel(fuel uint64) {
	r.fuel = fuel
}

// SetLogger sets the logger used for debug diagnostics. A nil logger
// discards output.
func (r *Renderer) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.logger = logger
}

// Compile parses source into a reusable Template.
func (r *Renderer) Compile(source string) (*Template, error) {
	tmpl, err := r.parse(source, r.delimiter)
	if err != nil {
		return nil, err
	}
	return &Template{r: r, tmpl: tmpl}, nil
}

// Render renders source against view. partials maps partial names to
// their sources for this call only and may be nil.
func (r *Renderer) Render(source string, view any, partials map[string]string) (string, error) {
	return r.RenderContext(context.Background(), source, view, partials)
}

// RenderContext is Render with cancellation. The context is checked as
// sections, partials and lambdas are entered.
func (r *Renderer) RenderContext(ctx context.Context, source string, view any, partials map[string]string) (string, error) {
	if source == "" {
		return "", nil
	}
	tmpl, err := r.parse(source, r.delimiter)
	if err != nil {
		return "", err
	}
	return r.execute(ctx, tmpl, view, partials)
}

// RenderReader reads the template from src and renders it.
func (r *Renderer) RenderReader(src io.Reader, view any, partials map[string]string) (string, error) {
	if src == nil {
		return "", NewError(ErrInvalidArgument, "template reader is nil")
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", NewError(ErrInvalidArgument, "cannot read template").WithCause(err)
	}
	return r.Render(string(data), view, partials)
}

// ClearCache drops every parsed template and partial.
func (r *Renderer) ClearCache() {
	r.templatesMu.Lock()
	r.templates = make(map[templateKey]*parser.Template)
	r.templatesMu.Unlock()

	r.partialsMu.Lock()
	r.partials = make(map[partialKey]*parser.Template)
	r.partialsMu.Unlock()
}

// CacheSize returns the number of cached template and partial trees.
func (r *Renderer) CacheSize() int {
	r.templatesMu.RLock()
	n := len(r.templates)
	r.templatesMu.RUnlock()

	r.partialsMu.RLock()
	n += len(r.partials)
	r.partialsMu.RUnlock()
	return n
}

func (r *Renderer) execute(ctx context.Context, tmpl *parser.Template, view any, partials map[string]string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	root, ok := view.(*Context)
	if !ok || root == nil {
		root = NewContext(value.FromAny(view), r.resolve)
	}
	s := newState(r, ctx, partials)
	defer s.closeIterators()
	if err := s.renderTokens(tmpl, root, tmpl.Children); err != nil {
		return "", err
	}
	if s.fuel != nil {
		r.logger.Debug("render finished", "fuel", s.fuel.used())
	}
	return s.out.String(), nil
}

// parse returns the cached tree for source, parsing it on first use.
// Concurrent first uses may both parse; the first stored tree wins.
func (r *Renderer) parse(source string, delim lexer.Delimiter) (*parser.Template, error) {
	key := templateKey{source: source, delim: delim}
	r.templatesMu.RLock()
	tmpl, ok := r.templates[key]
	r.templatesMu.RUnlock()
	if ok {
		return tmpl, nil
	}

	r.logger.Debug("template cache miss", "bytes", len(source), "delimiter", delim.String())
	tmpl, err := parser.Parse(source, delim)
	if err != nil {
		return nil, err
	}

	r.templatesMu.Lock()
	if existing, ok := r.templates[key]; ok {
		tmpl = existing
	} else {
		r.templates[key] = tmpl
	}
	r.templatesMu.Unlock()
	return tmpl, nil
}

// parseLambda parses the text a lambda returned. Lambda output can differ
// on every call, so it never enters the cache.
func (r *Renderer) parseLambda(text string, delim lexer.Delimiter) (*parser.Template, error) {
	return parser.Parse(text, delim)
}

// partial returns the tree for a partial indented by indent. The source
// comes from the per-call map first and the loader second.
func (r *Renderer) partial(name, indent string, partials map[string]string) (*parser.Template, bool, error) {
	source, ok := partials[name]
	if !ok && r.loader != nil {
		var err error
		source, ok, err = r.loader.LoadPartial(name)
		if err != nil {
			return nil, false, NewError(ErrBadPartial, "cannot load partial "+name).
				WithName(name).
				WithCause(err)
		}
	}
	if !ok {
		r.logger.Debug("partial not found", "name", name)
		return nil, false, nil
	}

	key := partialKey{name: name, indent: indent, source: source}
	r.partialsMu.RLock()
	tmpl, cached := r.partials[key]
	r.partialsMu.RUnlock()
	if cached {
		return tmpl, true, nil
	}

	r.logger.Debug("partial cache miss", "name", name, "indent", len(indent))
	tmpl, err := parser.Parse(indentLines(source, indent), r.delimiter)
	if err != nil {
		return nil, false, err
	}

	r.partialsMu.Lock()
	if existing, ok := r.partials[key]; ok {
		tmpl = existing
	} else {
		r.partials[key] = tmpl
	}
	r.partialsMu.Unlock()
	return tmpl, true, nil
}
