package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/snonux/poplingo/internal"
	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/batch"
	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// LookupFailedMessage is shown to the user when a definition lookup fails
const LookupFailedMessage = "Oops! The AI got confused. Try a simpler phrase or check your internet."

var (
	// ErrEmptyQuery is returned for blank search terms
	ErrEmptyQuery = errors.New("search term is empty")
	// ErrStale is returned with a result that resolved after a newer lookup started
	ErrStale = errors.New("lookup superseded by a newer request")
	// ErrEmptyNotebook is returned when a story is requested without saved entries
	ErrEmptyNotebook = errors.New("notebook is empty")
)

// LookupError is a failed definition lookup, carrying the message meant for the user
type LookupError struct {
	Term string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Term, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable failure text
func (e *LookupError) Message() string {
	return LookupFailedMessage
}

// Settings are the active native and target languages
type Settings struct {
	Native language.Language `json:"native"`
	Target language.Language `json:"target"`
}

// DefaultSettings returns English as native and Spanish as target language
func DefaultSettings() Settings {
	return Settings{Native: language.DefaultNative, Target: language.DefaultTarget}
}

// Options configures a Processor
type Options struct {
	Settings  Settings
	SkipImage bool
	Speaker   *audio.Speaker
	Logger    *slog.Logger
	Out       io.Writer
}

// Processor coordinates lookups, the notebook, stories and speech
type Processor struct {
	client  *content.Client
	store   *notebook.Store
	speaker *audio.Speaker
	logger  *slog.Logger
	out     io.Writer

	skipImage bool

	mu       sync.RWMutex
	settings Settings
	current  *notebook.WordEntry
	loading  bool

	epoch atomic.Uint64

	now   func() time.Time
	newID func() string
}

// NewProcessor creates a new processor
func NewProcessor(client *content.Client, store *notebook.Store, opts Options) *Processor {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if !opts.Settings.Native.Valid() {
		opts.Settings.Native = language.DefaultNative
	}
	if !opts.Settings.Target.Valid() {
		opts.Settings.Target = language.DefaultTarget
	}

	return &Processor{
		client:    client,
		store:     store,
		speaker:   opts.Speaker,
		logger:    opts.Logger,
		out:       opts.Out,
		skipImage: opts.SkipImage,
		settings:  opts.Settings,
		now:       time.Now,
		newID:     internal.GenerateEntryID,
	}
}

// Settings returns the active languages
func (p *Processor) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// SetSettings changes the active languages. Saved entries keep their own languages.
func (p *Processor) SetSettings(s Settings) error {
	if !s.Native.Valid() {
		return fmt.Errorf("native %w: %q", language.ErrUnknownLanguage, s.Native)
	}
	if !s.Target.Valid() {
		return fmt.Errorf("target %w: %q", language.ErrUnknownLanguage, s.Target)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
	return nil
}

// Store returns the notebook
func (p *Processor) Store() *notebook.Store {
	return p.store
}

// Current returns the latest search result, if any
func (p *Processor) Current() (notebook.WordEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return notebook.WordEntry{}, false
	}
	return *p.current, true
}

// Loading reports whether the newest lookup is still in flight
func (p *Processor) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Lookup fetches a definition and then an illustration for term.
// The definition must succeed before any image is requested. A failed lookup
// leaves the previous result in place. When a newer lookup started meanwhile,
// the entry is returned together with ErrStale and is not made current.
func (p *Processor) Lookup(ctx context.Context, term string) (*notebook.WordEntry, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptyQuery
	}

	settings := p.Settings()
	epoch := p.begin()

	def, err := p.client.Definition(ctx, term, settings.Native, settings.Target)
	if err != nil {
		p.logger.Error("definition lookup failed", slog.String("term", term), slog.Any("error", err))
		p.finish(epoch, nil)
		return nil, &LookupError{Term: term, Err: err}
	}

	imageURL := p.client.FallbackImageURL()
	if !p.skipImage {
		imageURL = p.client.Image(ctx, term, settings.Target)
	}

	entry := &notebook.WordEntry{
		ID:               p.newID(),
		Term:             term,
		Definition:       def.Definition,
		NativeDefinition: def.NativeDefinition,
		UsageNote:        def.UsageNote,
		Examples:         def.Examples,
		ImageURL:         imageURL,
		TargetLang:       settings.Target,
		NativeLang:       settings.Native,
		CreatedAt:        p.now().UnixMilli(),
	}

	if !p.finish(epoch, entry) {
		p.logger.Debug("discarding stale lookup result", slog.String("term", term))
		return entry, ErrStale
	}
	return entry, nil
}

func (p *Processor) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = true
	return p.epoch.Add(1)
}

// finish publishes entry if epoch is still the newest lookup. A nil entry only clears loading.
func (p *Processor) finish(epoch uint64, entry *notebook.WordEntry) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.epoch.Load() != epoch {
		return false
	}
	p.loading = false
	if entry != nil {
		cp := *entry
		p.current = &cp
	}
	return true
}

// IsSaved reports whether entry is in the notebook
func (p *Processor) IsSaved(id string) bool {
	return p.store.Has(id)
}

// Save adds entry to the notebook
func (p *Processor) Save(entry notebook.WordEntry) error {
	return p.store.Add(entry)
}

// ToggleSave removes entry when saved, otherwise adds it. It returns the new saved state.
func (p *Processor) ToggleSave(entry notebook.WordEntry) (bool, error) {
	if p.store.Has(entry.ID) {
		if err := p.store.Remove(entry.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := p.store.Add(entry); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes an entry from the notebook
func (p *Processor) Remove(id string) error {
	return p.store.Remove(id)
}

// Story writes a story from the saved entries in the active target language
func (p *Processor) Story(ctx context.Context) (*content.Story, error) {
	entries := p.store.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyNotebook
	}
	return p.client.Story(ctx, entries, p.Settings().Target), nil
}

// Speak plays text in lang. Failures are reported by the speaker; nil means nothing plays.
func (p *Processor) Speak(ctx context.Context, text string, lang language.Language) audio.Playback {
	if p.speaker == nil {
		p.logger.Warn("no speaker configured")
		return nil
	}
	return p.speaker.Say(ctx, text, lang)
}

// NewControl returns a play control bound to the speaker, or nil without one
func (p *Processor) NewControl() *audio.Control {
	if p.speaker == nil {
		return nil
	}
	return audio.NewControl(p.speaker)
}

// Speech returns base64 raw PCM for text without playing it
func (p *Processor) Speech(ctx context.Context, text string, lang language.Language) (string, error) {
	if err := audio.ValidateText(text); err != nil {
		return "", err
	}
	return p.client.Speech(ctx, text, lang)
}

// BatchSummary counts the outcome of a batch lookup
type BatchSummary struct {
	Total     int
	Processed int
	Saved     int
	Skipped   int
	Errors    int
}

// LookupBatch looks up every term of a batch file. Errors are reported and
// the batch continues. Terms already in the notebook are skipped.
func (p *Processor) LookupBatch(ctx context.Context, filename string, save bool) (*BatchSummary, error) {
	items, err := batch.ReadBatchFile(filename)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{Total: len(items)}
	known := make(map[string]bool)
	for _, e := range p.store.Entries() {
		known[batchKey(e.Term, e.TargetLang)] = true
	}
	target := p.Settings().Target

	for i, item := range items {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(items), item.Term)

		if known[batchKey(item.Term, target)] {
			fmt.Fprintf(p.out, "  ✓ Skipping '%s' - already in notebook\n", item.Term)
			summary.Skipped++
			continue
		}

		entry, err := p.Lookup(ctx, item.Term)
		if err != nil {
			fmt.Fprintf(p.out, "  ✗ %s\n", LookupFailedMessage)
			p.logger.Warn("batch lookup failed", slog.String("term", item.Term), slog.Any("error", err))
			summary.Errors++
			continue
		}
		summary.Processed++
		fmt.Fprintf(p.out, "  %s\n", entry.Definition)

		if save {
			if err := p.store.Add(*entry); err != nil {
				p.logger.Error("failed to save entry", slog.String("term", item.Term), slog.Any("error", err))
				summary.Errors++
				continue
			}
			summary.Saved++
			known[batchKey(item.Term, target)] = true
		}
	}

	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total terms: %d\n", summary.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", summary.Processed)
	fmt.Fprintf(p.out, "Saved: %d\n", summary.Saved)
	fmt.Fprintf(p.out, "Skipped (already saved): %d\n", summary.Skipped)
	if summary.Errors > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", summary.Errors)
	}
	fmt.Fprintf(p.out, "=====================\n")

	return summary, nil
}

func batchKey(term string, target language.Language) string {
	return strings.ToLower(strings.TrimSpace(term)) + "|" + string(target)
}
