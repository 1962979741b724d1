package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
	"codeberg.org/snonux/poplingo/internal/testutil"
)

var gen testutil.TestDataGenerator

type fixture struct {
	proc     *Processor
	provider *testutil.MockProvider
	slot     *notebook.MemorySlot
	sink     *testutil.MockSink
	notifier *testutil.MockNotifier
	out      *bytes.Buffer
}

func newFixture(t *testing.T, provider content.Provider, mock *testutil.MockProvider) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	slot := notebook.NewMemorySlot(nil)
	store := notebook.Open(slot, logger)
	client := content.NewClient(provider, logger)
	sink := &testutil.MockSink{}
	notifier := &testutil.MockNotifier{}
	speaker := audio.NewSpeaker(client, audio.NewPlayer(sink), notifier, logger)
	out := &bytes.Buffer{}

	proc := NewProcessor(client, store, Options{Speaker: speaker, Logger: logger, Out: out})

	ids := 0
	proc.newID = func() string {
		ids++
		return fmt.Sprintf("entry-%d", ids)
	}
	proc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return &fixture{proc: proc, provider: mock, slot: slot, sink: sink, notifier: notifier, out: out}
}

func newMockFixture(t *testing.T) *fixture {
	mock := &testutil.MockProvider{
		StructuredResponse: gen.DefinitionJSON(),
		ImageResponse:      &image.Image{MIMEType: "image/png", Data: gen.GenerateImageData()},
		TextResponse:       "Una historia con **manzana**.",
		SpeechResponse:     gen.GeneratePCM(1, -1, 2),
	}
	return newFixture(t, mock, mock)
}

func TestNewProcessor_Defaults(t *testing.T) {
	f := newMockFixture(t)

	s := f.proc.Settings()
	assert.Equal(t, language.English, s.Native)
	assert.Equal(t, language.Spanish, s.Target)

	_, ok := f.proc.Current()
	assert.False(t, ok)
}

func TestSetSettings(t *testing.T) {
	f := newMockFixture(t)

	require.NoError(t, f.proc.SetSettings(Settings{Native: language.German, Target: language.Japanese}))
	assert.Equal(t, language.Japanese, f.proc.Settings().Target)

	// Same language on both sides is allowed
	require.NoError(t, f.proc.SetSettings(Settings{Native: language.French, Target: language.French}))

	err := f.proc.SetSettings(Settings{Native: "Klingon", Target: language.French})
	assert.ErrorIs(t, err, language.ErrUnknownLanguage)
	assert.Equal(t, language.French, f.proc.Settings().Native)
}

func TestLookup_Success(t *testing.T) {
	f := newMockFixture(t)

	entry, err := f.proc.Lookup(context.Background(), "Manzana ")
	require.NoError(t, err)

	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, "Manzana ", entry.Term, "term is stored verbatim")
	assert.NotEmpty(t, entry.Definition)
	assert.NotEmpty(t, entry.NativeDefinition)
	assert.NotEmpty(t, entry.UsageNote)
	assert.Len(t, entry.Examples, 2)
	assert.True(t, strings.HasPrefix(entry.ImageURL, "data:image/png;base64,"))
	assert.Equal(t, language.Spanish, entry.TargetLang)
	assert.Equal(t, language.English, entry.NativeLang)
	assert.Equal(t, int64(1700000000000), entry.CreatedAt)

	current, ok := f.proc.Current()
	require.True(t, ok)
	assert.Equal(t, *entry, current)
	assert.False(t, f.proc.Loading())

	// Definition strictly before image
	assert.Equal(t, []string{"Structured", "Image"}, f.provider.Calls)
	assert.False(t, f.proc.IsSaved(entry.ID), "lookup does not save")
}

func TestLookup_EmptyTerm(t *testing.T) {
	f := newMockFixture(t)

	for _, term := range []string{"", "   ", "\t\n"} {
		_, err := f.proc.Lookup(context.Background(), term)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Empty(t, f.provider.Calls)
}

func TestLookup_DefinitionFailureKeepsPreviousResult(t *testing.T) {
	f := newMockFixture(t)

	first, err := f.proc.Lookup(context.Background(), "manzana")
	require.NoError(t, err)

	f.provider.StructuredResponse = "not json at all"
	callsBefore := f.provider.CallCount("Image")

	_, err = f.proc.Lookup(context.Background(), "xyzzy")
	var lerr *LookupError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, LookupFailedMessage, lerr.Message())

	var serr *content.ServiceError
	assert.True(t, errors.As(err, &serr))

	assert.Equal(t, callsBefore, f.provider.CallCount("Image"), "no image request after failed definition")

	current, ok := f.proc.Current()
	require.True(t, ok)
	assert.Equal(t, first.ID, current.ID)
	assert.False(t, f.proc.Loading())
}

func TestLookup_ImageFailureStillCompletes(t *testing.T) {
	f := newMockFixture(t)
	f.provider.ImageErr = errors.New("image quota")

	entry, err := f.proc.Lookup(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, content.DefaultFallbackImageURL, entry.ImageURL)
	assert.NotEmpty(t, entry.Definition)
}

func TestLookup_SkipImage(t *testing.T) {
	f := newMockFixture(t)
	f.proc.skipImage = true

	entry, err := f.proc.Lookup(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, content.DefaultFallbackImageURL, entry.ImageURL)
	assert.Equal(t, 0, f.provider.CallCount("Image"))
}

func TestLookup_EntryFreezesLanguages(t *testing.T) {
	f := newMockFixture(t)

	entry, err := f.proc.Lookup(context.Background(), "manzana")
	require.NoError(t, err)
	require.NoError(t, f.proc.Save(*entry))

	require.NoError(t, f.proc.SetSettings(Settings{Native: language.German, Target: language.Italian}))

	saved, ok := f.proc.Store().Get(entry.ID)
	require.True(t, ok)
	assert.Equal(t, language.Spanish, saved.TargetLang)
	assert.Equal(t, language.English, saved.NativeLang)
}

// gatedProvider blocks definitions of terms listed in gates until the gate is closed
type gatedProvider struct {
	*testutil.MockProvider
	gates map[string]chan struct{}
}

func (g *gatedProvider) Structured(ctx context.Context, prompt string, schema *content.Schema) (string, error) {
	for term, gate := range g.gates {
		if strings.Contains(prompt, fmt.Sprintf("%q", term)) {
			<-gate
		}
	}
	return g.MockProvider.Structured(ctx, prompt, schema)
}

func TestLookup_StaleResultDoesNotOverwrite(t *testing.T) {
	mock := &testutil.MockProvider{
		StructuredResponse: gen.DefinitionJSON(),
		ImageResponse:      &image.Image{MIMEType: "image/png", Data: gen.GenerateImageData()},
	}
	gate := make(chan struct{})
	f := newFixture(t, &gatedProvider{MockProvider: mock, gates: map[string]chan struct{}{"slow": gate}}, mock)

	type result struct {
		entry *notebook.WordEntry
		err   error
	}
	slowDone := make(chan result, 1)
	go func() {
		e, err := f.proc.Lookup(context.Background(), "slow")
		slowDone <- result{e, err}
	}()

	require.Eventually(t, f.proc.Loading, time.Second, time.Millisecond)

	fast, err := f.proc.Lookup(context.Background(), "fast")
	require.NoError(t, err)

	close(gate)
	slow := <-slowDone

	assert.ErrorIs(t, slow.err, ErrStale)
	require.NotNil(t, slow.entry)
	assert.Equal(t, "slow", slow.entry.Term)

	current, ok := f.proc.Current()
	require.True(t, ok)
	assert.Equal(t, fast.ID, current.ID)
	assert.Equal(t, "fast", current.Term)
}

func TestToggleSave(t *testing.T) {
	f := newMockFixture(t)
	entry, err := f.proc.Lookup(context.Background(), "manzana")
	require.NoError(t, err)

	saved, err := f.proc.ToggleSave(*entry)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, f.proc.IsSaved(entry.ID))

	saved, err = f.proc.ToggleSave(*entry)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, f.proc.IsSaved(entry.ID))
	assert.Equal(t, "[]", string(f.slot.Data()))
}

func TestStory(t *testing.T) {
	f := newMockFixture(t)

	_, err := f.proc.Story(context.Background())
	assert.ErrorIs(t, err, ErrEmptyNotebook)
	assert.Equal(t, 0, f.provider.CallCount("Text"))

	require.NoError(t, f.proc.Save(gen.GenerateEntry("a", "manzana")))
	require.NoError(t, f.proc.Save(gen.GenerateEntry("b", "pera")))

	story, err := f.proc.Story(context.Background())
	require.NoError(t, err)
	assert.False(t, story.Fallback)
	assert.Len(t, story.Entries, 2)
	assert.Contains(t, f.provider.LastPrompt(), "manzana")
	assert.Contains(t, f.provider.LastPrompt(), "pera")
}

func TestStory_FailureFallsBack(t *testing.T) {
	f := newMockFixture(t)
	f.provider.TextErr = errors.New("boom")
	require.NoError(t, f.proc.Save(gen.GenerateEntry("a", "manzana")))

	story, err := f.proc.Story(context.Background())
	require.NoError(t, err)
	assert.True(t, story.Fallback)
	assert.Equal(t, content.StoryFallbackText, story.Text)
}

func TestSpeak(t *testing.T) {
	f := newMockFixture(t)

	pb := f.proc.Speak(context.Background(), "manzana", language.Spanish)
	require.NotNil(t, pb)
	require.NoError(t, pb.Wait())
	assert.Equal(t, 1, f.sink.Played())
	assert.Equal(t, 1, f.provider.CallCount("Speech es-ES"))

	f.provider.SpeechErr = errors.New("tts down")
	assert.Nil(t, f.proc.Speak(context.Background(), "manzana", language.Spanish))
	assert.Equal(t, []string{audio.PlaybackFailedMessage}, f.notifier.Messages)
}

func TestNewControl(t *testing.T) {
	f := newMockFixture(t)

	control := f.proc.NewControl()
	require.NotNil(t, control)
	assert.True(t, control.TriggerAndWait(context.Background(), "gato", language.Spanish))
	assert.Equal(t, 1, f.sink.Played())

	bare := NewProcessor(content.NewClient(f.provider, nil), f.proc.Store(), Options{})
	assert.Nil(t, bare.NewControl())
}

func TestSpeech(t *testing.T) {
	f := newMockFixture(t)

	out, err := f.proc.Speech(context.Background(), "hola", language.Spanish)
	require.NoError(t, err)
	assert.Equal(t, audio.Encode(gen.GeneratePCM(1, -1, 2)), out)

	_, err = f.proc.Speech(context.Background(), " ", language.Spanish)
	assert.Error(t, err)
}

func TestLookupBatch(t *testing.T) {
	f := newMockFixture(t)
	require.NoError(t, f.proc.Save(gen.GenerateEntry("existing", "gato")))

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("manzana = apple\n# comment\nGato\npera\n"), 0644))

	summary, err := f.proc.LookupBatch(context.Background(), path, true)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Saved)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 3, f.proc.Store().Len())
	assert.Contains(t, f.out.String(), "=== Batch Summary ===")
}

func TestLookupBatch_ContinuesAfterErrors(t *testing.T) {
	f := newMockFixture(t)
	f.provider.StructuredErr = errors.New("offline")

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("uno\ndos\n"), 0644))

	summary, err := f.proc.LookupBatch(context.Background(), path, true)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 2, f.provider.CallCount("Structured"))
	assert.Contains(t, f.out.String(), LookupFailedMessage)
}

func TestLookupBatch_MissingFile(t *testing.T) {
	f := newMockFixture(t)
	_, err := f.proc.LookupBatch(context.Background(), "/nonexistent/words.txt", false)
	assert.Error(t, err)
}
