package anki

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/poplingo/internal"
	"codeberg.org/snonux/poplingo/internal/image"
)

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName   string
	deckID     int64
	modelID    int64
	cards      []Card
	fetcher    ImageFetcher
	logger     *slog.Logger
	media      [][]byte       // media content by number
	mediaFiles map[string]int // maps media filename to media number
	images     map[int]string // maps card index to its media filename
}

// NewAPKGGenerator creates a new APKG generator. Remote card images are
// fetched with fetcher; a nil fetcher only embeds inline images.
func NewAPKGGenerator(deckName string, fetcher ImageFetcher) *APKGGenerator {
	// Generate IDs based on timestamp to ensure uniqueness
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:   deckName,
		deckID:     now,
		modelID:    now + 1,
		cards:      make([]Card, 0),
		fetcher:    fetcher,
		logger:     slog.Default(),
		mediaFiles: make(map[string]int),
		images:     make(map[int]string),
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(ctx context.Context, outputPath string) error {
	tempDir, err := os.MkdirTemp("", "anki_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Collect media FIRST (this populates g.mediaFiles and g.images)
	g.collectMedia(ctx)

	if err := g.writeMedia(tempDir); err != nil {
		return fmt.Errorf("failed to write media files: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if err := g.insertNotesAndCards(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return tx.Commit()
}

// createTables creates the required Anki database tables
func (g *APKGGenerator) createTables(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		// Create indexes
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// insertCollection inserts the collection metadata
func (g *APKGGenerator) insertCollection(db *sqlx.DB) error {
	now := time.Now().Unix()

	// Create deck configuration
	// The arrays are [learningCount, reviewCount] for today's stats
	decks := map[string]interface{}{
		"1": map[string]interface{}{
			"id":               1,
			"name":             "Default",
			"mod":              now,
			"desc":             "",
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
		fmt.Sprintf("%d", g.deckID): map[string]interface{}{
			"id":               g.deckID,
			"name":             g.deckName,
			"mod":              now,
			"desc":             "Vocabulary cards exported from PopLingo",
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
	}
	decksJSON, _ := json.Marshal(decks)

	// Create model (note type) configuration
	models := map[string]interface{}{
		fmt.Sprintf("%d", g.modelID): g.createNoteTypeConfig(),
	}
	modelsJSON, _ := json.Marshal(models)

	// Default configuration
	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", g.modelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	// Deck options
	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

// createNoteTypeConfig creates the note type configuration
func (g *APKGGenerator) createNoteTypeConfig() map[string]interface{} {
	return map[string]interface{}{
		"id":    g.modelID,
		"name":  "PopLingo Vocabulary (Basic + Reverse)",
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]interface{}{[]interface{}{0, "all", []int{0}}, []interface{}{1, "all", []int{1}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":  noteFields(),
		"tmpls": []map[string]interface{}{
			{
				"name":  "Forward",
				"ord":   0,
				"qfmt":  g.getFrontTemplate(),
				"afmt":  g.getBackTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "Reverse",
				"ord":   1,
				"qfmt":  g.getReverseFrontTemplate(),
				"afmt":  g.getReverseBackTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": g.getCSS(),
	}
}

// noteFields lists the note type fields in order
func noteFields() []map[string]interface{} {
	names := []string{"Term", "Definition", "Meaning", "Image", "Examples", "Note"}
	fields := make([]map[string]interface{}, len(names))
	for i, name := range names {
		size := 20
		if name == "Examples" || name == "Note" {
			size = 16
		}
		fields[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   size,
			"media":  []string{},
		}
	}
	return fields
}

// getFrontTemplate returns the question template
func (g *APKGGenerator) getFrontTemplate() string {
	return `<div class="front">
{{#Image}}
<div class="image-container">
{{Image}}
</div>
{{/Image}}
<div class="term">{{Term}}</div>
</div>`
}

// getBackTemplate returns the answer template
func (g *APKGGenerator) getBackTemplate() string {
	return `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="definition">{{Definition}}</div>
<div class="meaning">{{Meaning}}</div>
{{#Examples}}
<div class="examples">{{Examples}}</div>
{{/Examples}}
{{#Note}}
<div class="note">{{Note}}</div>
{{/Note}}
</div>`
}

// getReverseFrontTemplate returns the question template for the reverse card
func (g *APKGGenerator) getReverseFrontTemplate() string {
	return `<div class="front">
<div class="meaning">{{Meaning}}</div>
</div>`
}

// getReverseBackTemplate returns the answer template for the reverse card
func (g *APKGGenerator) getReverseBackTemplate() string {
	return `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="term">{{Term}}</div>
{{#Image}}
<div class="image-container">
{{Image}}
</div>
{{/Image}}
<div class="definition">{{Definition}}</div>
{{#Examples}}
<div class="examples">{{Examples}}</div>
{{/Examples}}
</div>`
}

// getCSS returns the card styling
func (g *APKGGenerator) getCSS() string {
	return `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #222;
  background-color: #fffbea;
}

.front, .back {
  padding: 20px;
}

.image-container img {
  max-width: 100%;
  height: auto;
  border: 3px solid #222;
  border-radius: 12px;
}

.term {
  font-size: 34px;
  font-weight: bold;
  color: #e63946;
  margin: 20px 0;
}

.definition {
  font-size: 22px;
  margin: 10px 0;
}

.meaning {
  font-size: 22px;
  color: #1d3557;
  margin: 10px 0;
}

.examples {
  font-size: 16px;
  text-align: left;
  margin-top: 15px;
}

.note {
  font-size: 16px;
  color: #6c757d;
  margin-top: 20px;
  font-style: italic;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 2px dashed #222;
}`
}

// insertNotesAndCards inserts all notes and cards into the database
func (g *APKGGenerator) insertNotesAndCards(tx *sqlx.Tx) error {
	now := time.Now()

	for i, card := range g.cards {
		// Generate unique IDs, leaving space for 2 cards per note
		noteID := now.UnixMilli() + int64(i*3)
		cardID1 := noteID + 1
		cardID2 := noteID + 2

		imageField := ""
		if filename, ok := g.images[i]; ok {
			imageField = imageTag(filename)
		} else if card.ImageURL != "" && !image.IsDataURI(card.ImageURL) {
			imageField = imageTag(card.ImageURL)
		}

		// Join fields with field separator (ASCII 31)
		fields := strings.Join([]string{
			html.EscapeString(card.Term),
			html.EscapeString(card.Definition),
			html.EscapeString(card.NativeDefinition),
			imageField,
			formatExamples(card.Examples),
			html.EscapeString(card.UsageNote),
		}, "\x1f")

		guid := fmt.Sprintf("pl_%s", card.ID)
		if card.ID == "" {
			guid = fmt.Sprintf("pl_%d_%d", now.Unix(), i)
		}

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.Exec(noteQuery,
			noteID,     // id
			guid,       // guid
			g.modelID,  // mid
			now.Unix(), // mod
			-1,         // usn
			tags(card), // tags
			fields,     // flds
			card.Term,  // sfld (sort field)
			0,          // csum
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for ord, id := range []int64{cardID1, cardID2} {
			_, err = tx.Exec(cardQuery,
				id,                // id
				noteID,            // nid
				g.deckID,          // did
				ord,               // ord (template)
				now.Unix(),        // mod
				-1,                // usn
				0,                 // type (0=new)
				0,                 // queue (0=new)
				noteID+int64(ord), // due (for new cards, this is position)
				0,                 // ivl
				0,                 // factor
				0,                 // reps
				0,                 // lapses
				0,                 // left
				0,                 // odue
				0,                 // odid
				0,                 // flags
				"",                // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card %d of note %q: %w", ord, card.Term, err)
			}
		}
	}

	return nil
}

// tags returns the space separated Anki tags of a card
func tags(card Card) string {
	if card.TargetLang == "" {
		return " poplingo "
	}
	return " poplingo " + internal.SanitizeFilename(string(card.TargetLang)) + " "
}

// collectMedia loads every card image and assigns it a media number.
// Images that cannot be loaded are skipped with a warning.
func (g *APKGGenerator) collectMedia(ctx context.Context) {
	for i, card := range g.cards {
		img, err := loadImage(ctx, g.fetcher, card)
		if err != nil {
			g.logger.Warn("skipping card image", slog.String("term", card.Term), slog.Any("error", err))
			continue
		}
		if img == nil || len(img.Data) == 0 {
			continue
		}

		filename := mediaName(card, img)
		if _, exists := g.mediaFiles[filename]; !exists {
			g.mediaFiles[filename] = len(g.media)
			g.media = append(g.media, img.Data)
		}
		g.images[i] = filename
	}
}

// writeMedia writes numbered media files and the media mapping file
func (g *APKGGenerator) writeMedia(tempDir string) error {
	// Media files go directly in the temp directory with numeric names
	for num, data := range g.media {
		if err := os.WriteFile(filepath.Join(tempDir, strconv.Itoa(num)), data, 0644); err != nil {
			return err
		}
	}

	// Reverse mapping (number -> filename)
	mapping := make(map[string]string)
	for filename, num := range g.mediaFiles {
		mapping[strconv.Itoa(num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

// createZipPackage creates the final .apkg zip file
func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	err = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		return err
	}

	return archive.Close()
}
