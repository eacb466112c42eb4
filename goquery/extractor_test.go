package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webinsight-api/webinsight"
	wsgoquery "github.com/webinsight-api/webinsight/goquery"
	"github.com/webinsight-api/webinsight/mock"
)

// Ensure Extractor implements webinsight.Extractor at compile time.
var _ webinsight.Extractor = (*wsgoquery.Extractor)(nil)

// failingConverter returns a converter that fails the test if the markdown
// fallback is ever reached.
func failingConverter(t *testing.T) *mock.Converter {
	t.Helper()
	return &mock.Converter{
		ConvertFn: func(string) (string, error) {
			t.Fatal("markdown fallback should not have been used")
			return "", nil
		},
	}
}

func TestExtractor_Extract_Metadata(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title> The Page Title </title>
			<meta name="description" content=" A fine description. ">
		</head><body><p>x</p></body></html>`

		e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
		page := e.Extract(html)

		assert.Equal(t, "The Page Title", page.Title)
		assert.Equal(t, "A fine description.", page.Description)
	})

	t.Run("missing title and description degrade to empty strings", func(t *testing.T) {
		t.Parallel()

		e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
		page := e.Extract(`<html><body><p>x</p></body></html>`)

		assert.Empty(t, page.Title)
		assert.Empty(t, page.Description)
	})

	t.Run("extracts open graph metadata with og prefix stripped", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:title" content="OG Title">
			<meta property="og:image" content="https://example.com/img.png">
			<meta property="og:site_name" content=" Example ">
		</head><body></body></html>`

		e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
		page := e.Extract(html)

		assert.Equal(t, "OG Title", page.OpenGraph["title"])
		assert.Equal(t, "https://example.com/img.png", page.OpenGraph["image"])
		assert.Equal(t, "Example", page.OpenGraph["site_name"])
	})

	t.Run("duplicate og properties are last-wins", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:title" content="A">
			<meta property="og:title" content="B">
		</head><body></body></html>`

		e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
		page := e.Extract(html)

		assert.Equal(t, "B", page.OpenGraph["title"])
	})

	t.Run("og tags with empty content are skipped", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content=""></head><body></body></html>`

		e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
		page := e.Extract(html)

		assert.NotContains(t, page.OpenGraph, "title")
	})
}

func TestExtractor_Extract_NeverFails(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"empty":         "",
		"garbage":       "<<<>>>&&&",
		"unclosed tags": "<html><body><div><p>text",
		"plain text":    "just words, no markup",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := wsgoquery.NewExtractor(&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }})
			page := e.Extract(input)

			require.NotNil(t, page)
			assert.NotNil(t, page.OpenGraph)
		})
	}
}

func TestExtractor_Extract_ContainerMethod(t *testing.T) {
	t.Parallel()

	t.Run("article wins over longer div blocks", func(t *testing.T) {
		t.Parallel()

		filler := strings.Repeat("long distracting filler text ", 20)
		html := `<html><body>
			<div>` + filler + `</div>
			<article>Real article body text.</article>
			<div>` + filler + `</div>
		</body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		assert.Equal(t, "Real article body text.", page.Content)
		assert.NotContains(t, page.Content, "distracting")
	})

	t.Run("class-based containers match", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="post">Post body here.</div></body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		assert.Equal(t, "Post body here.", page.Content)
	})

	t.Run("first container in document order wins", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>First block.</main>
			<article>Second block.</article>
		</body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		assert.Equal(t, "First block.", page.Content)
	})

	t.Run("short container text still wins over paragraphs", func(t *testing.T) {
		t.Parallel()

		paragraph := strings.Repeat("plenty of paragraph prose here ", 5)
		html := `<html><body>
			<article>Tiny.</article>
			<p>` + paragraph + `</p><p>` + paragraph + `</p>
			<p>` + paragraph + `</p><p>` + paragraph + `</p>
		</body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		assert.Equal(t, "Tiny.", page.Content)
	})
}

func TestExtractor_Extract_ParagraphMethod(t *testing.T) {
	t.Parallel()

	t.Run("aggregates substantial paragraphs when no container exists", func(t *testing.T) {
		t.Parallel()

		paragraph := strings.Repeat("relevant article prose continues ", 5) // ~165 runes
		var sb strings.Builder
		sb.WriteString("<html><body>")
		for i := 0; i < 5; i++ {
			sb.WriteString("<p>" + paragraph + "</p>")
		}
		sb.WriteString("<p>too short</p>")
		sb.WriteString("</body></html>")

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(sb.String())

		assert.Contains(t, page.Content, "relevant article prose")
		assert.NotContains(t, page.Content, "too short")
	})

	t.Run("three or fewer paragraphs fall through", func(t *testing.T) {
		t.Parallel()

		block := strings.Repeat("aggregate block wording keeps going ", 8) // >200 runes
		html := `<html><body>
			<p>first short paragraph of the page</p>
			<p>second short paragraph of the page</p>
			<section>` + block + `</section>
		</body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		// Two <p> tags are below the paragraph threshold, so the largest
		// block heuristic picks the section.
		assert.Contains(t, page.Content, "aggregate block wording")
	})
}

func TestExtractor_Extract_LargestBlockMethod(t *testing.T) {
	t.Parallel()

	t.Run("picks longest div or section", func(t *testing.T) {
		t.Parallel()

		shorter := strings.Repeat("shorter block text keeps going ", 8)  // ~250 runes
		longer := strings.Repeat("longer winning block text flows ", 13) // ~400 runes
		html := `<html><body>
			<div>` + shorter + `</div>
			<section>` + longer + `</section>
		</body></html>`

		e := wsgoquery.NewExtractor(failingConverter(t))
		page := e.Extract(html)

		assert.Contains(t, page.Content, "longer winning block")
		assert.NotContains(t, page.Content, "shorter block")
	})

	t.Run("blocks at or below the minimum length are ignored", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div>small block</div></body></html>`

		converted := false
		conv := &mock.Converter{ConvertFn: func(string) (string, error) {
			converted = true
			return "fallback output", nil
		}}

		e := wsgoquery.NewExtractor(conv)
		page := e.Extract(html)

		assert.True(t, converted, "markdown fallback should have been used")
		assert.Equal(t, "fallback output", page.Content)
	})
}

func TestExtractor_Extract_MarkdownFallback(t *testing.T) {
	t.Parallel()

	t.Run("strips image markdown and collapses blank lines", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{ConvertFn: func(string) (string, error) {
			return "Some text\n\n\n\nMore text ![alt](img.png) trailing", nil
		}}

		e := wsgoquery.NewExtractor(conv)
		page := e.Extract(`<html><body><span>hi</span></body></html>`)

		assert.Equal(t, "Some text More text trailing", page.Content)
	})

	t.Run("converter failure degrades to empty content", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{ConvertFn: func(string) (string, error) {
			return "", webinsight.Errorf(webinsight.EINTERNAL, "conversion failed")
		}}

		e := wsgoquery.NewExtractor(conv)
		page := e.Extract(`<html><body><span>hi</span></body></html>`)

		require.NotNil(t, page)
		assert.Empty(t, page.Content)
	})
}
