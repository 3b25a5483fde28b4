package markup

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	once     sync.Once
	renderer goldmark.Markdown
	policy   *bluemonday.Policy
)

func setup() {
	renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy = bluemonday.UGCPolicy()
}

// Markdown переводит текст в HTML. Сырой HTML отбрасывает goldmark,
// остальное чистит UGC-политика bluemonday.
func Markdown(text string) template.HTML {
	once.Do(setup)

	var buf bytes.Buffer
	if err := renderer.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// FuncMap — фильтр "markdown" для html/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
	}
}
