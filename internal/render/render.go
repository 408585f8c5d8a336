package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-landing/document"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("landing").ParseFS(templatesFS, "templates/*.tmpl"))

const (
	DefaultLanguage   = "en"
	DefaultStylesheet = "https://cdn.tailwindcss.com"

	placeholderMessage = "Your landing page is being generated..."
	defaultCTAText     = "Get Started"
	defaultHeroLink    = "#cta"
	defaultCTALink     = "#"
	defaultFeatureIcon = "✨"
	defaultClientName  = "Client"
)

var defaultTitles = map[document.SectionType]string{
	document.SectionFeatures:     "Why choose us?",
	document.SectionTestimonials: "What our customers say",
	document.SectionCTA:          "Ready to start?",
	document.SectionHowItWorks:   "How it works",
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// Renderer turns documents into standalone HTML pages. The zero value is not
// usable; construct with New.
type Renderer struct {
	now        func() time.Time
	lang       string
	stylesheet string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the clock used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLanguage sets the html lang attribute.
func WithLanguage(lang string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			r.lang = trimmed
		}
	}
}

// WithStylesheet sets the CSS framework script reference. An empty value
// omits the tag.
func WithStylesheet(src string) Option {
	return func(r *Renderer) {
		r.stylesheet = strings.TrimSpace(src)
	}
}

// New constructs a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		now:        time.Now,
		lang:       DefaultLanguage,
		stylesheet: DefaultStylesheet,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var defaultRenderer = New()

// Render renders doc with the package default renderer.
func Render(doc document.Document, titleFallback string) string {
	return defaultRenderer.Render(doc, titleFallback)
}

type pageView struct {
	Lang         string
	Title        string
	Description  string
	Stylesheet   string
	PrimaryColor template.CSS
	Sections     []template.HTML
}

// Render produces a complete HTML document. Sections render in order,
// unknown types are skipped, and a footer is synthesized when the document
// has none.
func (r *Renderer) Render(doc document.Document, titleFallback string) string {
	title := strings.TrimSpace(titleFallback)
	page := pageView{
		Lang:         r.lang,
		Title:        title,
		Description:  description(doc, title),
		Stylesheet:   r.stylesheet,
		PrimaryColor: primaryColor(doc.Metadata.PrimaryColor),
	}

	if len(doc.Sections) == 0 {
		page.Sections = append(page.Sections, r.execute("placeholder", map[string]string{
			"Title":   title,
			"Message": placeholderMessage,
		}))
	}

	for _, section := range doc.Sections {
		if fragment, ok := r.section(section, doc.Metadata, title); ok {
			page.Sections = append(page.Sections, fragment)
		}
	}
	if !doc.HasType(document.SectionFooter) {
		page.Sections = append(page.Sections, r.execute("footer", footerView{Copyright: r.copyright(title)}))
	}

	return string(r.execute("page", page))
}

func (r *Renderer) section(section document.Section, meta document.Metadata, title string) (template.HTML, bool) {
	switch section.Type {
	case document.SectionHero:
		return r.execute("hero", heroView{
			Headline:    firstNonEmpty(section.Text("headline"), meta.Headline, title),
			Subheadline: firstNonEmpty(section.Text("subheadline"), meta.Subheadline),
			CTAText:     firstNonEmpty(section.Text("ctaText"), defaultCTAText),
			CTALink:     firstNonEmpty(section.Text("ctaLink"), defaultHeroLink),
		}), true
	case document.SectionFeatures:
		items := section.Items(document.FieldFeatures)
		view := featuresView{
			Title:   sectionTitle(section),
			Columns: gridColumns(len(items)),
		}
		for _, item := range items {
			view.Items = append(view.Items, featureView{
				Icon:        firstNonEmpty(document.ItemText(item, "icon"), defaultFeatureIcon),
				Title:       document.ItemText(item, "title"),
				Description: document.ItemText(item, "description"),
			})
		}
		return r.execute("features", view), true
	case document.SectionTestimonials:
		view := testimonialsView{Title: sectionTitle(section)}
		for _, item := range section.Items(document.FieldTestimonials) {
			name := firstNonEmpty(document.ItemText(item, "name"), defaultClientName)
			view.Items = append(view.Items, testimonialView{
				Name:    name,
				Role:    document.ItemText(item, "role"),
				Quote:   document.ItemText(item, "quote"),
				Initial: initial(name),
			})
		}
		return r.execute("testimonials", view), true
	case document.SectionCTA:
		return r.execute("cta", ctaView{
			Title:    sectionTitle(section),
			Subtitle: section.Text("subtitle"),
			CTAText:  firstNonEmpty(section.Text("ctaText"), defaultCTAText),
			CTALink:  firstNonEmpty(section.Text("ctaLink"), defaultCTALink),
		}), true
	case document.SectionHowItWorks:
		view := stepsView{Title: sectionTitle(section)}
		for i, item := range section.Items(document.FieldSteps) {
			view.Steps = append(view.Steps, stepView{
				Number:      i + 1,
				Title:       document.ItemText(item, "title"),
				Description: document.ItemText(item, "description"),
			})
		}
		return r.execute("how-it-works", view), true
	case document.SectionFooter:
		return r.execute("footer", footerView{
			Copyright: firstNonEmpty(section.Text("copyright"), r.copyright(title)),
		}), true
	default:
		return "", false
	}
}

func (r *Renderer) execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are embedded and fixed; an execution error is a programming bug.
		panic(fmt.Sprintf("render: template %s: %v", name, err))
	}
	return template.HTML(buf.String())
}

func (r *Renderer) copyright(title string) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", r.now().Year(), title)
}

type heroView struct {
	Headline    string
	Subheadline string
	CTAText     string
	CTALink     string
}

type featuresView struct {
	Title   string
	Columns int
	Items   []featureView
}

type featureView struct {
	Icon        string
	Title       string
	Description string
}

type testimonialsView struct {
	Title string
	Items []testimonialView
}

type testimonialView struct {
	Name    string
	Role    string
	Quote   string
	Initial string
}

type ctaView struct {
	Title    string
	Subtitle string
	CTAText  string
	CTALink  string
}

type stepsView struct {
	Title string
	Steps []stepView
}

type stepView struct {
	Number      int
	Title       string
	Description string
}

type footerView struct {
	Copyright string
}

func sectionTitle(section document.Section) string {
	return firstNonEmpty(section.Text("title"), defaultTitles[section.Type])
}

func description(doc document.Document, title string) string {
	for _, section := range doc.Sections {
		if section.Type == document.SectionHero {
			if sub := strings.TrimSpace(section.Text("subheadline")); sub != "" {
				return sub
			}
			break
		}
	}
	return firstNonEmpty(doc.Metadata.Subheadline, title)
}

func primaryColor(value string) template.CSS {
	value = strings.TrimSpace(value)
	if !colorPattern.MatchString(value) {
		value = document.DefaultPrimaryColor
	}
	return template.CSS(value)
}

func gridColumns(n int) int {
	switch {
	case n <= 0:
		return 3
	case n > 4:
		return 4
	default:
		return n
	}
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
