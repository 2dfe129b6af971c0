package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// PageContextProvider carries page-level localization and request metadata
// into template rendering.
type PageContextProvider interface {
	// T translates a message ID to the current locale with optional template data.
	// If a prefix was set via Namespace(), it will be prepended to the message ID.
	T(key string, args ...map[string]interface{}) string

	// TSafe is like T but returns an empty string on error instead of panicking.
	TSafe(key string, args ...map[string]interface{}) string

	// Namespace returns a new PageContextProvider with the specified prefix.
	// All translation calls on the returned context will be prefixed with the given namespace.
	Namespace(prefix string) PageContextProvider

	// GetLocale returns the language.Tag for the current page context.
	GetLocale() language.Tag

	// GetURL returns the *url.URL for the current request.
	GetURL() *url.URL

	// GetLocalizer returns the *i18n.Localizer for the current page context.
	GetLocalizer() *i18n.Localizer
}

// PageContext provides localization and page metadata for template rendering.
type PageContext struct {
	Locale    language.Tag
	URL       *url.URL
	Localizer *i18n.Localizer
	prefix    string
}

// Verify PageContext implements PageContextProvider interface at compile time.
var _ PageContextProvider = (*PageContext)(nil)

func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}

	messageID := k
	if p.prefix != "" {
		messageID = p.prefix + "." + k
	}

	if len(args) == 0 {
		return p.Localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: messageID})
	}
	return p.Localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: args[0]})
}

func (p *PageContext) TSafe(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}

	messageID := k
	if p.prefix != "" {
		messageID = p.prefix + "." + k
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}

	result, err := p.Localizer.Localize(cfg)
	if err != nil {
		return ""
	}

	return result
}

// Namespace returns a new PageContextProvider with the specified prefix.
// All translation calls on the returned context will be prefixed with the given namespace.
func (p *PageContext) Namespace(prefix string) PageContextProvider {
	return &PageContext{
		Locale:    p.Locale,
		URL:       p.URL,
		Localizer: p.Localizer,
		prefix:    prefix,
	}
}

// GetLocale returns the language.Tag for the current page context.
func (p *PageContext) GetLocale() language.Tag {
	return p.Locale
}

// GetURL returns the *url.URL for the current request.
func (p *PageContext) GetURL() *url.URL {
	return p.URL
}

// GetLocalizer returns the *i18n.Localizer for the current page context.
func (p *PageContext) GetLocalizer() *i18n.Localizer {
	return p.Localizer
}
