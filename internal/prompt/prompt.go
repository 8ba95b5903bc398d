// Package prompt builds the user-facing text of the review solicitation.
package prompt

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyTitle   = "Are you enjoying %s?"
	keyMessage = "Please let us know what you think!"
	keyYes     = "Love it! 🥰"
	keyNo      = "Not really"
	keyShare   = "Check out %s!"
)

// translations are keyed by the English source string, which doubles as
// the fallback text.
var translations = map[language.Tag]map[string]string{
	language.French: {
		keyTitle:   "Vous aimez %s ?",
		keyMessage: "Dites-nous ce que vous en pensez !",
		keyYes:     "J'adore ! 🥰",
		keyNo:      "Pas vraiment",
		keyShare:   "Découvrez %s !",
	},
	language.German: {
		keyTitle:   "Gefällt dir %s?",
		keyMessage: "Sag uns, was du denkst!",
		keyYes:     "Ich liebe es! 🥰",
		keyNo:      "Nicht wirklich",
		keyShare:   "Schau dir %s an!",
	},
	language.Spanish: {
		keyTitle:   "¿Te gusta %s?",
		keyMessage: "¡Cuéntanos qué te parece!",
		keyYes:     "¡Me encanta! 🥰",
		keyNo:      "No mucho",
		keyShare:   "¡Descubre %s!",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("prompt: bad translation %s %q: %v", tag, key, err))
			}
		}
	}
	return b
}

// languages lists English followed by every translated tag.
func languages() []language.Tag {
	tags := make([]language.Tag, 0, len(translations)+1)
	tags = append(tags, language.English)
	for tag := range translations {
		tags = append(tags, tag)
	}
	return tags
}

var matcher = language.NewMatcher(languages())

// Supported reports whether tag gets its own copy rather than the English
// fallback. Regional variants match their base language.
func Supported(tag language.Tag) bool {
	_, _, confidence := matcher.Match(tag)
	return confidence != language.No
}

func printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// Copy is the text of the two-choice confirmation dialog.
type Copy struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Yes     string `json:"yes"`
	No      string `json:"no"`
}

// New returns the confirmation copy for appName in the language tag.
// Languages without a translation get English.
func New(tag language.Tag, appName string) Copy {
	p := printer(tag)
	return Copy{
		Title:   p.Sprintf(keyTitle, appName),
		Message: p.Sprintf(keyMessage),
		Yes:     p.Sprintf(keyYes),
		No:      p.Sprintf(keyNo),
	}
}

// Share is the payload of a "share this app" action sheet.
type Share struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// NewShare returns the share sheet items for appName linking to link.
func NewShare(tag language.Tag, appName, link string) Share {
	return Share{
		Text: printer(tag).Sprintf(keyShare, appName),
		URL:  link,
	}
}

// ReviewURL returns the App Store "write a review" page for appStoreID.
func ReviewURL(appStoreID string) (string, error) {
	id := strings.TrimSpace(appStoreID)
	if id == "" {
		return "", fmt.Errorf("app store id is required")
	}
	return fmt.Sprintf("https://apps.apple.com/in/app/app-name/%s?action=write-review", url.PathEscape(id)), nil
}
