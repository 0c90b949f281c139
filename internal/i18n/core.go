package i18n

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"golang.org/x/text/language"
)

var (
	mu          sync.RWMutex
	translator  *I18n
	defaultLang = cnst.LangDefault
)

// SetDefaultLanguage sets the language used when a request names none
func SetDefaultLanguage(lang string) {
	mu.Lock()
	defer mu.Unlock()
	defaultLang = normalizeLang(lang, cnst.LangDefault)
}

func getDefaultLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLang
}

// InitTranslator loads translations from dir and installs the global translator
func InitTranslator(dir string) error {
	t := NewI18n(language.Make(getDefaultLang()))
	if err := t.LoadTranslations(dir); err != nil {
		return err
	}
	mu.Lock()
	translator = t
	mu.Unlock()
	return nil
}

// GetTranslator returns the global translator, nil before InitTranslator
func GetTranslator() *I18n {
	mu.RLock()
	defer mu.RUnlock()
	return translator
}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &I18n{bundle: bundle, defaultLang: defaultLang}
}

// LoadTranslations loads every *.toml file under dir, the file name is the language tag
func (i *I18n) LoadTranslations(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		if _, err := i.bundle.LoadMessageFile(filepath.Join(dir, file.Name())); err != nil {
			return fmt.Errorf("failed to load %s: %w", file.Name(), err)
		}
	}
	return nil
}

// Translate returns the localized message, or msgID when nothing matches
func (i *I18n) Translate(msgID string, lang string, data map[string]any) string {
	localizer := i18n.NewLocalizer(i.bundle, lang, i.defaultLang.String())
	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		lc.TemplateData = data
	}
	msg, err := localizer.Localize(lc)
	if err != nil {
		// a default-language fallback still carries a MessageNotFoundErr
		var nf *i18n.MessageNotFoundErr
		if errors.As(err, &nf) && msg != "" {
			return msg
		}
		return msgID
	}
	return msg
}

// TranslateMessage translates msgID in the language stored on the gin context
func TranslateMessage(c *gin.Context, msgID string, data map[string]any) string {
	t := GetTranslator()
	if t == nil {
		return msgID
	}
	return t.Translate(msgID, langFromContext(c), data)
}

func langFromContext(c *gin.Context) string {
	if c != nil {
		if v, ok := c.Get(cnst.XLang); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return getDefaultLang()
}

// getLanguageFromRequest reads X-Lang then Accept-Language
func getLanguageFromRequest(r *http.Request) string {
	fallback := getDefaultLang()
	if lang := r.Header.Get(cnst.XLang); lang != "" {
		return normalizeLang(lang, fallback)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			return normalizeLang(tags[0].String(), fallback)
		}
	}
	return fallback
}

// normalizeLang reduces a tag to a supported base language
func normalizeLang(lang, fallback string) string {
	code := strings.ToLower(strings.Split(strings.TrimSpace(lang), "-")[0])
	for _, supported := range cnst.SupportedLangs {
		if code == supported {
			return code
		}
	}
	return fallback
}
