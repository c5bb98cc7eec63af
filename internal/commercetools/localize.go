package commercetools

import (
	"runtime/debug"
	"sort"
)

// =============================================================================
// LOCALIZATION
// =============================================================================
//
// commercetools stores localizable text as language-keyed maps, e.g.
// {"en": "Shoes", "de": "Schuhe"}. The codec resolves them to a single
// string per request:
//   1. The query's language
//   2. English
//   3. The lexically first key present, so the fallback is deterministic
// An empty translation counts as missing and falls through to the next
// step. A map with nothing usable resolves to "" with a debug log line,
// never an error; a missing translation is a content problem, not a
// request failure.
// =============================================================================

const defaultLanguage = "en"

// localizeString resolves a language-keyed text map against the query's
// language.
func (c *Codec) localizeString(text map[string]string, lang string) string {
	if lang == "" {
		lang = defaultLanguage
	}
	if v := text[lang]; v != "" {
		return v
	}
	if v := text[defaultLanguage]; v != "" {
		return v
	}
	keys := make([]string, 0, len(text))
	for k := range text {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := text[k]; v != "" {
			return v
		}
	}

	c.logger.Debug("no localizable value", "language", lang, "stack", string(debug.Stack()))
	return ""
}

// localizeValue resolves a dynamic attribute value. Plain scalars pass
// through. Enum values unwrap to their label, which may itself be localized
// text. Language-keyed maps resolve like localizeString.
func (c *Codec) localizeValue(value any, lang string) any {
	switch v := value.(type) {
	case nil:
		c.logger.Debug("nil attribute value", "stack", string(debug.Stack()))
		return nil
	case string, bool, float64:
		return v
	case map[string]any:
		if label, ok := v["label"]; ok {
			return c.localizeValue(label, lang)
		}
		text := make(map[string]string, len(v))
		for k, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return v
			}
			text[k] = s
		}
		return c.localizeString(text, lang)
	default:
		return v
	}
}
