package ffi

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/tailscale/hujson"
)

//go:embed locales.jsonc
var localesJSONC []byte

var (
	localesOnce sync.Once
	locales     map[string]map[string]string
	localesErr  error
)

func loadLocales() (map[string]map[string]string, error) {
	localesOnce.Do(func() {
		standardized, err := hujson.Standardize(localesJSONC)
		if err != nil {
			localesErr = err
			return
		}

		var table map[string]map[string]string
		if err := json.Unmarshal(standardized, &table); err != nil {
			localesErr = err
			return
		}

		locales = table
	})

	return locales, localesErr
}

// LocalizedMessage resolves key against locale's table, falling back to
// key itself when the locale or the key within it is unavailable (spec §7
// propagation policy).
func LocalizedMessage(locale, key string) string {
	table, err := loadLocales()
	if err != nil {
		return key
	}

	byKey, ok := table[locale]
	if !ok {
		return key
	}

	msg, ok := byKey[key]
	if !ok {
		return key
	}

	return msg
}

// LocalizedError resolves err's taxonomy key against locale.
func LocalizedError(locale string, err error) string {
	return LocalizedMessage(locale, TaxonomyKey(err))
}
