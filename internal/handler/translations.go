package handler

import (
	_ "embed"
	"encoding/json"

	"github.com/mmeshcher/bakkerij/internal/model"
)

//go:embed translations.json
var translationsJSON []byte

var translations = mustLoadTranslations(translationsJSON)

func mustLoadTranslations(data []byte) map[string]map[string]string {
	var t map[string]map[string]string
	if err := json.Unmarshal(data, &t); err != nil {
		panic("load translations: " + err.Error())
	}
	return t
}

// translate возвращает перевод ключа. Если перевода нет, используется голландский, затем сам ключ.
func translate(lang, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[model.DefaultLanguage][key]; ok {
		return s
	}
	return key
}
