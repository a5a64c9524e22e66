package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	field := ""
	if data != nil {
		field = data["field"]
	}
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_field":
			if field != "" {
				return "フィールド '" + field + "' が重複しています"
			}
			return "フィールドが重複しています"
		case "missing_field":
			if field != "" {
				return "必須フィールド '" + field + "' が不足しています"
			}
			return "必須フィールドが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "unsupported_variant":
			return "未対応のバリアントです"
		case "meta_shape":
			return "メタデータの形が値と一致しません"
		case "truncated":
			return "打ち切られました"
		case "overflow":
			return "数値が範囲外です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "parse_error":
			return "parse error"
		case "duplicate_field":
			if field != "" {
				return "field '" + field + "' duplicated"
			}
			return "duplicate field"
		case "missing_field":
			if field != "" {
				return "required field '" + field + "' missing"
			}
			return "required field missing"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "unsupported_variant":
			return "unsupported variant"
		case "meta_shape":
			return "metadata shape does not match value"
		case "truncated":
			return "truncated"
		case "overflow":
			return "number out of range"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
