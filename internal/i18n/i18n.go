// Package i18n provides the message-key by language-tag localization table.
// Lookups are pure and total: a missing translation falls back to the default
// language, and a missing key renders the key itself so a wiring mistake is
// visible instead of fatal.
package i18n

import "fmt"

// Key identifies a translatable message.
type Key string

const (
	KeyWelcome             Key = "welcome"
	KeyHelp                Key = "help"
	KeyMoreInfo            Key = "more_info"
	KeyChooseLanguage      Key = "choose_language"
	KeyPickPackage         Key = "pick_package"
	KeyPackageNotFound     Key = "package_not_found"
	KeyTerms               Key = "terms"
	KeyPackageCard         Key = "package_card"
	KeySelectedPackage     Key = "selected_package"
	KeyPaymentInstructions Key = "payment_instructions"
	KeyAskPhone            Key = "ask_phone"
	KeyPhoneInvalid        Key = "phone_invalid"
	KeyAskProof            Key = "ask_proof"
	KeyThankYou            Key = "thank_you"
	KeyUnknownAction       Key = "unknown_action"

	KeyBtnMoreInfo  Key = "btn_more_info"
	KeyBtnSubscribe Key = "btn_subscribe"
	KeyBtnAgree     Key = "btn_agree"
	KeyBtnPayNow    Key = "btn_pay_now"
	KeyBtnPaid      Key = "btn_paid"
	KeyBtnBack      Key = "btn_back"
	KeyBtnBackHome  Key = "btn_back_home"
)

// Table resolves message keys against a language tag.
type Table struct {
	defaultLang string
	messages    map[Key]map[string]string
}

// New builds the table with the built-in texts and the given fallback language.
func New(defaultLang string) *Table {
	return &Table{
		defaultLang: defaultLang,
		messages:    builtinMessages,
	}
}

// DefaultLang returns the configured fallback language tag.
func (t *Table) DefaultLang() string {
	return t.defaultLang
}

// T returns the text for key in lang, falling back to the default language and
// finally to the key name itself.
func (t *Table) T(lang string, key Key) string {
	byLang, ok := t.messages[key]
	if !ok {
		return string(key)
	}
	if msg, ok := byLang[lang]; ok && msg != "" {
		return msg
	}
	if msg, ok := byLang[t.defaultLang]; ok && msg != "" {
		return msg
	}
	return string(key)
}

// Tf formats the text for key in lang with fmt-style arguments.
func (t *Table) Tf(lang string, key Key, args ...any) string {
	return fmt.Sprintf(t.T(lang, key), args...)
}

// Has reports whether any translation exists for key.
func (t *Table) Has(key Key) bool {
	_, ok := t.messages[key]
	return ok
}
