// Package i18n provides internationalization support for the scoop service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the Accept-Language header.
// Only the first listed language is considered.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// "en-US,en;q=0.9,pt;q=0.8" -> "en"
	lang := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supports(lang) {
		return lang
	}

	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		"error.invalid_request":           "Invalid request",
		"error.invalid_request_body":      "Invalid request body",
		"error.internal_error":            "An unexpected error occurred",
		"error.api_key_required":          "API key is required",
		"error.invalid_api_key":           "Invalid API key",
		"error.not_found":                 "Not found",
		"error.rate_limit_exceeded":       "Too many requests, please try again later",
		"error.timeout":                   "Request timed out",
		"error.item_not_found":            "Flavor not found",
		"error.shop_unavailable":          "The shop is unavailable, please try again later",
		"error.checkout.retry":            "Order failed. Please try again.",
		"error.checkout.in_flight":        "An order is already being submitted",
		"error.simulator.already_running": "A simulated session is already running",

		"error.validation.failed":        "Please correct the highlighted fields",
		"error.validation.name":          "Please enter your name",
		"error.validation.email":         "Please enter a valid email",
		"error.validation.address":       "Please enter your address",
		"error.validation.payment_token": "Please enter a valid card number",
		"error.validation.cart_empty":    "Your cart is empty",
		"error.validation.quantity":      "quantity: must be an integer",

		"success.simulator_started": "Simulated session started",
	},
	"pt": {
		"error.invalid_request":           "Requisição inválida",
		"error.invalid_request_body":      "Corpo da requisição inválido",
		"error.internal_error":            "Ocorreu um erro inesperado",
		"error.api_key_required":          "Chave de API é obrigatória",
		"error.invalid_api_key":           "Chave de API inválida",
		"error.not_found":                 "Não encontrado",
		"error.rate_limit_exceeded":       "Muitas requisições, tente novamente mais tarde",
		"error.timeout":                   "Tempo da requisição esgotado",
		"error.item_not_found":            "Sabor não encontrado",
		"error.shop_unavailable":          "A loja está indisponível, tente novamente mais tarde",
		"error.checkout.retry":            "Falha no pedido. Tente novamente.",
		"error.checkout.in_flight":        "Um pedido já está sendo enviado",
		"error.simulator.already_running": "Uma sessão simulada já está em execução",

		"error.validation.failed":        "Corrija os campos destacados",
		"error.validation.name":          "Informe seu nome",
		"error.validation.email":         "Informe um email válido",
		"error.validation.address":       "Informe seu endereço",
		"error.validation.payment_token": "Informe um número de cartão válido",
		"error.validation.cart_empty":    "Seu carrinho está vazio",
		"error.validation.quantity":      "quantity: deve ser um número inteiro",

		"success.simulator_started": "Sessão simulada iniciada",
	},
	"nl": {
		"error.invalid_request":           "Ongeldig verzoek",
		"error.invalid_request_body":      "Ongeldige aanvraag body",
		"error.internal_error":            "Er is een onverwachte fout opgetreden",
		"error.api_key_required":          "API-sleutel is vereist",
		"error.invalid_api_key":           "Ongeldige API-sleutel",
		"error.not_found":                 "Niet gevonden",
		"error.rate_limit_exceeded":       "Te veel verzoeken, probeer het later opnieuw",
		"error.timeout":                   "Verzoek is verlopen",
		"error.item_not_found":            "Smaak niet gevonden",
		"error.shop_unavailable":          "De winkel is niet beschikbaar, probeer het later opnieuw",
		"error.checkout.retry":            "Bestelling mislukt. Probeer het opnieuw.",
		"error.checkout.in_flight":        "Er wordt al een bestelling verzonden",
		"error.simulator.already_running": "Er loopt al een gesimuleerde sessie",

		"error.validation.failed":        "Corrigeer de gemarkeerde velden",
		"error.validation.name":          "Vul je naam in",
		"error.validation.email":         "Vul een geldig e-mailadres in",
		"error.validation.address":       "Vul je adres in",
		"error.validation.payment_token": "Vul een geldig kaartnummer in",
		"error.validation.cart_empty":    "Je winkelwagen is leeg",
		"error.validation.quantity":      "quantity: moet een geheel getal zijn",

		"success.simulator_started": "Gesimuleerde sessie gestart",
	},
}
