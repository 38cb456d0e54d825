// Package i18n holds the message catalog and locale-aware display helpers.
package i18n

import (
	"strings"
	"time"
)

// DefaultLang is used when no supported language can be detected.
const DefaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		"required":                   "Required",
		"must_be_positive":           "Must be greater than zero",
		"invalid_choice":             "Invalid choice",
		"invalid_json":               "Invalid JSON payload",
		"invalid_date":               "Invalid date, expected YYYY-MM-DD",
		"invalid_index":              "Invalid line index",
		"invalid_reference":          "Unknown client or catalog item",
		"index_out_of_range":         "Line index out of range",
		"invalid_quantity":           "Quantity must be a positive whole number",
		"validation_failed":          "The invoice draft is incomplete",
		"draft_not_found":            "Draft not found",
		"draft_closed":               "Draft is already saved or discarded",
		"invoice_not_found":          "Invoice not found",
		"invalid_amount":             "Amount must be greater than zero",
		"unknown_action":             "Unknown bulk action",
		"empty_selection":            "No invoice selected",
		"catalog_unavailable":        "Catalog is unavailable",
		"internal_error":             "An internal error occurred",
		"method_not_allowed":         "Method not allowed",
		"due_date_before_issue_date": "Due date is before the issue date",
		"unknown_client":             "Unknown Client",
		"unlimited":                  "Unlimited",
	},
	"fr": {
		"required":                   "Requis",
		"must_be_positive":           "Doit être supérieur à zéro",
		"invalid_choice":             "Choix invalide",
		"invalid_json":               "JSON invalide",
		"invalid_date":               "Date invalide, format attendu AAAA-MM-JJ",
		"invalid_index":              "Index de ligne invalide",
		"invalid_reference":          "Client ou article inconnu",
		"index_out_of_range":         "Index de ligne hors limites",
		"invalid_quantity":           "La quantité doit être un entier positif",
		"validation_failed":          "Le brouillon de facture est incomplet",
		"draft_not_found":            "Brouillon introuvable",
		"draft_closed":               "Brouillon déjà enregistré ou abandonné",
		"invoice_not_found":          "Facture introuvable",
		"invalid_amount":             "Le montant doit être supérieur à zéro",
		"unknown_action":             "Action groupée inconnue",
		"empty_selection":            "Aucune facture sélectionnée",
		"catalog_unavailable":        "Catalogue indisponible",
		"internal_error":             "Une erreur interne est survenue",
		"method_not_allowed":         "Méthode non autorisée",
		"due_date_before_issue_date": "L'échéance précède la date d'émission",
		"unknown_client":             "Client inconnu",
		"unlimited":                  "Illimité",
	},
}

var frMonths = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}

// Supported reports whether lang has a message catalog.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// DetectLanguage picks the first supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := messages[base]; ok {
			return base
		}
	}
	return DefaultLang
}

// T translates a message code. Unknown languages fall back to DefaultLang,
// unknown codes to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// FormatDate renders a calendar date for display, e.g. "Oct 24, 2023" (en)
// or "24 oct. 2023" (fr).
func FormatDate(lang string, t time.Time) string {
	if lang == "fr" {
		return t.Format("02") + " " + frMonths[t.Month()-1] + " " + t.Format("2006")
	}
	return t.Format("Jan 02, 2006")
}
