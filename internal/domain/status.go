package domain

import "strings"

// Action is the purchase decision taken for a product.
type Action string

const (
	ActionBuy   Action = "comprar"
	ActionNoBuy Action = "no_comprar"
)

const (
	stockAvailable = "Disponible"
	stockMissing   = "Sin stock"
)

var actionMessages = map[Action]string{
	ActionBuy:   "SUGERENCIA DE COMPRAS DE PRODUCTOS",
	ActionNoBuy: "NO COMPRAR POR SOBRESTOCK",
}

// ActionMessage returns the banner shown next to a decision.
func ActionMessage(a Action) string {
	if msg, ok := actionMessages[a]; ok {
		return msg
	}

	return actionMessages[ActionNoBuy]
}

// ParseAction returns the action for a given label (case-insensitive).
func ParseAction(label string) (Action, bool) {
	switch Action(strings.ToLower(strings.TrimSpace(label))) {
	case ActionBuy:
		return ActionBuy, true
	case ActionNoBuy:
		return ActionNoBuy, true
	}

	return "", false
}

// StockStatusLabel renders the availability flag for reports.
func StockStatusLabel(available bool) string {
	if available {
		return stockAvailable
	}

	return stockMissing
}
