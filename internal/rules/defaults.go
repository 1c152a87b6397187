package rules

import "github.com/ledgerlens/ledgerlens/internal/model"

// Charts lists the built-in charts of accounts.
var Charts = []string{"generic", "insurance_ve"}

// Default returns the built-in rule table for a chart of accounts.
// Unknown charts fall back to "generic".
func Default(chart string) Table {
	switch chart {
	case "insurance_ve":
		return Table{Chart: chart, Rules: append(insuranceVECodes(), spanishKeywords()...)}
	default:
		return Table{Chart: "generic", Rules: append(genericCodes(), spanishKeywords()...)}
	}
}

func prefix(p string, c model.Category) model.Rule {
	return model.Rule{Kind: model.MatchCodePrefix, Pattern: p, Category: c}
}

func keyword(k string, c model.Category) model.Rule {
	return model.Rule{Kind: model.MatchDescriptionContains, Pattern: k, Category: c}
}

// insuranceVECodes covers the dash-coded chart used by Venezuelan insurers
// (Profit Plus exports). Specific prefixes precede their parents.
func insuranceVECodes() []model.Rule {
	return []model.Rule{
		prefix("201-01", model.CategoryCash),
		prefix("2.201.01", model.CategoryCash),
		prefix("202-01", model.CategoryCash),
		prefix("203-06", model.CategoryCash),
		prefix("203-11", model.CategoryCash),
		prefix("201-02", model.CategoryAccountsReceivable),
		prefix("205-", model.CategoryAccountsReceivable),
		prefix("201-03", model.CategoryInventory),
		prefix("201-", model.CategoryOtherCurrentAssets),
		prefix("203-", model.CategoryOtherCurrentAssets),
		prefix("202-", model.CategoryNonCurrentAssets),
		prefix("301-", model.CategoryAccountsPayable),
		prefix("302-", model.CategoryAccountsPayable),
		prefix("401-", model.CategoryEquity),
	}
}

// genericCodes covers bare numeric charts (1105 caja, 1305 clientes, ...).
func genericCodes() []model.Rule {
	return []model.Rule{
		prefix("11", model.CategoryCash),
		prefix("12", model.CategoryOtherCurrentAssets),
		prefix("13", model.CategoryAccountsReceivable),
		prefix("14", model.CategoryInventory),
		prefix("15", model.CategoryNonCurrentAssets),
		prefix("16", model.CategoryNonCurrentAssets),
		prefix("17", model.CategoryNonCurrentAssets),
		prefix("18", model.CategoryNonCurrentAssets),
		prefix("19", model.CategoryNonCurrentAssets),
		prefix("22", model.CategoryAccountsPayable),
		prefix("23", model.CategoryAccountsPayable),
		prefix("3", model.CategoryEquity),
		prefix("4", model.CategoryRevenue),
		prefix("5305", model.CategoryFinancialExpense),
		prefix("5", model.CategoryOperatingExpense),
		prefix("6", model.CategoryOperatingExpense),
	}
}

// spanishKeywords is the description fallback shared by all charts.
// Financial expense precedes the generic "gasto" keyword on purpose.
func spanishKeywords() []model.Rule {
	return []model.Rule{
		keyword("caja", model.CategoryCash),
		keyword("banco", model.CategoryCash),
		keyword("efectivo", model.CategoryCash),
		keyword("disponible", model.CategoryCash),
		keyword("cuenta*cobrar", model.CategoryAccountsReceivable),
		keyword("cliente", model.CategoryAccountsReceivable),
		keyword("deudor", model.CategoryAccountsReceivable),
		keyword("reaseguro", model.CategoryAccountsReceivable),
		keyword("intermediario", model.CategoryAccountsReceivable),
		keyword("retrocesionario", model.CategoryAccountsReceivable),
		keyword("inventario", model.CategoryInventory),
		keyword("mercancia", model.CategoryInventory),
		keyword("propiedad*planta", model.CategoryNonCurrentAssets),
		keyword("cuenta*pagar", model.CategoryAccountsPayable),
		keyword("proveedor", model.CategoryAccountsPayable),
		keyword("acreedor", model.CategoryAccountsPayable),
		keyword("nomina", model.CategoryAccountsPayable),
		keyword("capital", model.CategoryEquity),
		keyword("patrimonio", model.CategoryEquity),
		keyword("reserva legal", model.CategoryEquity),
		keyword("utilidades retenidas", model.CategoryEquity),
		keyword("resultados acumulados", model.CategoryEquity),
		keyword("gasto*financ", model.CategoryFinancialExpense),
		keyword("intereses pagados", model.CategoryFinancialExpense),
		keyword("gasto", model.CategoryOperatingExpense),
		keyword("costo", model.CategoryOperatingExpense),
		keyword("ingreso", model.CategoryRevenue),
		keyword("venta", model.CategoryRevenue),
	}
}
