package models

// Review-status option catalogs for the three review areas. These mirror the
// vocabularies auditors use in the working papers; the engine treats them as
// opaque labels.

// DocumentalOptions lists documentary-support statuses.
var DocumentalOptions = []string{
	"BL - DAV", "BL - Declaración Simplificada", "BL - DEX", "Carta desembolso",
	"Certificación Giro Cliente diferente", "Certificación Giro Proveedor diferente",
	"DC - Factura - Swift - BL - DIM", "DC IMC", "Declaración Simplificada",
	"DEX", "DIM", "F10 - IM transmitido", "F3", "F3a", "F4", "F6", "F7",
	"Factura", "Factura - BL - DAV", "Factura - DIM", "Factura - Swift",
	"Factura - Swift - BL", "FMM-Ingreso ZF", "FMM-Salida ZF",
	"Nota Crédito (Impo-Exportación)", "Nota Debito (Impo-Expo)",
	"Nota Liquidación Divisas", "O.K.", "Swift", "Swift - BL", "Swift - DC",
}

// BanrepOptions lists central-bank report statuses.
var BanrepOptions = []string{
	"MAL REGISTRADA", "O.K.", "SIN IDENTIFICAR", "Sin Transmitir",
	"Transmisión Extemporánea",
}

// DianOptions lists customs-authority legalization statuses.
var DianOptions = []string{
	"LEGALIZACION PARCIAL", "LEGALIZADO CON ERROR", "LEGALIZADO EXTEMPORANEO",
	"LEGALIZADO OPORTUNAMENTE", "NO requiere legalización por ser Devolución",
	"O.K.", "SIN IDENTIFICAR", "SIN LEGALIZAR",
}

// NumeralDescriptions maps exchange-regime numerals to their official
// descriptions, used when presenting declaration metadata.
var NumeralDescriptions = map[string]string{
	// Exportaciones
	"1000": "Reintegro por exportaciones de café.",
	"1010": "Reintegro por exportaciones de carbón incluidos los anticipos.",
	"1020": "Reintegro por exportaciones de ferroníquel incluidos los anticipos.",
	"1030": "Reintegro por exportaciones de petróleo y sus derivados, incluidos los anticipos.",
	"1040": "Reintegro por exportaciones de bienes diferentes de café, carbón, ferroníquel, petróleo.",
	"1050": "Anticipos por exportaciones de bienes diferentes de café, carbón, ferroníquel, petróleo.",
	"1060": "Pago de exportaciones de bienes en moneda legal colombiana.",
	"1510": "Gastos de exportación de bienes incluidos en la declaración de exportación definitiva.",
	// Importaciones
	"2015": "Giro por importaciones de bienes ya embarcados en un plazo igual o inferior a un (1) mes.",
	"2016": "Gastos de importación de bienes incluidos en la factura de los proveedores.",
	"2017": "Pago anticipado de futuras importaciones de bienes.",
	"2022": "Giro por importaciones > 1 mes y <= 12 meses (Proveedores).",
	"2023": "Giro por importaciones > 1 mes y <= 12 meses (IMC).",
	"2024": "Giro por importaciones > 12 meses (Proveedores).",
	"2025": "Giro por importaciones > 12 meses (IMC).",
	"2060": "Pago de importación de bienes en moneda legal colombiana.",
	// Servicios y otros
	"1600": "Compra a residentes que compran y venden divisas de manera profesional.",
	"1601": "Otros conceptos (Ingresos).",
	"2904": "Otros conceptos (Egresos).",
	"1704": "Comisiones no financieras (Ingresos).",
	"2850": "Comisiones no financieras (Egresos).",
	"1540": "Servicios financieros (Ingresos).",
	"2270": "Servicios financieros (Egresos).",
	"1840": "Servicios empresariales, profesionales y técnicos (Ingresos).",
	"2906": "Servicios empresariales, profesionales y técnicos (Egresos).",
	// Endeudamiento
	"4000": "Desembolso de créditos – deuda privada- otorgados por IMC a residentes.",
	"4500": "Amortización de créditos – deuda privada- otorgados por IMC a residentes.",
	"4005": "Desembolso de créditos - deuda privada- otorgados por no residentes.",
	"4505": "Amortización de créditos - deuda privada- otorgados por proveedores u otros no residentes.",
	// Inversiones
	"4030": "Inversión de portafolio de capitales del exterior.",
	"4035": "Inversión directa de capitales del exterior en empresas.",
	"4580": "Inversión colombiana directa en el exterior.",
	"4055": "Retorno de la inversión colombiana directa en el exterior.",
	// Cuentas de compensación
	"5378": "Traslados entre cuentas de compensación de un mismo titular. Ingresos.",
	"5912": "Traslados entre cuentas de compensación de un mismo titular. Egresos.",
	"5380": "Compra de divisas a otros titulares de cuentas de compensación (Ingreso).",
	"5909": "Venta de divisas a otros titulares de cuentas de compensación (Egreso).",
	"3000": "Ingreso por el cumplimiento de obligaciones derivadas de operaciones internas.",
	"3500": "Egreso para el cumplimiento de obligaciones derivadas de operaciones internas.",
}
