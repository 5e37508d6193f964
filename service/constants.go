package service

const (
	DefaultAnnualRate = 0.08 // 8% anual
	MinTermMonths     = 1
	MaxTermMonths     = 600 // 50 años
	MaxLoanAmount     = 1_000_000_000 // 1 billón
	MaxIncome         = 1_000_000_000

	// Umbrales de las reglas de insights
	HealthyLoanToIncome = 0.4
	HighLoanToIncome    = 0.5
	StrongIncomeLevel   = 50_000
	LowIncomeLevel      = 30_000

	// Límite del cuerpo de respuesta del servicio de predicción
	maxPredictionBodyBytes = 1 << 20
)
