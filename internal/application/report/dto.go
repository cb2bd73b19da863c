package report

// MonthValue is one point of a metric's monthly history
type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Metric is one dashboard KPI: its value over the requested range, the
// percentage change of the last month against the one before, and the
// monthly history
type Metric struct {
	Value   float64      `json:"value"`
	Change  float64      `json:"change"`
	History []MonthValue `json:"history"`
}

// DashboardResponse is the full KPI set of the dashboard
type DashboardResponse struct {
	CompletedOrders      Metric `json:"completedOrders"`
	AverageOrderCost     Metric `json:"averageOrderCost"`
	AverageOrderTime     Metric `json:"averageOrderTime"`
	TotalClients         Metric `json:"totalClients"`
	NewClients           Metric `json:"newClients"`
	TotalDebt            Metric `json:"totalDebt"`
	AveragePaymentTime   Metric `json:"averagePaymentTime"`
	SalesVolume          Metric `json:"salesVolume"`
	ImplementationCosts  Metric `json:"implementationCosts"`
	ProductProfitability Metric `json:"productProfitability"`
	SalesProfitability   Metric `json:"salesProfitability"`
}
