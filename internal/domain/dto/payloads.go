package dto

// HomeResponse is returned by GET /.
type HomeResponse struct {
	Home string `json:"Home" example:"Welcome to this stocks API"`
}

// ChartPayload is the body of GET /data, shaped for Chart.js line charts.
//
// Labels are the trading days; each dataset holds one company's prices
// indexed to 100 at the first day.
type ChartPayload struct {
	Labels   []string  `json:"labels" example:"2025-09-02,2025-09-03"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one company line in the chart, labelled with its ticker.
type Dataset struct {
	Label       string    `json:"label" example:"GOOG"`
	Data        []float64 `json:"data" example:"100,101.25"`
	BorderColor string    `json:"borderColor" example:"#8e5ea2"`
	Fill        bool      `json:"fill" example:"false"`
}

// MetricsPayload is the body of GET /metrics.
//
// Metrics[0] is the header row; every following row is one company,
// already rendered as fixed-width text.
type MetricsPayload struct {
	Metrics []string `json:"metrics"`
}
