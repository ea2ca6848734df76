package model

// ChartData holds parallel series for the insights chart: one date label
// per score, both ascending by post date.
type ChartData struct {
	Labels []string  `json:"x"`
	Scores []float64 `json:"y"`
}

// Insights is the aggregate sentiment view over a user's posts.
// HasData is false for a user with no posts; the remaining fields are
// zero values in that case and must not be rendered as numbers.
type Insights struct {
	HasData      bool
	Average      float64
	MostPositive Post
	MostNegative Post
	Chart        ChartData
}
