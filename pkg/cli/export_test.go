package cli

// PrintRecommendation is exported for testing
var PrintRecommendation = printRecommendation
