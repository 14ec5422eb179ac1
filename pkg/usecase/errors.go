package usecase

import "github.com/m-mizutani/goerr/v2"

// errRerankUnconfigured marks the cross-encoder step as skipped for lack of credentials
var errRerankUnconfigured = goerr.New("reranker is not configured")
