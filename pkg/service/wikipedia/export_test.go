package wikipedia

import (
	"context"

	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

// StripHTML is exported for testing
var StripHTML = stripHTML

// SearchStrict runs a search without degrading upstream errors
func SearchStrict(ctx context.Context, svc Service, query string, limit int) ([]model.SearchHit, error) {
	return svc.(*client).search(ctx, query, limit)
}

// DetailsStrict runs a detail lookup without degrading upstream errors
func DetailsStrict(ctx context.Context, svc Service, title string) (*model.ArticleDetail, error) {
	return svc.(*client).details(ctx, title)
}
