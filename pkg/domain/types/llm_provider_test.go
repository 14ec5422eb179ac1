package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/stubscout/pkg/domain/types"
)

func TestParseLLMProvider(t *testing.T) {
	for _, p := range types.AllLLMProviders() {
		got, err := types.ParseLLMProvider(p.String())
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(p)
	}

	_, err := types.ParseLLMProvider("claude")
	gt.Value(t, err).NotNil()
}

func TestNewRunID(t *testing.T) {
	a := types.NewRunID()
	b := types.NewRunID()
	gt.String(t, a.String()).NotEqual("")
	gt.Value(t, a).NotEqual(b)
}
